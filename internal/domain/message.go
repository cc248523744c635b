package domain

import (
	"time"

	"github.com/google/uuid"
)

// MessageStatus статус сообщения из формы контактов
type MessageStatus string

const (
	MessageStatusNew    MessageStatus = "Nuovo"
	MessageStatusUnread MessageStatus = "Non letto"
	MessageStatusRead   MessageStatus = "Letto"
)

// AllMessageStatuses возвращает все статусы сообщений
func AllMessageStatuses() []MessageStatus {
	return []MessageStatus{MessageStatusNew, MessageStatusUnread, MessageStatusRead}
}

// Valid сообщает, входит ли статус в перечисление
func (s MessageStatus) Valid() bool {
	switch s {
	case MessageStatusNew, MessageStatusUnread, MessageStatusRead:
		return true
	}
	return false
}

// MarksReadOnOpen сообщает, переводится ли сообщение в "Letto" при открытии
func (s MessageStatus) MarksReadOnOpen() bool {
	return s == MessageStatusNew || s == MessageStatusUnread
}

// ParseMessageStatus проверяет строку и приводит ее к MessageStatus
func ParseMessageStatus(s string) (MessageStatus, error) {
	status := MessageStatus(s)
	if !status.Valid() {
		return "", NewValidationError("status", "Stato messaggio non valido")
	}
	return status, nil
}

// RequestType категория запроса в форме контактов
type RequestType string

const (
	RequestTypeGeneralInfo   RequestType = "Informazioni generali"
	RequestTypeOrdersAndShip RequestType = "Ordini e consegna"
	RequestTypePartnership   RequestType = "Collaborazioni"
	RequestTypeFarmVisit     RequestType = "Visita in azienda"
	RequestTypeOther         RequestType = "Altro"
)

// AllRequestTypes возвращает категории в порядке отображения
func AllRequestTypes() []RequestType {
	return []RequestType{
		RequestTypeGeneralInfo,
		RequestTypeOrdersAndShip,
		RequestTypePartnership,
		RequestTypeFarmVisit,
		RequestTypeOther,
	}
}

// Valid сообщает, входит ли категория в перечисление
func (t RequestType) Valid() bool {
	for _, known := range AllRequestTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// ParseRequestType проверяет строку и приводит ее к RequestType
func ParseRequestType(s string) (RequestType, error) {
	t := RequestType(s)
	if !t.Valid() {
		return "", NewValidationError("request_type", "Tipo di richiesta non valido")
	}
	return t, nil
}

// Message сообщение из формы контактов
type Message struct {
	ID          uuid.UUID     `db:"id" json:"id"`
	Name        string        `db:"name" json:"name"`
	Email       string        `db:"email" json:"email"`
	RequestType RequestType   `db:"request_type" json:"request_type"`
	Body        string        `db:"message" json:"message"`
	Status      MessageStatus `db:"status" json:"status"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updated_at"`
}
