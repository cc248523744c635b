package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Customer представляет собой модель клиента. Email уникален.
type Customer struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Name      *string   `db:"name" json:"name,omitempty"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// CustomerContact контактные данные из заявки для upsert в справочник клиентов
type CustomerContact struct {
	Email string
	Name  *string
	Phone *string
}

// CustomerRequest представляет запрос на создание/обновление клиента
type CustomerRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// OptionalString превращает пустую строку в nil, чтобы она не затирала известные данные.
func OptionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// StringValue возвращает значение указателя или пустую строку
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
