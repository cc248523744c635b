package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// OrderStatus статус заказа
type OrderStatus string

const (
	OrderStatusJustOrdered OrderStatus = "Appena ordinato"
	OrderStatusPaid        OrderStatus = "Pagato"
	OrderStatusDelivered   OrderStatus = "Consegnato"
)

// AllOrderStatuses возвращает статусы в порядке жизненного цикла
func AllOrderStatuses() []OrderStatus {
	return []OrderStatus{OrderStatusJustOrdered, OrderStatusPaid, OrderStatusDelivered}
}

// Valid сообщает, входит ли статус в перечисление
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusJustOrdered, OrderStatusPaid, OrderStatusDelivered:
		return true
	}
	return false
}

// ParseOrderStatus проверяет строку и приводит ее к OrderStatus
func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if !status.Valid() {
		return "", NewValidationError("status", "Stato ordine non valido")
	}
	return status, nil
}

// Order представляет собой модель заказа. Контакты клиента денормализованы на момент заказа.
type Order struct {
	ID            uuid.UUID   `db:"id" json:"id"`
	CustomerName  string      `db:"customer_name" json:"customer_name"`
	CustomerEmail string      `db:"customer_email" json:"customer_email"`
	CustomerPhone *string     `db:"customer_phone" json:"customer_phone,omitempty"`
	ProductName   string      `db:"product_name" json:"product_name"`
	ProductSize   string      `db:"product_size" json:"product_size"`
	Quantity      int         `db:"quantity" json:"quantity"`
	Status        OrderStatus `db:"status" json:"status"`
	Notes         *string     `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time   `db:"updated_at" json:"updated_at"`
}

// OrderUpdate частичное обновление заказа администратором. nil означает "не менять".
type OrderUpdate struct {
	CustomerName  *string      `json:"customer_name"`
	CustomerEmail *string      `json:"customer_email"`
	CustomerPhone *string      `json:"customer_phone"`
	ProductName   *string      `json:"product_name"`
	ProductSize   *string      `json:"product_size"`
	Quantity      *int         `json:"quantity"`
	Status        *OrderStatus `json:"status"`
	Notes         *string      `json:"notes"`
}

// Apply применяет изменения к заказу. Текстовые поля обрезаются по краям.
func (u OrderUpdate) Apply(o *Order, now time.Time) {
	if u.CustomerName != nil {
		o.CustomerName = strings.TrimSpace(*u.CustomerName)
	}
	if u.CustomerEmail != nil {
		o.CustomerEmail = strings.TrimSpace(*u.CustomerEmail)
	}
	if u.CustomerPhone != nil {
		o.CustomerPhone = OptionalString(*u.CustomerPhone)
	}
	if u.ProductName != nil {
		o.ProductName = strings.TrimSpace(*u.ProductName)
	}
	if u.ProductSize != nil {
		o.ProductSize = strings.TrimSpace(*u.ProductSize)
	}
	if u.Quantity != nil {
		o.Quantity = *u.Quantity
	}
	if u.Status != nil {
		o.Status = *u.Status
	}
	if u.Notes != nil {
		o.Notes = OptionalString(*u.Notes)
	}
	o.UpdatedAt = now
}

// TouchesProduct сообщает, меняет ли обновление товар или формат
func (u OrderUpdate) TouchesProduct() bool {
	return u.ProductName != nil || u.ProductSize != nil
}
