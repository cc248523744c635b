package domain

import (
	"errors"
	"fmt"
)

// Application errors
var (
	// ErrNotFound запись не найдена
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate дубликат записи
	ErrDuplicate = errors.New("duplicate record")

	// ErrInvalidInput неверные входные данные
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidCredentials неверный email или пароль
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated отсутствует или недействителен токен сессии
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrNotConfigured не задан email для уведомлений
	ErrNotConfigured = errors.New("notification email not configured")
)

// MsgInvalidCredentials единое сообщение для неизвестного email и неверного пароля.
const MsgInvalidCredentials = "Credenziali non valide"

// ValidationError ошибка валидации. Message показывается пользователю как есть.
type ValidationError struct {
	Field   string
	Message string
}

// Error реализует интерфейс error
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Message)
	}
	return fmt.Sprintf("validation failed: %s - %s", e.Field, e.Message)
}

// Is проверяет, является ли ошибка ошибкой валидации
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError создает новую ошибку валидации
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// CredentialsError отказ в аутентификации. Сообщение намеренно не различает причины.
type CredentialsError struct {
	Message string
}

// Error реализует интерфейс error
func (e *CredentialsError) Error() string {
	return "invalid credentials: " + e.Message
}

// Is проверяет, является ли ошибка ошибкой учетных данных
func (e *CredentialsError) Is(target error) bool {
	return target == ErrInvalidCredentials
}

// NewCredentialsError создает ошибку учетных данных с сообщением для пользователя
func NewCredentialsError(message string) *CredentialsError {
	return &CredentialsError{Message: message}
}

// NotFoundError представляет ошибку "не найдено"
type NotFoundError struct {
	Entity string
	ID     string
}

// Error реализует интерфейс error
func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s with ID %s not found", e.Entity, e.ID)
}

// Is проверяет, является ли ошибка ошибкой типа "не найдено"
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError создает новую ошибку "не найдено"
func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{
		Entity: entity,
		ID:     id,
	}
}

// DuplicateError представляет ошибку дубликата
type DuplicateError struct {
	Entity string
	Field  string
	Value  string
}

// Error реализует интерфейс error
func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s with %s '%s' already exists", e.Entity, e.Field, e.Value)
}

// Is проверяет, является ли ошибка ошибкой дубликата
func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}

// NewDuplicateError создает новую ошибку дубликата
func NewDuplicateError(entity, field, value string) *DuplicateError {
	return &DuplicateError{
		Entity: entity,
		Field:  field,
		Value:  value,
	}
}

// PersistenceError сбой хранилища. Детали только в логах, клиенту уходит общее сообщение.
type PersistenceError struct {
	Op  string
	Err error
}

// Error реализует интерфейс error
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error during %s: %v", e.Op, e.Err)
}

// Unwrap возвращает оригинальную ошибку
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// NewPersistenceError создает новую ошибку хранилища
func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

// DeliveryError ошибка отправки уведомления. Никогда не возвращается клиенту.
type DeliveryError struct {
	Recipient string
	Err       error
}

// Error реализует интерфейс error
func (e *DeliveryError) Error() string {
	return fmt.Sprintf("failed to deliver notification to %s: %v", e.Recipient, e.Err)
}

// Unwrap возвращает оригинальную ошибку
func (e *DeliveryError) Unwrap() error {
	return e.Err
}
