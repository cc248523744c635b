package domain

import (
	"time"

	"github.com/google/uuid"
)

// AdminAccount единственный администратор back-office.
type AdminAccount struct {
	ID                uuid.UUID `db:"id" json:"id"`
	Email             string    `db:"email" json:"email"`
	PasswordHash      string    `db:"password_hash" json:"-"`
	NotificationEmail string    `db:"notification_email" json:"notificationEmail"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// AdminView публичные поля администратора, хеш пароля сюда не попадает.
type AdminView struct {
	ID                uuid.UUID `json:"id"`
	Email             string    `json:"email"`
	NotificationEmail string    `json:"notificationEmail"`
}

// View возвращает публичное представление аккаунта
func (a *AdminAccount) View() AdminView {
	return AdminView{
		ID:                a.ID,
		Email:             a.Email,
		NotificationEmail: a.NotificationEmail,
	}
}

// NewAdminAccount создает аккаунт для первичной настройки.
// Email для уведомлений по умолчанию совпадает с логином.
func NewAdminAccount(email, passwordHash string, now time.Time) *AdminAccount {
	return &AdminAccount{
		ID:                uuid.New(),
		Email:             email,
		PasswordHash:      passwordHash,
		NotificationEmail: email,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}
