package auth

import (
	"errors"
	"fmt"

	"github.com/Dhoini/olio-backoffice/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// DefaultCost стоимость bcrypt для паролей администратора
const DefaultCost = 10

// Hasher одностороннее хеширование паролей с солью
type Hasher interface {
	Hash(plain string) (string, error)
	// Compare возвращает domain.ErrInvalidCredentials при несовпадении
	Compare(hash, plain string) error
}

// BcryptHasher реализация Hasher на bcrypt
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher создает хешер с заданной стоимостью
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash вычисляет хеш пароля
func (h *BcryptHasher) Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Compare сравнивает пароль с хешем за постоянное время
func (h *BcryptHasher) Compare(hash, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return domain.ErrInvalidCredentials
	}
	return fmt.Errorf("failed to compare password hash: %w", err)
}
