package repository

import (
	"context"
	"time"

	"github.com/Dhoini/olio-backoffice/internal/domain"
	"github.com/google/uuid"
)

// AdminAccountStore хранилище единственного администратора
type AdminAccountStore interface {
	Get(ctx context.Context) (domain.AdminAccount, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.AdminAccount, error)
	GetByEmail(ctx context.Context, email string) (domain.AdminAccount, error)
	Create(ctx context.Context, account domain.AdminAccount) error
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string, at time.Time) error
	UpdateNotificationEmail(ctx context.Context, id uuid.UUID, email string, at time.Time) error
}

// CustomerRepository интерфейс для работы с клиентами
type CustomerRepository interface {
	GetAll(ctx context.Context) ([]domain.Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Customer, error)
	Create(ctx context.Context, customer domain.Customer) (domain.Customer, error)
	Update(ctx context.Context, customer domain.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	// Upsert создает клиента или дополняет существующего непустыми полями
	Upsert(ctx context.Context, contact domain.CustomerContact) (domain.Customer, error)
}

// OrderRepository интерфейс для работы с заказами
type OrderRepository interface {
	List(ctx context.Context) ([]domain.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Order, error)
	Create(ctx context.Context, order domain.Order) (domain.Order, error)
	Update(ctx context.Context, order domain.Order) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// MessageRepository интерфейс для работы с сообщениями
type MessageRepository interface {
	List(ctx context.Context) ([]domain.Message, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Message, error)
	Create(ctx context.Context, message domain.Message) (domain.Message, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.MessageStatus, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductRepository каталог товаров, только чтение
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByName(ctx context.Context, name string) (domain.Product, error)
}
