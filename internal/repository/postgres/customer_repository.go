package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Dhoini/olio-backoffice/internal/domain"
	"github.com/Dhoini/olio-backoffice/pkg/logger"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const customerColumns = `id, email, name, phone, created_at, updated_at`

// PostgresCustomerRepository реализация репозитория клиентов через PostgreSQL
type PostgresCustomerRepository struct {
	db  *sqlx.DB
	log *logger.Logger
}

// NewPostgresCustomerRepository создает новый репозиторий клиентов через PostgreSQL
func NewPostgresCustomerRepository(db *sqlx.DB, log *logger.Logger) *PostgresCustomerRepository {
	return &PostgresCustomerRepository{
		db:  db,
		log: log,
	}
}

// GetAll возвращает всех клиентов
func (r *PostgresCustomerRepository) GetAll(ctx context.Context) ([]domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY created_at DESC`

	customers := []domain.Customer{}
	if err := r.db.SelectContext(ctx, &customers, query); err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	return customers, nil
}

// GetByID возвращает клиента по ID
func (r *PostgresCustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	var customer domain.Customer
	if err := r.db.GetContext(ctx, &customer, query, id); err != nil {
		if isNoRows(err) {
			return domain.Customer{}, domain.NewNotFoundError("customer", id.String())
		}
		return domain.Customer{}, fmt.Errorf("failed to get customer: %w", err)
	}
	return customer, nil
}

// Create создает нового клиента
func (r *PostgresCustomerRepository) Create(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	query := `
		INSERT INTO customers (id, email, name, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + customerColumns

	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	now := time.Now().UTC()

	var created domain.Customer
	err := r.db.GetContext(ctx, &created, query,
		customer.ID,
		customer.Email,
		customer.Name,
		customer.Phone,
		now,
		now,
	)
	if err != nil {
		// Проверяем код ошибки на нарушение уникальности
		if isUniqueViolation(err) {
			return domain.Customer{}, domain.NewDuplicateError("customer", "email", customer.Email)
		}
		return domain.Customer{}, fmt.Errorf("failed to create customer: %w", err)
	}

	return created, nil
}

// Update обновляет существующего клиента
func (r *PostgresCustomerRepository) Update(ctx context.Context, customer domain.Customer) error {
	query := `
		UPDATE customers
		SET email = $2, name = $3, phone = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		customer.ID,
		customer.Email,
		customer.Name,
		customer.Phone,
		time.Now().UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewDuplicateError("customer", "email", customer.Email)
		}
		return fmt.Errorf("failed to update customer: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return domain.NewNotFoundError("customer", customer.ID.String())
	}
	return nil
}

// Delete удаляет клиента
func (r *PostgresCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return domain.NewNotFoundError("customer", id.String())
	}
	return nil
}

// Upsert создает клиента или дополняет существующего. NULL в новых данных
// не затирает известные имя и телефон, гонки разрешает уникальный ключ email.
func (r *PostgresCustomerRepository) Upsert(ctx context.Context, contact domain.CustomerContact) (domain.Customer, error) {
	query := `
		INSERT INTO customers (id, email, name, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		ON CONFLICT (email) DO UPDATE SET
			name = COALESCE(EXCLUDED.name, customers.name),
			phone = COALESCE(EXCLUDED.phone, customers.phone),
			updated_at = now()
		RETURNING ` + customerColumns

	var customer domain.Customer
	err := r.db.GetContext(ctx, &customer, query,
		uuid.New(),
		contact.Email,
		contact.Name,
		contact.Phone,
	)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("failed to upsert customer: %w", err)
	}

	r.log.Debugw("Customer upserted", "customerID", customer.ID)
	return customer, nil
}
