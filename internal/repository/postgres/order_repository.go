package postgres

import (
	"context"
	"fmt"

	"github.com/Dhoini/olio-backoffice/internal/domain"
	"github.com/Dhoini/olio-backoffice/pkg/logger"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const orderColumns = `id, customer_name, customer_email, customer_phone, product_name, product_size, ` +
	`quantity, status, notes, created_at, updated_at`

// PostgresOrderRepository реализация репозитория заказов через PostgreSQL
type PostgresOrderRepository struct {
	db  *sqlx.DB
	log *logger.Logger
}

// NewPostgresOrderRepository создает новый репозиторий заказов
func NewPostgresOrderRepository(db *sqlx.DB, log *logger.Logger) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db, log: log}
}

// List возвращает все заказы, новые первыми
func (r *PostgresOrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`

	orders := []domain.Order{}
	if err := r.db.SelectContext(ctx, &orders, query); err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	return orders, nil
}

// GetByID возвращает заказ по ID
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	var order domain.Order
	if err := r.db.GetContext(ctx, &order, query, id); err != nil {
		if isNoRows(err) {
			return domain.Order{}, domain.NewNotFoundError("order", id.String())
		}
		return domain.Order{}, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

// Create сохраняет заказ
func (r *PostgresOrderRepository) Create(ctx context.Context, order domain.Order) (domain.Order, error) {
	query := `
		INSERT INTO orders (id, customer_name, customer_email, customer_phone, product_name, product_size,
			quantity, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}

	_, err := r.db.ExecContext(ctx, query,
		order.ID,
		order.CustomerName,
		order.CustomerEmail,
		order.CustomerPhone,
		order.ProductName,
		order.ProductSize,
		order.Quantity,
		string(order.Status),
		order.Notes,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		return domain.Order{}, fmt.Errorf("failed to create order: %w", err)
	}

	r.log.Debugw("Order stored", "orderID", order.ID)
	return order, nil
}

// Update перезаписывает изменяемые поля заказа
func (r *PostgresOrderRepository) Update(ctx context.Context, order domain.Order) error {
	query := `
		UPDATE orders
		SET customer_name = $2, customer_email = $3, customer_phone = $4, product_name = $5,
			product_size = $6, quantity = $7, status = $8, notes = $9, updated_at = $10
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		order.ID,
		order.CustomerName,
		order.CustomerEmail,
		order.CustomerPhone,
		order.ProductName,
		order.ProductSize,
		order.Quantity,
		string(order.Status),
		order.Notes,
		order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return domain.NewNotFoundError("order", order.ID.String())
	}
	return nil
}

// Delete удаляет заказ
func (r *PostgresOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return domain.NewNotFoundError("order", id.String())
	}
	return nil
}
