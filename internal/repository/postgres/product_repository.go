package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Dhoini/olio-backoffice/internal/domain"
	"github.com/Dhoini/olio-backoffice/pkg/logger"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// productRow строка таблицы products; sizes хранится как text[]
type productRow struct {
	ID        uuid.UUID      `db:"id"`
	Name      string         `db:"name"`
	Sizes     pq.StringArray `db:"sizes"`
	CreatedAt time.Time      `db:"created_at"`
}

func (r productRow) toDomain() domain.Product {
	return domain.Product{
		ID:        r.ID,
		Name:      r.Name,
		Sizes:     []string(r.Sizes),
		CreatedAt: r.CreatedAt,
	}
}

// PostgresProductRepository каталог товаров в PostgreSQL
type PostgresProductRepository struct {
	db  *sqlx.DB
	log *logger.Logger
}

// NewPostgresProductRepository создает новый репозиторий товаров
func NewPostgresProductRepository(db *sqlx.DB, log *logger.Logger) *PostgresProductRepository {
	return &PostgresProductRepository{db: db, log: log}
}

// List возвращает товары, отсортированные по имени
func (r *PostgresProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	var rows []productRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT id, name, sizes, created_at FROM products ORDER BY name`); err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.toDomain())
	}
	return products, nil
}

// GetByName возвращает товар по точному имени
func (r *PostgresProductRepository) GetByName(ctx context.Context, name string) (domain.Product, error) {
	var row productRow
	err := r.db.GetContext(ctx, &row, `SELECT id, name, sizes, created_at FROM products WHERE name = $1`, name)
	if err != nil {
		if isNoRows(err) {
			return domain.Product{}, domain.NewNotFoundError("product", name)
		}
		return domain.Product{}, fmt.Errorf("failed to get product: %w", err)
	}
	return row.toDomain(), nil
}
