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

const adminColumns = `id, email, password_hash, notification_email, created_at, updated_at`

// PostgresAdminStore хранилище администратора в PostgreSQL
type PostgresAdminStore struct {
	db  *sqlx.DB
	log *logger.Logger
}

// NewPostgresAdminStore создает новое хранилище администратора
func NewPostgresAdminStore(db *sqlx.DB, log *logger.Logger) *PostgresAdminStore {
	return &PostgresAdminStore{db: db, log: log}
}

// Get возвращает единственного (самого раннего) администратора
func (r *PostgresAdminStore) Get(ctx context.Context) (domain.AdminAccount, error) {
	query := `SELECT ` + adminColumns + ` FROM admin_users ORDER BY created_at ASC LIMIT 1`
	return r.getOne(ctx, "", query)
}

// GetByID возвращает администратора по ID
func (r *PostgresAdminStore) GetByID(ctx context.Context, id uuid.UUID) (domain.AdminAccount, error) {
	query := `SELECT ` + adminColumns + ` FROM admin_users WHERE id = $1`
	return r.getOne(ctx, id.String(), query, id)
}

// GetByEmail возвращает администратора по точному совпадению email
func (r *PostgresAdminStore) GetByEmail(ctx context.Context, email string) (domain.AdminAccount, error) {
	query := `SELECT ` + adminColumns + ` FROM admin_users WHERE email = $1`
	return r.getOne(ctx, "", query, email)
}

func (r *PostgresAdminStore) getOne(ctx context.Context, id, query string, args ...any) (domain.AdminAccount, error) {
	var account domain.AdminAccount
	if err := r.db.GetContext(ctx, &account, query, args...); err != nil {
		if isNoRows(err) {
			return domain.AdminAccount{}, domain.NewNotFoundError("admin", id)
		}
		return domain.AdminAccount{}, fmt.Errorf("failed to get admin: %w", err)
	}
	return account, nil
}

// Create создает администратора. Используется только при первичной настройке.
func (r *PostgresAdminStore) Create(ctx context.Context, account domain.AdminAccount) error {
	query := `
		INSERT INTO admin_users (id, email, password_hash, notification_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.Email,
		account.PasswordHash,
		account.NotificationEmail,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewDuplicateError("admin", "email", account.Email)
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}

	r.log.Infow("Admin account created", "adminID", account.ID)
	return nil
}

// UpdatePasswordHash перезаписывает хеш пароля
func (r *PostgresAdminStore) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string, at time.Time) error {
	query := `UPDATE admin_users SET password_hash = $2, updated_at = $3 WHERE id = $1`
	return r.exec(ctx, id, "update password hash", query, id, hash, at)
}

// UpdateNotificationEmail перезаписывает email для уведомлений
func (r *PostgresAdminStore) UpdateNotificationEmail(ctx context.Context, id uuid.UUID, email string, at time.Time) error {
	query := `UPDATE admin_users SET notification_email = $2, updated_at = $3 WHERE id = $1`
	return r.exec(ctx, id, "update notification email", query, id, email, at)
}

func (r *PostgresAdminStore) exec(ctx context.Context, id uuid.UUID, op, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return domain.NewNotFoundError("admin", id.String())
	}
	return nil
}
