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

const messageColumns = `id, name, email, request_type, message, status, created_at, updated_at`

// PostgresMessageRepository реализация репозитория сообщений через PostgreSQL
type PostgresMessageRepository struct {
	db  *sqlx.DB
	log *logger.Logger
}

// NewPostgresMessageRepository создает новый репозиторий сообщений
func NewPostgresMessageRepository(db *sqlx.DB, log *logger.Logger) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db, log: log}
}

// List возвращает все сообщения, новые первыми
func (r *PostgresMessageRepository) List(ctx context.Context) ([]domain.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages ORDER BY created_at DESC`

	messages := []domain.Message{}
	if err := r.db.SelectContext(ctx, &messages, query); err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	return messages, nil
}

// GetByID возвращает сообщение по ID
func (r *PostgresMessageRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages WHERE id = $1`

	var message domain.Message
	if err := r.db.GetContext(ctx, &message, query, id); err != nil {
		if isNoRows(err) {
			return domain.Message{}, domain.NewNotFoundError("message", id.String())
		}
		return domain.Message{}, fmt.Errorf("failed to get message: %w", err)
	}
	return message, nil
}

// Create сохраняет сообщение
func (r *PostgresMessageRepository) Create(ctx context.Context, message domain.Message) (domain.Message, error) {
	query := `
		INSERT INTO messages (id, name, email, request_type, message, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}

	_, err := r.db.ExecContext(ctx, query,
		message.ID,
		message.Name,
		message.Email,
		string(message.RequestType),
		message.Body,
		string(message.Status),
		message.CreatedAt,
		message.UpdatedAt,
	)
	if err != nil {
		return domain.Message{}, fmt.Errorf("failed to create message: %w", err)
	}

	r.log.Debugw("Message stored", "messageID", message.ID)
	return message, nil
}

// UpdateStatus меняет статус сообщения
func (r *PostgresMessageRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.MessageStatus, at time.Time) error {
	query := `UPDATE messages SET status = $2, updated_at = $3 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, string(status), at)
	if err != nil {
		return fmt.Errorf("failed to update message status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return domain.NewNotFoundError("message", id.String())
	}
	return nil
}

// Delete удаляет сообщение
func (r *PostgresMessageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return domain.NewNotFoundError("message", id.String())
	}
	return nil
}
