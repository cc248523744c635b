package db

import (
	"context"
	"fmt"
	"time"

	"github.com/Dhoini/olio-backoffice/pkg/logger"
	"github.com/cenkalti/backoff/v4"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

// Options describes how to reach PostgreSQL.
type Options struct {
	DSN            string
	MaxOpenConns   int
	ConnectTimeout time.Duration
}

// DBClient owns the connection pool shared by all repositories.
type DBClient struct {
	db  *sqlx.DB
	log *logger.Logger
}

// NewDBClient connects to PostgreSQL, retrying with exponential backoff until
// ConnectTimeout elapses. The database container usually starts after the app.
func NewDBClient(ctx context.Context, opts Options, log *logger.Logger) (*DBClient, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 500 * time.Millisecond
	policy.MaxElapsedTime = opts.ConnectTimeout

	var conn *sqlx.DB
	attempt := 0
	operation := func() error {
		attempt++
		c, err := sqlx.ConnectContext(ctx, "pgx", opts.DSN)
		if err != nil {
			log.Warnw("Database not ready", "attempt", attempt, "error", err)
			return err
		}
		conn = c
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		log.Errorw("Failed to connect to database", "attempts", attempt, "error", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if opts.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(opts.MaxOpenConns)
		conn.SetMaxIdleConns(opts.MaxOpenConns)
	}
	conn.SetConnMaxLifetime(30 * time.Minute)

	log.Infow("Connected to database", "attempts", attempt)
	return &DBClient{db: conn, log: log}, nil
}

// NewFromDB wraps an existing handle. Used by tests with sqlmock.
func NewFromDB(db *sqlx.DB, log *logger.Logger) *DBClient {
	return &DBClient{db: db, log: log}
}

// DB returns the underlying pool.
func (dc *DBClient) DB() *sqlx.DB {
	return dc.db
}

// Ping checks that the database is reachable.
func (dc *DBClient) Ping(ctx context.Context) error {
	return dc.db.PingContext(ctx)
}

// Close закрывает соединение с базой данных.
func (dc *DBClient) Close() error {
	if err := dc.db.Close(); err != nil {
		dc.log.Errorw("Failed to close database connection", "error", err)
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

// BeginTx starts a transaction bound to ctx.
func (dc *DBClient) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	tx, err := dc.db.BeginTxx(ctx, nil)
	if err != nil {
		dc.log.Errorw("Failed to begin transaction", "error", err)
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CommitTx commits tx.
func (dc *DBClient) CommitTx(tx *sqlx.Tx) error {
	if err := tx.Commit(); err != nil {
		dc.log.Errorw("Failed to commit transaction", "error", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// RollbackTx rolls tx back.
func (dc *DBClient) RollbackTx(tx *sqlx.Tx) error {
	if err := tx.Rollback(); err != nil {
		dc.log.Errorw("Failed to rollback transaction", "error", err)
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}
