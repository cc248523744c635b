package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies every embedded migration that is not yet recorded in
// schema_migrations. Files run in lexical order, each in its own transaction.
func (dc *DBClient) Migrate(ctx context.Context) ([]string, error) {
	if _, err := dc.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`); err != nil {
		return nil, fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}

	var applied []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}

		done, err := dc.isApplied(ctx, name)
		if err != nil {
			return applied, err
		}
		if done {
			dc.log.Debugw("Skipping already applied migration", "file", name)
			continue
		}

		content, err := fs.ReadFile(migrationsFS, "migrations/"+name)
		if err != nil {
			return applied, fmt.Errorf("failed to read migration %s: %w", name, err)
		}

		dc.log.Infow("Applying migration", "file", name)
		if err := dc.apply(ctx, name, string(content)); err != nil {
			return applied, err
		}
		applied = append(applied, name)
	}

	return applied, nil
}

func (dc *DBClient) apply(ctx context.Context, version, script string) error {
	tx, err := dc.BeginTx(ctx)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, script); err != nil {
		_ = dc.RollbackTx(tx)
		return fmt.Errorf("failed to execute migration %s: %w", version, err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
		_ = dc.RollbackTx(tx)
		return fmt.Errorf("failed to record migration %s: %w", version, err)
	}

	return dc.CommitTx(tx)
}

func (dc *DBClient) isApplied(ctx context.Context, version string) (bool, error) {
	var exists bool
	err := dc.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, version)
	if err != nil {
		return false, fmt.Errorf("failed to check migration %s: %w", version, err)
	}
	return exists, nil
}
