// Package postgres stores save slots and their backups in PostgreSQL
package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/osse101/ChronoFarm_Go/internal/save"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrate applies the embedded goose migrations
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	fsys, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
	}
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
	}
	slog.Default().Info(LogMsgMigrationsApplied, "applied", len(results))
	return nil
}

// Store is a PostgreSQL save.Backend
type Store struct {
	pool *pgxpool.Pool
}

var _ save.Backend = (*Store)(nil)

// New creates a store on an existing pool. Call Migrate first.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Name implements save.Backend
func (s *Store) Name() string { return "postgres" }

// Read implements save.Backend
func (s *Store) Read(ctx context.Context, slot string) ([]byte, error) {
	var data []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM save_slots WHERE slot = $1`, slot).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", save.ErrNotFound, slot)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToReadSlot, err)
	}
	return data, nil
}

// Write implements save.Backend. Rolling the old row, upserting the new one
// and pruning happen in one transaction.
func (s *Store) Write(ctx context.Context, slot string, data []byte, keep int) error {
	if err := save.ValidateSlot(slot); err != nil {
		return err
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if keep > 0 {
		_, err = tx.Exec(ctx, `
			INSERT INTO save_backups (id, slot, data, created_at)
			SELECT $1, slot, data, updated_at FROM save_slots WHERE slot = $2`,
			uuid.NewString(), slot)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToRollBackup, err)
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO save_slots (slot, data, updated_at) VALUES ($1, $2, clock_timestamp())
		ON CONFLICT (slot) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
		slot, data)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToWriteSlot, err)
	}

	_, err = tx.Exec(ctx, `
		DELETE FROM save_backups
		WHERE slot = $1 AND id NOT IN (
			SELECT id FROM save_backups WHERE slot = $1 ORDER BY created_at DESC LIMIT $2
		)`, slot, max(keep, 0))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToPruneBackups, err)
	}

	return tx.Commit(ctx)
}

// Backups implements save.Backend
func (s *Store) Backups(ctx context.Context, slot string) ([]save.Backup, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id::text, created_at FROM save_backups
		WHERE slot = $1 ORDER BY created_at DESC`, slot)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListBackups, err)
	}
	backups, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (save.Backup, error) {
		var b save.Backup
		err := row.Scan(&b.ID, &b.CreatedAt)
		return b, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListBackups, err)
	}
	return backups, nil
}

// ReadBackup implements save.Backend
func (s *Store) ReadBackup(ctx context.Context, slot, id string) ([]byte, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: backup %q", save.ErrNotFound, id)
	}
	var data []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM save_backups WHERE slot = $1 AND id = $2`, slot, id).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: backup %s", save.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToReadSlot, err)
	}
	return data, nil
}

// Delete implements save.Backend
func (s *Store) Delete(ctx context.Context, slot string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM save_backups WHERE slot = $1`, slot); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM save_slots WHERE slot = $1`, slot); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
