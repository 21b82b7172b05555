// internal/repository/postgres/store.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/repository"
)

const schema = `
	CREATE TABLE IF NOT EXISTS app_records (
		collection TEXT NOT NULL,
		id         TEXT NOT NULL,
		data       JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (collection, id)
	)
`

// Store keeps every collection in one jsonb table.
type Store struct {
	db *DB
}

func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// Migrate creates the records table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create app_records: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, c repository.Collection, id string) ([]byte, error) {
	query := `SELECT data FROM app_records WHERE collection = $1 AND id = $2`

	var data []byte
	err := s.db.GetContext(ctx, &data, query, string(c), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s %s: %w", c, id, err)
	}
	return data, nil
}

func (s *Store) List(ctx context.Context, c repository.Collection) ([][]byte, error) {
	query := `SELECT data FROM app_records WHERE collection = $1 ORDER BY id`

	var rows [][]byte
	if err := s.db.SelectContext(ctx, &rows, query, string(c)); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", c, err)
	}
	return rows, nil
}

func (s *Store) Put(ctx context.Context, c repository.Collection, id string, doc []byte) error {
	return s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO app_records (collection, id, data, created_at, updated_at)
			VALUES ($1, $2, $3::jsonb, NOW(), NOW())
			ON CONFLICT (collection, id)
			DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
		`
		if _, err := tx.ExecContext(ctx, query, string(c), id, string(doc)); err != nil {
			return fmt.Errorf("failed to put %s %s: %w", c, id, err)
		}
		return nil
	})
}

func (s *Store) Delete(ctx context.Context, c repository.Collection, id string) error {
	return s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM app_records WHERE collection = $1 AND id = $2`, string(c), id)
		if err != nil {
			return fmt.Errorf("failed to delete %s %s: %w", c, id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to delete %s %s: %w", c, id, err)
		}
		if n == 0 {
			return repository.ErrNotFound
		}
		return nil
	})
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}
