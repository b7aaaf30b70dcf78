// Package pgsql persists the dashboard collections as jsonb documents in
// PostgreSQL, one row per collection. The document shapes are identical
// to the file store's, so switching drivers never migrates data formats.
package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Collection row keys.
const (
	collectionItems      = "financialItems"
	collectionGoals      = "financialGoals"
	collectionMilestones = "financialMilestones"
	collectionItemOrder  = "itemOrder"
	collectionSettings   = "settings"
)

// Store gives the repositories shared access to the documents table.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore wraps a connection pool and ensures the documents table exists.
func NewStore(ctx context.Context, pool *pgxpool.Pool) (*Store, error) {
	s := &Store{pool: pool}
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS dashboard_documents (
			collection TEXT PRIMARY KEY,
			payload JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("ensuring dashboard_documents table: %w", err)
	}
	return nil
}

// getCollection decodes one collection row into dest. A missing row
// leaves dest untouched, so callers start from their zero value.
func (s *Store) getCollection(ctx context.Context, collection string, dest any) error {
	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT payload FROM dashboard_documents WHERE collection = $1`,
		collection,
	).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading collection %s: %w", collection, err)
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return fmt.Errorf("decoding collection %s: %w", collection, err)
	}
	return nil
}

// putCollection upserts one collection row.
func (s *Store) putCollection(ctx context.Context, collection string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding collection %s: %w", collection, err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO dashboard_documents (collection, payload, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (collection) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = now()`,
		collection, payload)
	if err != nil {
		return fmt.Errorf("saving collection %s: %w", collection, err)
	}
	return nil
}
