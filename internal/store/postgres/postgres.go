// Package postgres persists collections as whole jsonb values, one row per
// collection. The schema is deliberately a key-value table: the entity store
// always replaces a collection in full, never a row within it.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/hvaldez/gestorpro/internal/store"
)

type Persister struct {
	db *sql.DB
}

func New(db *sql.DB) *Persister {
	return &Persister{db: db}
}

// EnsureSchema creates the collections table if it does not exist yet.
func (p *Persister) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS collections (
			name       TEXT PRIMARY KEY,
			data       JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`

	if _, err := p.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("creating collections table: %w", err)
	}

	return nil
}

func (p *Persister) LoadAll(ctx context.Context) (store.Snapshot, error) {
	query := `SELECT name, data FROM collections`

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("loading collections: %w", err)
	}
	defer rows.Close()

	var snap store.Snapshot

	for rows.Next() {
		var (
			name string
			data []byte
		)

		if err := rows.Scan(&name, &data); err != nil {
			return store.Snapshot{}, fmt.Errorf("scanning collection: %w", err)
		}

		switch name {
		case store.CollectionProducts:
			snap.Products = data
		case store.CollectionClients:
			snap.Clients = data
		case store.CollectionSales:
			snap.Sales = data
		case store.CollectionPayments:
			snap.Payments = data
		}
	}

	if err := rows.Err(); err != nil {
		return store.Snapshot{}, fmt.Errorf("iterating collections: %w", err)
	}

	return snap, nil
}

func (p *Persister) Replace(ctx context.Context, collection string, data json.RawMessage) error {
	query := `
		INSERT INTO collections (name, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
	`

	if _, err := p.db.ExecContext(ctx, query, collection, []byte(data)); err != nil {
		return fmt.Errorf("replacing collection %s: %w", collection, err)
	}

	return nil
}
