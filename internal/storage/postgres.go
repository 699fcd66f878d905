package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres keeps items in the client_storage table.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres returns a Store backed by pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) Get(ctx context.Context, namespace, key string) (string, bool, error) {
	if namespace == "" {
		return "", false, ErrNamespaceRequired
	}
	const query = `
        SELECT value FROM client_storage WHERE namespace=$1 AND key=$2`
	var value string
	err := p.pool.QueryRow(ctx, query, namespace, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (p *Postgres) Items(ctx context.Context, namespace string) (map[string]string, error) {
	if namespace == "" {
		return nil, ErrNamespaceRequired
	}
	const query = `
        SELECT key, value FROM client_storage WHERE namespace=$1`
	rows, err := p.pool.Query(ctx, query, namespace)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		items[key] = value
	}
	return items, rows.Err()
}

// SetItems upserts all items in one transaction.
func (p *Postgres) SetItems(ctx context.Context, namespace string, items map[string]string) error {
	if namespace == "" {
		return ErrNamespaceRequired
	}
	if len(items) == 0 {
		return nil
	}
	const query = `
        INSERT INTO client_storage (namespace, key, value)
        VALUES ($1,$2,$3)
        ON CONFLICT (namespace, key) DO UPDATE SET value=EXCLUDED.value, updated_at=NOW()`

	return pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for k, v := range items {
			batch.Queue(query, namespace, k, v)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("upsert client storage: %w", err)
		}
		return nil
	})
}

func (p *Postgres) Delete(ctx context.Context, namespace string, keys ...string) error {
	if namespace == "" {
		return ErrNamespaceRequired
	}
	if len(keys) == 0 {
		return nil
	}
	const query = `
        DELETE FROM client_storage WHERE namespace=$1 AND key = ANY($2)`
	_, err := p.pool.Exec(ctx, query, namespace, keys)
	return err
}

func (p *Postgres) Clear(ctx context.Context, namespace string) error {
	if namespace == "" {
		return ErrNamespaceRequired
	}
	const query = `
        DELETE FROM client_storage WHERE namespace=$1`
	_, err := p.pool.Exec(ctx, query, namespace)
	return err
}

func (p *Postgres) Ping(ctx context.Context) error {
	if p.pool == nil {
		return errors.New("postgres pool not configured")
	}
	return p.pool.Ping(ctx)
}
