package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const recordsSchema = `
CREATE TABLE IF NOT EXISTS records (
	user_id    TEXT        NOT NULL,
	name       TEXT        NOT NULL,
	body       JSONB       NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (user_id, name)
)`

// Postgres keeps records in a single JSONB table keyed by (user_id, name).
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres ensures the records table exists and returns the store.
func NewPostgres(ctx context.Context, pool *pgxpool.Pool) (*Postgres, error) {
	if _, err := pool.Exec(ctx, recordsSchema); err != nil {
		return nil, fmt.Errorf("create records table: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// Load implements Store.
func (p *Postgres) Load(ctx context.Context, userID, name string) (json.RawMessage, bool, error) {
	var body []byte
	err := p.pool.QueryRow(ctx,
		`SELECT body FROM records WHERE user_id = $1 AND name = $2`,
		userID, name,
	).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load record %s/%s: %w", userID, name, err)
	}
	return body, true, nil
}

// Save implements Store with an upsert.
func (p *Postgres) Save(ctx context.Context, userID, name string, record any) error {
	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal record %s: %w", name, err)
	}
	_, err = p.pool.Exec(ctx,
		`INSERT INTO records (user_id, name, body, updated_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (user_id, name)
		 DO UPDATE SET body = EXCLUDED.body, updated_at = now()`,
		userID, name, body,
	)
	if err != nil {
		return fmt.Errorf("save record %s/%s: %w", userID, name, err)
	}
	return nil
}

// Users implements Store.
func (p *Postgres) Users(ctx context.Context) ([]string, error) {
	rows, err := p.pool.Query(ctx, `SELECT DISTINCT user_id FROM records ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		users = append(users, id)
	}
	return users, rows.Err()
}
