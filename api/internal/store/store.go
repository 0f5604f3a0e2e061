// Package store persists campaign engagement state in Postgres: which
// threads the agent participates in and which actions were already taken.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
)

// ErrNotFound is returned by lookups that matched no row.
var ErrNotFound = sql.ErrNoRows

// Open connects to Postgres, tunes the pool and pings with a short timeout.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(1 * time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db.Ping: %w", err)
	}
	return db, nil
}

// EnsureSchema creates the tables if they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const q = `
create table if not exists engaged_threads (
	post_id          text primary key,
	title            text not null default '',
	last_seen_count  int  not null default 0,
	last_seen_at     timestamptz not null default now(),
	checked_at       timestamptz not null default now()
);
create table if not exists campaign_marks (
	kind       text not null,
	target     text not null,
	created_at timestamptz not null default now(),
	primary key (kind, target)
);`
	if _, err := db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
