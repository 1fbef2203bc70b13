package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// tableDefinitions are the schema statements applied at startup. They
// are idempotent so every process can run them unconditionally.
var tableDefinitions = []string{
	`CREATE TABLE IF NOT EXISTS subscriptions (
		id UUID PRIMARY KEY,
		target_url TEXT NOT NULL,
		secret TEXT,
		events TEXT[],
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS delivery_logs (
		id UUID PRIMARY KEY,
		webhook_id UUID NOT NULL,
		subscription_id UUID NOT NULL,
		target_url TEXT NOT NULL,
		timestamp TIMESTAMPTZ NOT NULL,
		attempt_number INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		status_code INTEGER,
		error TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_delivery_logs_webhook_id ON delivery_logs (webhook_id)`,
	`CREATE INDEX IF NOT EXISTS idx_delivery_logs_subscription_id ON delivery_logs (subscription_id)`,
}

// Connect opens a Postgres connection pool and verifies connectivity.
func Connect(ctx context.Context, databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// InitializeDatabase creates all necessary database tables if they don't exist
func InitializeDatabase(db *sql.DB) error {
	for _, query := range tableDefinitions {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}
