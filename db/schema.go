// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

// Open connects to the configured database and verifies the connection.
// SQLite connections are limited to a single writer.
func Open(ctx context.Context, dbType, url string) (*sql.DB, error) {
	var driver string
	switch dbType {
	case TypePostgres:
		driver = "postgres"
	case TypeSQLite, "":
		driver = "sqlite"
		if !strings.Contains(url, "_pragma=") {
			sep := "?"
			if strings.Contains(url, "?") {
				sep = "&"
			}
			url += sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
		}
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if driver == "sqlite" {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

// Timestamps are written in UTC by the store. The column types are
// understood by both postgres and sqlite.
const schema = `
-- Users
CREATE TABLE IF NOT EXISTS app_user (
    id TEXT PRIMARY KEY,
    display_name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    avatar TEXT NOT NULL DEFAULT '',
    password_hash TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

-- Contests
CREATE TABLE IF NOT EXISTS contest (
    id TEXT PRIMARY KEY,
    admin_id TEXT NOT NULL REFERENCES app_user(id),
    name TEXT NOT NULL,
    ticker TEXT NOT NULL,
    start_date TIMESTAMP NOT NULL,
    end_date TIMESTAMP NOT NULL,
    private BOOLEAN NOT NULL DEFAULT FALSE,
    password_hash TEXT,
    closing_price NUMERIC(20,4),
    created_at TIMESTAMP NOT NULL,
    CHECK (end_date > start_date)
);

CREATE INDEX IF NOT EXISTS idx_contest_end_date ON contest(end_date);
CREATE INDEX IF NOT EXISTS idx_contest_admin_id ON contest(admin_id);

-- Picks: one per user per contest
CREATE TABLE IF NOT EXISTS pick (
    id TEXT PRIMARY KEY,
    contest_id TEXT NOT NULL REFERENCES contest(id) ON DELETE CASCADE,
    user_id TEXT NOT NULL REFERENCES app_user(id),
    price NUMERIC(20,4) NOT NULL CHECK (price >= 0),
    submitted_at TIMESTAMP NOT NULL,
    UNIQUE (contest_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_pick_contest_id ON pick(contest_id);
CREATE INDEX IF NOT EXISTS idx_pick_user_id ON pick(user_id);
`
