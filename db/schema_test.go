// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"testing"
	"time"
)

func TestCreateSchema_Idempotent(t *testing.T) {
	ctx := context.Background()
	conn, err := Open(ctx, TypeSQLite, "file::memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer conn.Close()

	for i := 0; i < 2; i++ {
		if err := CreateSchema(ctx, conn); err != nil {
			t.Fatalf("CreateSchema call %d failed: %v", i+1, err)
		}
	}

	for _, table := range []string{"app_user", "contest", "pick"} {
		var name string
		err := conn.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = $1", table).Scan(&name)
		if err != nil {
			t.Errorf("Expected table %s to exist: %v", table, err)
		}
	}
}

func TestSchema_Constraints(t *testing.T) {
	ctx := context.Background()
	conn, err := Open(ctx, TypeSQLite, "file::memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer conn.Close()

	if err := CreateSchema(ctx, conn); err != nil {
		t.Fatal(err)
	}

	now := time.Now().UTC()
	_, err = conn.Exec(`INSERT INTO app_user (id, display_name, email, password_hash, created_at)
		VALUES ('u1', 'Alice', 'alice@example.com', 'x', $1)`, now)
	if err != nil {
		t.Fatalf("Failed to insert user: %v", err)
	}

	// end before start is rejected
	_, err = conn.Exec(`INSERT INTO contest (id, admin_id, name, ticker, start_date, end_date, created_at)
		VALUES ('c1', 'u1', 'Bad', 'AAPL', $1, $2, $3)`, now.Add(48*time.Hour), now.Add(24*time.Hour), now)
	if err == nil {
		t.Error("Expected CHECK constraint to reject end_date <= start_date")
	}

	_, err = conn.Exec(`INSERT INTO contest (id, admin_id, name, ticker, start_date, end_date, created_at)
		VALUES ('c2', 'u1', 'Good', 'AAPL', $1, $2, $3)`, now.Add(24*time.Hour), now.Add(48*time.Hour), now)
	if err != nil {
		t.Fatalf("Failed to insert contest: %v", err)
	}

	insertPick := `INSERT INTO pick (id, contest_id, user_id, price, submitted_at) VALUES ($1, 'c2', 'u1', '150.00', $2)`
	if _, err := conn.Exec(insertPick, "p1", now); err != nil {
		t.Fatalf("Failed to insert pick: %v", err)
	}
	if _, err := conn.Exec(insertPick, "p2", now); err == nil {
		t.Error("Expected UNIQUE (contest_id, user_id) to reject a second pick")
	}

	if _, err := Open(ctx, "mongo", "x"); err == nil {
		t.Error("Expected unsupported database type error")
	}
}
