// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/danielhkuo/stockpick/auth"
	"github.com/danielhkuo/stockpick/cliparse"
	"github.com/danielhkuo/stockpick/db"
)

// SetupTestDB creates a fresh in-memory sqlite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	ctx := context.Background()
	conn, err := db.Open(ctx, db.TypeSQLite, "file::memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(ctx, conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         5000,
		DatabaseURL:  "file::memory:",
		DatabaseType: db.TypeSQLite,
		JWTSecret:    "test-jwt-secret",
		TokenTTL:     1,
		BcryptCost:   bcrypt.MinCost,
		CORSOrigins:  []string{"*"},
	}
}

// CreateTestUser inserts a user and returns its ID and a valid bearer token
func CreateTestUser(t *testing.T, conn *sql.DB, cfg cliparse.Config, displayName string) (userID, token string) {
	t.Helper()

	userID = auth.GenerateID()
	hash, err := auth.HashSecret("password123", cfg.BcryptCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO app_user (id, display_name, email, avatar, password_hash, created_at)
		VALUES ($1, $2, $3, '', $4, $5)
	`, userID, displayName, userID+"@example.com", hash, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	token, err = auth.IssueToken(userID, cfg.JWTSecret, 30*24*time.Hour, time.Now())
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	return userID, token
}

// CreateTestContest inserts a public contest owned by adminID and returns its ID
func CreateTestContest(t *testing.T, conn *sql.DB, adminID string, start, end time.Time) string {
	t.Helper()

	contestID := auth.GenerateID()
	_, err := conn.Exec(`
		INSERT INTO contest (id, admin_id, name, ticker, start_date, end_date, private, created_at)
		VALUES ($1, $2, 'Test Contest', 'AAPL', $3, $4, $5, $6)
	`, contestID, adminID, start.UTC(), end.UTC(), false, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test contest: %v", err)
	}

	return contestID
}

// CreateTestPick inserts a pick and returns its ID
func CreateTestPick(t *testing.T, conn *sql.DB, contestID, userID, price string) string {
	t.Helper()

	pickID := auth.GenerateID()
	_, err := conn.Exec(`
		INSERT INTO pick (id, contest_id, user_id, price, submitted_at)
		VALUES ($1, $2, $3, $4, $5)
	`, pickID, contestID, userID, price, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test pick: %v", err)
	}

	return pickID
}

// CountRows returns the number of rows in a table matching the where clause
func CountRows(t *testing.T, conn *sql.DB, table, where string, args ...interface{}) int {
	t.Helper()

	var n int
	if err := conn.QueryRow("SELECT COUNT(*) FROM "+table+" WHERE "+where, args...).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		var jsonBody []byte
		if s, ok := body.(string); ok {
			jsonBody = []byte(s)
		} else {
			jsonBody, _ = json.Marshal(body)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// Bearer returns the Authorization header for a token
func Bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
