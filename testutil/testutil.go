// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/allotdesk/cliparse"
	"github.com/danielhkuo/allotdesk/db"
)

// SetupTestDB creates a fresh SQLite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.SQLite, filepath.Join(t.TempDir(), "allotdesk.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		DatabaseURL:    "file:test.db",
		DatabaseType:   "sqlite",
		WritebackRound: "Priority",
	}
}

// Env returns a getenv function backed by m
func Env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

// SheetEnv configures every built-in round to read from the given spreadsheet
func SheetEnv(spreadsheetID, sheetName string) map[string]string {
	env := map[string]string{}
	for _, round := range []string{"PRIORITY", "FIRST", "LIGHTNING"} {
		env[round+"_SHEET_ID"] = spreadsheetID
		env[round+"_SHEET_NAME"] = sheetName
	}
	return env
}

// CreateTestDelegate inserts a delegate in Registered status and returns its ID
func CreateTestDelegate(t *testing.T, conn *sql.DB, email, fullName string) string {
	t.Helper()

	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := conn.Exec(`
		INSERT INTO delegates (id, reg_id, round, full_name, email, preferences, status, created_at, updated_at)
		VALUES (?, ?, 'Priority', ?, ?, '{"pref1":{"committee":"","portfolios":[]},"pref2":{"committee":"","portfolios":[]},"pref3":{"committee":"","portfolios":[]}}', 'Registered', ?, ?)
	`, id, "PR-test-"+id[:8], fullName, email, now, now)
	if err != nil {
		t.Fatalf("Failed to create test delegate: %v", err)
	}

	return id
}

// AllotTestDelegate sets allotment fields directly
func AllotTestDelegate(t *testing.T, conn *sql.DB, id, committee, portfolio, allottedAt string) {
	t.Helper()

	_, err := conn.Exec(`
		UPDATE delegates
		SET allotted_committee = ?, allotted_portfolio = ?, allotted_at = ?, status = 'Allotted'
		WHERE id = ?
	`, committee, portfolio, allottedAt, id)
	if err != nil {
		t.Fatalf("Failed to allot test delegate: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
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
