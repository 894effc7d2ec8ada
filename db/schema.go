// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect selects driver name and placeholder style.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// ParseDialect maps a DATABASE_TYPE value to a Dialect.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sqlite", "sqlite3":
		return SQLite, nil
	case "postgres", "postgresql", "pg":
		return Postgres, nil
	default:
		return "", fmt.Errorf("unsupported database type %q", s)
	}
}

// Rebind rewrites ? placeholders to $N for postgres. Queries in this
// module never contain a literal question mark.
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Open connects and pings the database.
func Open(d Dialect, url string) (*sql.DB, error) {
	conn, err := sql.Open(string(d), url)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", d, err)
	}
	if d == SQLite {
		// Single writer; keeps upsert transactions from hitting SQLITE_BUSY.
		conn.SetMaxOpenConns(1)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", d, err)
	}
	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

// Timestamps are stored as RFC 3339 text so both drivers scan them as strings
// and writeback can copy them into the sheet unchanged.
const schema = `
-- Delegates
CREATE TABLE IF NOT EXISTS delegates (
    id TEXT PRIMARY KEY,
    reg_id TEXT NOT NULL,
    source_timestamp TEXT NOT NULL DEFAULT '',
    round TEXT NOT NULL,
    full_name TEXT NOT NULL DEFAULT '',
    whatsapp TEXT NOT NULL DEFAULT '',
    email TEXT NOT NULL UNIQUE,
    college TEXT NOT NULL DEFAULT '',
    course TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL DEFAULT '',
    ca_code TEXT NOT NULL DEFAULT '',
    mun_experience TEXT NOT NULL DEFAULT '',
    accommodation TEXT NOT NULL DEFAULT '',
    preferences TEXT NOT NULL DEFAULT '{}',
    status TEXT NOT NULL DEFAULT 'Registered',
    allotted_committee TEXT,
    allotted_portfolio TEXT,
    allotted_at TEXT,
    email_status TEXT,
    email_sent_at TEXT,
    email_error TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_delegates_round ON delegates(round);
CREATE INDEX IF NOT EXISTS idx_delegates_status ON delegates(status);
CREATE INDEX IF NOT EXISTS idx_delegates_source_timestamp ON delegates(source_timestamp);
`
