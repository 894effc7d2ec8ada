// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles driver selection and schema creation.

# Drivers

Two drivers are registered:

  - postgres: github.com/lib/pq
  - sqlite: modernc.org/sqlite (pure Go, used for local runs and tests)

	d, _ := db.ParseDialect(cfg.DatabaseType)
	conn, err := db.Open(d, cfg.DatabaseURL)

Queries are written with ? placeholders and passed through Dialect.Rebind.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - delegates: one row per registrant, unique on the lower-cased email

Allotment columns (allotted_committee, allotted_portfolio, allotted_at) and
email tracking columns (email_status, email_sent_at, email_error) are never
written by registration sync.
*/
package db
