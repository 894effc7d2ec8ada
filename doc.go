// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the allotdesk API server.

allotdesk imports conference delegate registrations from Google Sheets
form responses, lets the secretariat allot committees and portfolios, and
writes the allotments back to the registration sheet.

# Starting the Server

The server reads flags, environment variables and an optional .env file:

	DATABASE_URL=allotdesk.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - WRITEBACK_ROUND (-writeback-round): round whose sheet receives writeback (default: Priority)
  - PRIORITY_SHEET_ID / PRIORITY_SHEET_NAME, and likewise FIRST_ and LIGHTNING_
  - GOOGLE_SERVICE_ACCOUNT_JSON, or GOOGLE_SERVICE_ACCOUNT_SECRET_ID with AWS_REGION
  - SMTP_HOST, SMTP_PORT, SMTP_SECURE, SMTP_USER, SMTP_PASS, SMTP_ALLOW_INSECURE
  - MAIL_FROM_NAME, MAIL_FROM_EMAIL, REPLY_TO_EMAIL, EVENT_NAME, EVENT_YEAR

Sheet, credential and SMTP settings are checked when first needed, so the
server starts without them and reports a configuration error on the request
that needs them.

# Architecture

  - handlers: HTTP request handlers (sync, delegates, email)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON and error helpers
  - syncer: spreadsheet import and writeback
  - rounds: per-round column layouts and sheet locations
  - registration: row normalization and dedup
  - store: delegate row store
  - sheets: Google Sheets source and credential loading
  - mailer: SMTP delivery
  - metrics: Prometheus collectors
  - models: domain types and error kinds
  - db: driver selection and schema creation
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
