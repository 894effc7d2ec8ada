// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Database connection string or SQLite path (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - WritebackRound: Round whose sheet receives allotment results (default: Priority)
  - EnvFile: Dotenv file loaded before the environment is read (default: .env)

# CLI Flags

	-p                Server port
	-d                Database URL
	-t                Database type
	--writeback-round Writeback round
	--env             Dotenv file path ("" disables)

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	WRITEBACK_ROUND → --writeback-round

CLI flags take precedence over environment variables, and variables already
set in the environment take precedence over the dotenv file. A missing
dotenv file is not an error.

Sheet locations, Google credentials and SMTP settings are read from the
environment by the packages that use them (rounds, sheets, mailer), after
the dotenv file has been loaded.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - PORT must be numeric when set
*/
package cliparse
