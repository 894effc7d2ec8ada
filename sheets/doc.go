// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package sheets is the spreadsheet data source.

Source is the narrow read/batch-write surface the sync code depends on.
GoogleSource implements it with the Sheets v4 API:

	src := sheets.NewGoogleSource(sheets.Loader(sheets.CredentialsConfig{
		JSON:     os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"),
		SecretID: os.Getenv("GOOGLE_SERVICE_ACCOUNT_SECRET_ID"),
	}, nil))

Service account JSON is taken inline when set, otherwise fetched from AWS
Secrets Manager. Missing credentials are a configuration error on the first
read or write, not at startup.

Writes always use RAW value input so cells are never parsed as formulas.
*/
package sheets
