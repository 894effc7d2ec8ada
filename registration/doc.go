// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package registration turns raw sheet rows into deduplicated registrations.
//
// Normalize trims every cell, derives the registration id and builds the
// three preference slots. Rows with a blank email are dropped. Dedup keys
// records by EmailKey and keeps the last row seen for each key.
package registration
