// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sheets

import "context"

// RangeUpdate is one A1 range and the rows written into it.
type RangeUpdate struct {
	Range  string
	Values [][]string
}

// Source reads and writes spreadsheet ranges. Rows may be ragged.
type Source interface {
	Read(ctx context.Context, spreadsheetID, rng string) ([][]string, error)
	// BatchWrite applies all updates in one call with raw value semantics.
	BatchWrite(ctx context.Context, spreadsheetID string, updates []RangeUpdate) error
}
