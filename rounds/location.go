// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rounds

import (
	"strings"

	"github.com/danielhkuo/allotdesk/models"
)

// Location identifies the spreadsheet tab holding a round's responses.
type Location struct {
	SpreadsheetID string
	SheetName     string
}

// A1 qualifies a cell range with the quoted sheet name.
func (l Location) A1(cells string) string {
	return "'" + strings.ReplaceAll(l.SheetName, "'", "''") + "'!" + cells
}

// Range is the read range covering the response columns, header included.
func (l Location) Range() string {
	return l.A1("A1:Z")
}

// EnvKeys returns the environment variable names for a round's sheet id and tab name.
func EnvKeys(round string) (idKey, nameKey string) {
	prefix := strings.ToUpper(strings.TrimSpace(round))
	return prefix + "_SHEET_ID", prefix + "_SHEET_NAME"
}

// LocationFor reads a round's sheet location. Both values are required.
func LocationFor(round string, getenv func(string) string) (Location, error) {
	idKey, nameKey := EnvKeys(round)
	loc := Location{
		SpreadsheetID: strings.TrimSpace(getenv(idKey)),
		SheetName:     strings.TrimSpace(getenv(nameKey)),
	}
	if loc.SpreadsheetID == "" {
		return Location{}, models.ConfigError("missing %s", idKey)
	}
	if loc.SheetName == "" {
		return Location{}, models.ConfigError("missing %s", nameKey)
	}
	return loc, nil
}
