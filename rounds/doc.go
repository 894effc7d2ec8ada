// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package rounds maps registration rounds to spreadsheet column layouts and
sheet locations.

# Layouts

Every round has its own Layout, a table from semantic Field to zero-based
column index. Rounds drift independently, so layouts are never derived from
one another:

	reg := rounds.Default()
	layout, err := reg.Lookup("Lightning")

A Field missing from a layout reads as empty. Layouts without a category
column carry DefaultCategory instead.

# Locations

Sheet locations come from the environment, two variables per round:

	PRIORITY_SHEET_ID   PRIORITY_SHEET_NAME
	FIRST_SHEET_ID      FIRST_SHEET_NAME
	LIGHTNING_SHEET_ID  LIGHTNING_SHEET_NAME

Resolve returns a configuration error when either is missing.
*/
package rounds
