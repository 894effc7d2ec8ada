// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rounds

import "github.com/danielhkuo/allotdesk/models"

// Each round's form was edited independently, so columns drift between
// rounds. Lightning dropped the category question entirely.

var priorityLayout = Layout{
	Round:  models.RoundPriority,
	Prefix: "PR",
	Columns: withPreferences(map[Field]int{
		Timestamp:     0,
		FullName:      1,
		WhatsApp:      2,
		Email:         3,
		College:       4,
		Course:        5,
		Category:      6,
		CACode:        7,
		MUNExperience: 8,
		Accommodation: 9,
	}, 10),
}

var firstLayout = Layout{
	Round:  models.RoundFirst,
	Prefix: "FR",
	Columns: withPreferences(map[Field]int{
		Timestamp:     0,
		FullName:      1,
		Email:         2,
		WhatsApp:      3,
		College:       4,
		Course:        5,
		Category:      6,
		CACode:        7,
		MUNExperience: 8,
		Accommodation: 9,
	}, 10),
}

var lightningLayout = Layout{
	Round:           models.RoundLightning,
	Prefix:          "LR",
	DefaultCategory: DefaultCategory,
	Columns: withPreferences(map[Field]int{
		Timestamp:     0,
		FullName:      1,
		WhatsApp:      2,
		Email:         3,
		College:       4,
		Course:        5,
		CACode:        6,
		MUNExperience: 7,
		Accommodation: 8,
	}, 9),
}

// Default returns the built-in round table.
func Default() *Registry {
	return NewRegistry(priorityLayout, firstLayout, lightningLayout)
}

// withPreferences adds the three committee/portfolio groups, four columns
// each, starting at column start.
func withPreferences(cols map[Field]int, start int) map[Field]int {
	for i, p := range Preferences {
		base := start + i*4
		cols[p.Committee] = base
		for j, f := range p.Portfolios {
			cols[f] = base + 1 + j
		}
	}
	return cols
}
