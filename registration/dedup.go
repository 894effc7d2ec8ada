// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registration

import (
	"github.com/danielhkuo/allotdesk/models"
	"github.com/danielhkuo/allotdesk/rounds"
)

// Merged is the result of collapsing a batch by email key.
type Merged struct {
	ByEmail map[string]models.Registration
	// Keys in first-seen order, for a stable upsert order.
	Keys []string
}

// Records returns the surviving registrations in first-seen key order.
func (m Merged) Records() []models.Registration {
	out := make([]models.Registration, 0, len(m.Keys))
	for _, k := range m.Keys {
		out = append(out, m.ByEmail[k])
	}
	return out
}

// Dedup collapses records sharing an email key. A later record replaces an
// earlier one wholesale; fields are never merged.
func Dedup(records []models.Registration) Merged {
	m := Merged{ByEmail: make(map[string]models.Registration, len(records))}
	for _, rec := range records {
		key := EmailKey(rec.Email)
		if key == "" {
			continue
		}
		if _, seen := m.ByEmail[key]; !seen {
			m.Keys = append(m.Keys, key)
		}
		m.ByEmail[key] = rec
	}
	return m
}

// Batch is a normalized, deduplicated sync batch.
type Batch struct {
	Records []models.Registration
	// Rows with a blank email cell
	Rejected int
	// Rows superseded by a later row with the same email
	Duplicates int
}

// Skipped is the number of data rows that did not produce an upsert.
func (b Batch) Skipped() int { return b.Rejected + b.Duplicates }

// BuildBatch normalizes data rows and collapses duplicates.
func BuildBatch(rows [][]string, layout rounds.Layout) Batch {
	records, rejected := NormalizeRows(rows, layout)
	merged := Dedup(records)
	return Batch{
		Records:    merged.Records(),
		Rejected:   rejected,
		Duplicates: len(records) - len(merged.Keys),
	}
}
