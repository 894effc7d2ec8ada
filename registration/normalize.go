// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registration

import (
	"strings"

	"github.com/danielhkuo/allotdesk/models"
	"github.com/danielhkuo/allotdesk/rounds"
)

// Cell returns the trimmed value at idx, or "" when the row is short or idx is negative.
func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// EmailKey is the dedup and match key: trimmed and lower-cased.
func EmailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegistrationID derives {prefix}-{first 6 of email local part}-{last 8 timestamp digits}.
// The local part keeps the case it was typed with. Not unique: two
// registrants can share both parts.
func RegistrationID(prefix, email, timestamp string) string {
	local, _, _ := strings.Cut(email, "@")
	if r := []rune(local); len(r) > 6 {
		local = string(r[:6])
	}

	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, timestamp)
	if len(digits) > 8 {
		digits = digits[len(digits)-8:]
	}

	return prefix + "-" + local + "-" + digits
}

// Normalize converts one sheet row into a registration. It returns false
// when the email cell is blank; such rows are dropped, not reported.
func Normalize(row []string, layout rounds.Layout) (models.Registration, bool) {
	get := func(f rounds.Field) string { return Cell(row, layout.Index(f)) }

	rawEmail := get(rounds.Email)
	email := EmailKey(rawEmail)
	if email == "" {
		return models.Registration{}, false
	}

	category := layout.DefaultCategory
	if layout.Has(rounds.Category) {
		category = get(rounds.Category)
	}

	ts := get(rounds.Timestamp)
	return models.Registration{
		RegID:           RegistrationID(layout.Prefix, rawEmail, ts),
		SourceTimestamp: ts,
		Round:           layout.Round,
		FullName:        get(rounds.FullName),
		WhatsApp:        get(rounds.WhatsApp),
		Email:           email,
		College:         get(rounds.College),
		Course:          get(rounds.Course),
		Category:        category,
		CACode:          get(rounds.CACode),
		MUNExperience:   get(rounds.MUNExperience),
		Accommodation:   get(rounds.Accommodation),
		Preferences: models.Preferences{
			Pref1: preference(row, layout, rounds.Preferences[0]),
			Pref2: preference(row, layout, rounds.Preferences[1]),
			Pref3: preference(row, layout, rounds.Preferences[2]),
		},
		Status: models.StatusRegistered,
	}, true
}

// preference never returns a nil portfolio list, so empty slots encode as [].
func preference(row []string, layout rounds.Layout, pf rounds.PreferenceFields) models.Preference {
	p := models.Preference{
		Committee:  Cell(row, layout.Index(pf.Committee)),
		Portfolios: make([]string, 0, len(pf.Portfolios)),
	}
	for _, f := range pf.Portfolios {
		if v := Cell(row, layout.Index(f)); v != "" {
			p.Portfolios = append(p.Portfolios, v)
		}
	}
	return p
}

// NormalizeRows normalizes data rows (header already removed) in order and
// counts the rows dropped for a blank email.
func NormalizeRows(rows [][]string, layout rounds.Layout) (records []models.Registration, skipped int) {
	records = make([]models.Registration, 0, len(rows))
	for _, row := range rows {
		rec, ok := Normalize(row, layout)
		if !ok {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	return records, skipped
}
