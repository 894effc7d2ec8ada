// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/danielhkuo/allotdesk/models"
)

// PatchFields is the set of columns a manual edit may change.
var PatchFields = []string{
	"full_name",
	"whatsapp",
	"college",
	"course",
	"category",
	"ca_code",
	"round",
	"status",
	"accommodation",
	"mun_experience",
}

// Update applies an allowlisted patch. Keys outside PatchFields are ignored;
// string values are trimmed.
func (s *Store) Update(ctx context.Context, id string, patch map[string]any) error {
	if strings.TrimSpace(id) == "" {
		return models.ValidationError("Missing delegate id")
	}

	var sets []string
	var args []any
	for _, col := range PatchFields {
		v, ok := patch[col]
		if !ok {
			continue
		}
		str, isString := v.(string)
		if !isString {
			return models.ValidationError("%s must be a string", col)
		}
		sets = append(sets, col+" = ?")
		args = append(args, strings.TrimSpace(str))
	}
	if len(sets) == 0 {
		return models.ValidationError("Nothing to update")
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, s.stamp(), id)
	return s.exec(ctx, `UPDATE delegates SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
}

// Allot records a committee and portfolio and marks the delegate Allotted.
func (s *Store) Allot(ctx context.Context, id, committee, portfolio string, at time.Time) error {
	committee = strings.TrimSpace(committee)
	portfolio = strings.TrimSpace(portfolio)
	switch {
	case strings.TrimSpace(id) == "":
		return models.ValidationError("Missing delegate id")
	case committee == "":
		return models.ValidationError("Missing allotted_committee")
	case portfolio == "":
		return models.ValidationError("Missing allotted_portfolio")
	}

	return s.exec(ctx, `
		UPDATE delegates
		SET allotted_committee = ?, allotted_portfolio = ?, allotted_at = ?, status = ?, updated_at = ?
		WHERE id = ?
	`, committee, portfolio, at.UTC().Format(time.RFC3339), models.StatusAllotted, s.stamp(), id)
}

// ClearAllotment nulls all allotment fields and returns the delegate to Registered.
func (s *Store) ClearAllotment(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return models.ValidationError("Missing delegate id")
	}
	return s.exec(ctx, `
		UPDATE delegates
		SET allotted_committee = NULL, allotted_portfolio = NULL, allotted_at = NULL, status = ?, updated_at = ?
		WHERE id = ?
	`, models.StatusRegistered, s.stamp(), id)
}

func (s *Store) MarkEmailSent(ctx context.Context, id string, at time.Time) error {
	return s.exec(ctx, `
		UPDATE delegates
		SET email_status = ?, email_sent_at = ?, email_error = NULL, updated_at = ?
		WHERE id = ?
	`, models.EmailSent, at.UTC().Format(time.RFC3339), s.stamp(), id)
}

func (s *Store) MarkEmailFailed(ctx context.Context, id, reason string) error {
	if err := s.exec(ctx, `
		UPDATE delegates
		SET email_status = ?, email_error = ?, updated_at = ?
		WHERE id = ?
	`, models.EmailFailed, reason, s.stamp(), id); err != nil {
		return fmt.Errorf("record email failure: %w", err)
	}
	return nil
}
