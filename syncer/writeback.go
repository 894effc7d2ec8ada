// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package syncer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/allotdesk/models"
	"github.com/danielhkuo/allotdesk/registration"
	"github.com/danielhkuo/allotdesk/rounds"
	"github.com/danielhkuo/allotdesk/sheets"
)

// Output columns on the registration sheet: committee, portfolio, status, allotted at.
const (
	OutputFirstColumn = "W"
	OutputLastColumn  = "Z"
)

// firstDataRow is the sheet row number of the first row after the header.
const firstDataRow = 2

// rowIndex maps email key to 1-based sheet row. A repeated email maps to
// its last row.
func rowIndex(rows [][]string, layout rounds.Layout) map[string]int {
	idx := make(map[string]int, len(rows))
	emailCol := layout.Index(rounds.Email)
	for i, r := range rows {
		key := registration.EmailKey(registration.Cell(r, emailCol))
		if key == "" {
			continue
		}
		idx[key] = i + firstDataRow
	}
	return idx
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Writeback pushes allotment state from the store into the writeback
// round's sheet, matching rows by email. Delegates with no matching row are
// counted and skipped. All matched rows are written in one batch.
func (s *Service) Writeback(ctx context.Context) (res models.WritebackResult, err error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveWriteback(res, err, time.Since(start))
	}()

	layout, loc, err := s.rounds.Resolve(s.writebackRound, s.getenv)
	if err != nil {
		return models.WritebackResult{}, err
	}

	rows, err := s.source.Read(ctx, loc.SpreadsheetID, loc.Range())
	if err != nil {
		return models.WritebackResult{}, upstream("spreadsheet read failed", err)
	}
	if len(rows) < 2 {
		slog.Info("writeback found no data rows", "round", layout.Round)
		return res, nil
	}
	index := rowIndex(rows[1:], layout)

	delegates, err := s.store.WritebackRows(ctx)
	if err != nil {
		return models.WritebackResult{}, upstream("store query failed", err)
	}

	var updates []sheets.RangeUpdate
	for _, d := range delegates {
		key := registration.EmailKey(d.Email)
		if key == "" {
			continue
		}
		n, ok := index[key]
		if !ok {
			res.UnmatchedCount++
			continue
		}
		updates = append(updates, sheets.RangeUpdate{
			Range: loc.A1(fmt.Sprintf("%s%d:%s%d", OutputFirstColumn, n, OutputLastColumn, n)),
			Values: [][]string{{
				deref(d.AllottedCommittee),
				deref(d.AllottedPortfolio),
				d.Status,
				deref(d.AllottedAt),
			}},
		})
	}

	if len(updates) == 0 {
		slog.Info("writeback had nothing to write", "round", layout.Round, "unmatched", res.UnmatchedCount)
		return res, nil
	}

	if err := s.source.BatchWrite(ctx, loc.SpreadsheetID, updates); err != nil {
		return models.WritebackResult{}, upstream("spreadsheet batch update failed", err)
	}
	res.UpdatedCount = len(updates)

	slog.Info("writeback completed",
		"round", layout.Round,
		"updated", res.UpdatedCount,
		"unmatched", res.UnmatchedCount,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}
