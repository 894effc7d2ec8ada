// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package syncer

import (
	"context"
	"log/slog"
	"time"

	"github.com/danielhkuo/allotdesk/models"
	"github.com/danielhkuo/allotdesk/registration"
)

// Sync imports one round's sheet into the store. Rows are normalized,
// deduplicated by email (last row wins) and upserted as one batch. A sheet
// with no data rows imports nothing and is not an error.
func (s *Service) Sync(ctx context.Context, round string) (res models.SyncResult, err error) {
	start := time.Now()
	label := "unknown"
	defer func() {
		s.metrics.ObserveSync(label, res, err, time.Since(start))
	}()

	layout, loc, err := s.rounds.Resolve(defaultRound(round), s.getenv)
	if err != nil {
		return models.SyncResult{}, err
	}
	label = layout.Round
	res.Round = layout.Round

	rows, err := s.source.Read(ctx, loc.SpreadsheetID, loc.Range())
	if err != nil {
		return models.SyncResult{}, upstream("spreadsheet read failed", err)
	}

	// Header only
	if len(rows) < 2 {
		slog.Info("sync found no data rows", "round", layout.Round, "rows", len(rows))
		return res, nil
	}

	batch := registration.BuildBatch(rows[1:], layout)
	res.SkippedCount = batch.Skipped()

	if len(batch.Records) > 0 {
		n, err := s.store.UpsertRegistrations(ctx, batch.Records)
		if err != nil {
			return models.SyncResult{}, upstream("store upsert failed", err)
		}
		res.ImportedCount = n
	}

	slog.Info("sync completed",
		"round", layout.Round,
		"imported", res.ImportedCount,
		"rejected", batch.Rejected,
		"duplicates", batch.Duplicates,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}
