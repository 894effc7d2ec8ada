// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package syncer moves registrations between the spreadsheet and the row
// store.
//
// Sync reads one round's sheet, normalizes and deduplicates the rows and
// upserts them by email in a single batch. Writeback reads the writeback
// round's sheet, matches rows to stored delegates by email and writes the
// allotment columns (W:Z) back in a single batch update.
//
// Neither operation retries or locks. Each call stands alone and is safe
// to run concurrently with others; overlapping writebacks converge because
// every write is derived from the store.
package syncer
