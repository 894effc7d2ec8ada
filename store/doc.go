// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the delegates row store.

# Upsert

UpsertRegistrations writes a sync batch in one transaction keyed on email.
New emails get a UUID id and status Registered. Existing rows have their
registration fields replaced; status, allotment and email tracking columns
are left as they are.

# Workflows

  - Update: manual edit of PatchFields only
  - Allot / ClearAllotment: set or clear committee, portfolio and allotted_at together
  - MarkEmailSent / MarkEmailFailed: delivery tracking

Each returns a not-found error when the id matches no row.
*/
package store
