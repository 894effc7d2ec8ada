// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the allotdesk API.

# Handler Types

Each handler is a struct holding the collaborators it needs:

  - SyncHandler: spreadsheet import and writeback triggers
  - DelegateHandler: delegate search, detail, patch and allotment
  - EmailHandler: allotment confirmation emails, single and bulk

Handlers are created via constructor functions:

	syncHandler := handlers.NewSyncHandler(svc)
	delegateHandler := handlers.NewDelegateHandler(st)

# Sync

	POST /sync/registrations?round=Priority → Registrations
	POST /sync/writeback                    → Writeback
	GET  /sync/rounds                       → Rounds

An omitted round means Priority. Writeback targets the round configured
with WRITEBACK_ROUND.

# Delegates

	GET  /delegates?q=&round=&status=&category= → List
	GET  /delegates/{id}                        → Get
	POST /delegates/update                      → Update (allowlisted patch)
	POST /delegates/allot                       → Allot (or clear)

# Email

	POST /email/allotment/send → Send
	POST /email/allotment/bulk → Bulk

Every send records email_status on the delegate, "sent" or "failed" with
the reason.

# Errors

Failures are written with middleware.WriteError, which maps the error kind
to a status: validation 400, not found 404, configuration 500, upstream 502.
*/
package handlers
