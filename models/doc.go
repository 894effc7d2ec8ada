// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - Registration: canonical delegate record, keyed by lower-cased email
  - Preferences / Preference: three ranked committee choices
  - WritebackRow: the fields pushed back to the registration sheet

# Request Types

  - UpdateDelegateRequest: id, patch
  - AllotRequest: id, allotted_committee, allotted_portfolio, clear
  - SendEmailRequest: id
  - BulkEmailRequest: ids

# Response Types

Every response carries "ok". Failures use ErrorResponse:

	{"ok": false, "error": "Delegate not found"}

# Errors

Error carries a Kind (configuration, upstream, validation, not found) that
the HTTP layer maps to a status code. KindOf treats unclassified errors as
upstream failures.

# Constants

Status values:

	StatusRegistered = "Registered"
	StatusAllotted   = "Allotted"

Rounds:

	RoundPriority, RoundFirst, RoundLightning
*/
package models
