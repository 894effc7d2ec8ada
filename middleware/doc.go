// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP helpers shared by the handlers.

  - WithLogging: logs method, path, client IP, status and duration
  - CORS: reflects the request origin for the dashboard
  - JSONResponse / ErrorResponse: JSON writers; errors use {"ok": false, "error": "..."}
  - WriteError: maps a models.Error kind to a status code
    (validation 400, not found 404, configuration 500, upstream 502)
  - ParseJSONBody: decodes a request body, reporting failures as validation errors
*/
package middleware
