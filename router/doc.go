// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package router wires the handlers into a Go 1.22 method+path ServeMux.
// Every API route is wrapped with middleware.WithLogging; /health and
// /metrics are not.
package router
