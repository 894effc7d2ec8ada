// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/danielhkuo/allotdesk/handlers"
	"github.com/danielhkuo/allotdesk/mailer"
	"github.com/danielhkuo/allotdesk/metrics"
	"github.com/danielhkuo/allotdesk/middleware"
	"github.com/danielhkuo/allotdesk/store"
)

// Deps are the collaborators shared by the handlers
type Deps struct {
	Store    *store.Store
	Syncer   handlers.Syncer
	Mailer   mailer.Mailer
	Event    mailer.Event
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}

func NewRouter(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	syncHandler := handlers.NewSyncHandler(d.Syncer)
	delegateHandler := handlers.NewDelegateHandler(d.Store)
	emailHandler := handlers.NewEmailHandler(d.Store, d.Mailer, d.Event, d.Metrics)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	if d.Gatherer != nil {
		mux.Handle("GET /metrics", metrics.Handler(d.Gatherer))
	}

	// Spreadsheet sync
	mux.HandleFunc("POST /sync/registrations", middleware.WithLogging(syncHandler.Registrations))
	mux.HandleFunc("POST /sync/writeback", middleware.WithLogging(syncHandler.Writeback))
	mux.HandleFunc("GET /sync/rounds", middleware.WithLogging(syncHandler.Rounds))

	// Delegates
	mux.HandleFunc("GET /delegates", middleware.WithLogging(delegateHandler.List))
	mux.HandleFunc("GET /delegates/{id}", middleware.WithLogging(delegateHandler.Get))
	mux.HandleFunc("POST /delegates/update", middleware.WithLogging(delegateHandler.Update))
	mux.HandleFunc("POST /delegates/allot", middleware.WithLogging(delegateHandler.Allot))

	// Allotment email
	mux.HandleFunc("POST /email/allotment/send", middleware.WithLogging(emailHandler.Send))
	mux.HandleFunc("POST /email/allotment/bulk", middleware.WithLogging(emailHandler.Bulk))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("allotdesk API v1"))
	})

	return mux
}
