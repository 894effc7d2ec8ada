// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"

	"github.com/danielhkuo/allotdesk/middleware"
	"github.com/danielhkuo/allotdesk/models"
)

// Syncer runs the spreadsheet sync operations.
type Syncer interface {
	Sync(ctx context.Context, round string) (models.SyncResult, error)
	Writeback(ctx context.Context) (models.WritebackResult, error)
	Rounds() []string
}

type SyncHandler struct {
	svc Syncer
}

func NewSyncHandler(svc Syncer) *SyncHandler {
	return &SyncHandler{svc: svc}
}

// Registrations handles POST /sync/registrations?round=
func (h *SyncHandler) Registrations(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Sync(r.Context(), r.URL.Query().Get("round"))
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SyncResponse{OK: true, SyncResult: res})
}

// Writeback handles POST /sync/writeback
func (h *SyncHandler) Writeback(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Writeback(r.Context())
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.WritebackResponse{OK: true, WritebackResult: res})
}

// Rounds handles GET /sync/rounds
func (h *SyncHandler) Rounds(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.RoundsResponse{OK: true, Rounds: h.svc.Rounds()})
}
