// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/allotdesk/middleware"
	"github.com/danielhkuo/allotdesk/models"
	"github.com/danielhkuo/allotdesk/store"
)

type DelegateHandler struct {
	store *store.Store
	now   func() time.Time
}

func NewDelegateHandler(st *store.Store) *DelegateHandler {
	return &DelegateHandler{store: st, now: time.Now}
}

// List handles GET /delegates?q=&round=&status=&category=
func (h *DelegateHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	delegates, err := h.store.List(r.Context(), store.Filter{
		Round:    q.Get("round"),
		Status:   q.Get("status"),
		Category: q.Get("category"),
		Q:        q.Get("q"),
	})
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.DelegateListResponse{OK: true, Delegates: delegates})
}

// Get handles GET /delegates/{id}
func (h *DelegateHandler) Get(w http.ResponseWriter, r *http.Request) {
	d, err := h.store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.DelegateResponse{OK: true, Delegate: d})
}

// Update handles POST /delegates/update
func (h *DelegateHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateDelegateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	if strings.TrimSpace(req.ID) == "" {
		middleware.WriteError(w, r, models.ValidationError("Missing delegate id"))
		return
	}
	if req.Patch == nil {
		middleware.WriteError(w, r, models.ValidationError("Missing patch object"))
		return
	}

	if err := h.store.Update(r.Context(), req.ID, req.Patch); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	slog.Info("delegate updated", "id", req.ID)
	middleware.JSONResponse(w, http.StatusOK, models.OKResponse{OK: true})
}

// Allot handles POST /delegates/allot. With clear set the allotment is
// removed and the delegate returns to Registered.
func (h *DelegateHandler) Allot(w http.ResponseWriter, r *http.Request) {
	var req models.AllotRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	var err error
	if req.Clear {
		err = h.store.ClearAllotment(r.Context(), req.ID)
	} else {
		err = h.store.Allot(r.Context(), req.ID, req.AllottedCommittee, req.AllottedPortfolio, h.now())
	}
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	slog.Info("delegate allotment saved", "id", req.ID, "clear", req.Clear)
	middleware.JSONResponse(w, http.StatusOK, models.OKResponse{OK: true})
}
