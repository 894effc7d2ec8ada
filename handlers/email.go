// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/allotdesk/mailer"
	"github.com/danielhkuo/allotdesk/metrics"
	"github.com/danielhkuo/allotdesk/middleware"
	"github.com/danielhkuo/allotdesk/models"
	"github.com/danielhkuo/allotdesk/store"
)

type EmailHandler struct {
	store   *store.Store
	mailer  mailer.Mailer
	event   mailer.Event
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewEmailHandler(st *store.Store, m mailer.Mailer, ev mailer.Event, met *metrics.Metrics) *EmailHandler {
	return &EmailHandler{store: st, mailer: m, event: ev, metrics: met, now: time.Now}
}

// Send handles POST /email/allotment/send
func (h *EmailHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req models.SendEmailRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	id := strings.TrimSpace(req.ID)
	if id == "" {
		middleware.WriteError(w, r, models.ValidationError("Missing delegate id"))
		return
	}
	if err := h.mailer.Check(); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	if err := h.deliver(r.Context(), id); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.OKResponse{OK: true})
}

// Bulk handles POST /email/allotment/bulk. Each id is sent independently;
// one failure does not stop the rest.
func (h *EmailHandler) Bulk(w http.ResponseWriter, r *http.Request) {
	var req models.BulkEmailRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	ids := uniqueIDs(req.IDs)
	if len(ids) == 0 {
		middleware.WriteError(w, r, models.ValidationError("Missing ids[]"))
		return
	}
	// A missing transport setting fails the whole request; no row is touched.
	if err := h.mailer.Check(); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	resp := models.BulkEmailResponse{OK: true, Total: len(ids), Results: make([]models.EmailResult, 0, len(ids))}
	for _, id := range ids {
		res := models.EmailResult{ID: id, OK: true}
		if err := h.deliver(r.Context(), id); err != nil {
			res.OK = false
			res.Error = err.Error()
			resp.Failed++
		} else {
			resp.Sent++
		}
		resp.Results = append(resp.Results, res)
	}

	slog.Info("bulk allotment email completed", "total", resp.Total, "sent", resp.Sent, "failed", resp.Failed)
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// uniqueIDs drops blanks and repeats, keeping request order.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// deliver sends the allotment email for one delegate and records the
// outcome on the delegate's row.
func (h *EmailHandler) deliver(ctx context.Context, id string) error {
	d, err := h.store.Get(ctx, id)
	if err != nil {
		return err
	}

	err = h.send(ctx, d)
	h.metrics.ObserveEmail(err)
	if err != nil {
		slog.Error("allotment email failed", "id", id, "error", err)
		if recErr := h.store.MarkEmailFailed(ctx, id, err.Error()); recErr != nil {
			slog.Error("failed to record email failure", "id", id, "error", recErr)
		}
		return err
	}

	if err := h.store.MarkEmailSent(ctx, id, h.now()); err != nil {
		wrapped := models.UpstreamError("Email sent, but failed to update status", err)
		slog.Error("failed to record email sent", "id", id, "error", err)
		if recErr := h.store.MarkEmailFailed(ctx, id, wrapped.Error()); recErr != nil {
			slog.Error("failed to record email failure", "id", id, "error", recErr)
		}
		return wrapped
	}
	slog.Info("allotment email sent", "id", id)
	return nil
}

func (h *EmailHandler) send(ctx context.Context, d models.Registration) error {
	if d.Email == "" {
		return models.ValidationError("Delegate email missing")
	}
	if isBlank(d.AllottedCommittee) || isBlank(d.AllottedPortfolio) {
		return models.ValidationError("Allotment missing (committee/portfolio)")
	}

	return h.mailer.Send(ctx, mailer.AllotmentMessage(h.event, mailer.Allotment{
		Name:      d.FullName,
		Email:     d.Email,
		Round:     d.Round,
		Committee: *d.AllottedCommittee,
		Portfolio: *d.AllottedPortfolio,
	}))
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
