// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/allotdesk/db"
	"github.com/danielhkuo/allotdesk/models"
	"github.com/danielhkuo/allotdesk/store"
	"github.com/danielhkuo/allotdesk/testutil"
)

func newDelegateFixture(t *testing.T) (*DelegateHandler, *sql.DB) {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	t.Cleanup(func() { conn.Close() })

	h := NewDelegateHandler(store.New(conn, db.SQLite))
	h.now = func() time.Time { return time.Date(2025, 11, 5, 12, 0, 0, 0, time.UTC) }
	return h, conn
}

func getDelegate(t *testing.T, h *DelegateHandler, id string) models.Registration {
	t.Helper()
	req := httptest.NewRequest("GET", "/delegates/"+id, nil)
	req.SetPathValue("id", id)
	w := httptest.NewRecorder()
	h.Get(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.DelegateResponse
	testutil.AssertJSON(t, w, &resp)
	return resp.Delegate
}

func TestListDelegates(t *testing.T) {
	h, conn := newDelegateFixture(t)
	testutil.CreateTestDelegate(t, conn, "asha@example.com", "Asha Menon")
	testutil.CreateTestDelegate(t, conn, "ravi@example.com", "Ravi Kumar")

	testCases := []struct {
		name     string
		url      string
		expected int
	}{
		{"all", "/delegates", 2},
		{"search by name", "/delegates?q=MENON", 1},
		{"search by email", "/delegates?q=ravi@", 1},
		{"filter by round", "/delegates?round=Priority", 2},
		{"filter by status", "/delegates?status=Allotted", 0},
		{"no match", "/delegates?q=zzz", 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tc.url, nil)
			w := httptest.NewRecorder()
			h.List(w, req)

			testutil.AssertStatus(t, w, http.StatusOK)
			var resp models.DelegateListResponse
			testutil.AssertJSON(t, w, &resp)
			if len(resp.Delegates) != tc.expected {
				t.Errorf("Expected %d delegates, got %d", tc.expected, len(resp.Delegates))
			}
		})
	}
}

func TestListDelegates_EmptyIsArray(t *testing.T) {
	h, _ := newDelegateFixture(t)

	req := httptest.NewRequest("GET", "/delegates", nil)
	w := httptest.NewRecorder()
	h.List(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	if body := w.Body.String(); body != "{\"ok\":true,\"delegates\":[]}\n" {
		t.Errorf("Unexpected body: %s", body)
	}
}

func TestGetDelegate_NotFound(t *testing.T) {
	h, _ := newDelegateFixture(t)

	req := httptest.NewRequest("GET", "/delegates/missing", nil)
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()
	h.Get(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestUpdateDelegate(t *testing.T) {
	h, conn := newDelegateFixture(t)
	id := testutil.CreateTestDelegate(t, conn, "asha@example.com", "Asha")

	req := testutil.MakeRequest("POST", "/delegates/update", models.UpdateDelegateRequest{
		ID: id,
		Patch: map[string]any{
			"college": "  GLCE  ",
			"email":   "hijack@example.com",
		},
	}, nil)
	w := httptest.NewRecorder()
	h.Update(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	d := getDelegate(t, h, id)
	if d.College != "GLCE" {
		t.Errorf("Expected trimmed college 'GLCE', got '%s'", d.College)
	}
	if d.Email != "asha@example.com" {
		t.Errorf("Expected email to be untouched, got '%s'", d.Email)
	}
}

func TestUpdateDelegate_Validation(t *testing.T) {
	h, conn := newDelegateFixture(t)
	id := testutil.CreateTestDelegate(t, conn, "asha@example.com", "Asha")

	testCases := []struct {
		name           string
		body           interface{}
		expectedStatus int
		expectedError  string
	}{
		{"missing id", models.UpdateDelegateRequest{Patch: map[string]any{"college": "X"}}, http.StatusBadRequest, "Missing delegate id"},
		{"missing patch", map[string]string{"id": id}, http.StatusBadRequest, "Missing patch object"},
		{"nothing allowed", models.UpdateDelegateRequest{ID: id, Patch: map[string]any{"email": "x"}}, http.StatusBadRequest, "Nothing to update"},
		{"unknown id", models.UpdateDelegateRequest{ID: "nope", Patch: map[string]any{"college": "X"}}, http.StatusNotFound, "Delegate not found"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/delegates/update", tc.body, nil)
			w := httptest.NewRecorder()
			h.Update(w, req)

			testutil.AssertStatus(t, w, tc.expectedStatus)
			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Error != tc.expectedError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectedError, resp.Error)
			}
		})
	}
}

func TestAllotDelegate(t *testing.T) {
	h, conn := newDelegateFixture(t)
	id := testutil.CreateTestDelegate(t, conn, "asha@example.com", "Asha")

	req := testutil.MakeRequest("POST", "/delegates/allot", models.AllotRequest{
		ID:                id,
		AllottedCommittee: " UNHRC ",
		AllottedPortfolio: "China",
	}, nil)
	w := httptest.NewRecorder()
	h.Allot(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	d := getDelegate(t, h, id)
	if d.Status != models.StatusAllotted {
		t.Errorf("Expected status Allotted, got %s", d.Status)
	}
	if d.AllottedCommittee == nil || *d.AllottedCommittee != "UNHRC" {
		t.Errorf("Expected committee 'UNHRC', got %v", d.AllottedCommittee)
	}
	if d.AllottedAt == nil || *d.AllottedAt != "2025-11-05T12:00:00Z" {
		t.Errorf("Expected allotted_at to be stamped, got %v", d.AllottedAt)
	}

	// Clear returns the delegate to Registered
	req = testutil.MakeRequest("POST", "/delegates/allot", models.AllotRequest{ID: id, Clear: true}, nil)
	w = httptest.NewRecorder()
	h.Allot(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	d = getDelegate(t, h, id)
	if d.Status != models.StatusRegistered {
		t.Errorf("Expected status Registered, got %s", d.Status)
	}
	if d.AllottedCommittee != nil || d.AllottedPortfolio != nil || d.AllottedAt != nil {
		t.Error("Expected allotment fields to be cleared")
	}
}

func TestAllotDelegate_Validation(t *testing.T) {
	h, conn := newDelegateFixture(t)
	id := testutil.CreateTestDelegate(t, conn, "asha@example.com", "Asha")

	testCases := []struct {
		name           string
		req            models.AllotRequest
		expectedStatus int
		expectedError  string
	}{
		{"missing id", models.AllotRequest{AllottedCommittee: "UNSC", AllottedPortfolio: "France"}, http.StatusBadRequest, "Missing delegate id"},
		{"missing committee", models.AllotRequest{ID: id, AllottedPortfolio: "France"}, http.StatusBadRequest, "Missing allotted_committee"},
		{"blank portfolio", models.AllotRequest{ID: id, AllottedCommittee: "UNSC", AllottedPortfolio: "  "}, http.StatusBadRequest, "Missing allotted_portfolio"},
		{"unknown id", models.AllotRequest{ID: "nope", AllottedCommittee: "UNSC", AllottedPortfolio: "France"}, http.StatusNotFound, "Delegate not found"},
		{"clear unknown id", models.AllotRequest{ID: "nope", Clear: true}, http.StatusNotFound, "Delegate not found"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/delegates/allot", tc.req, nil)
			w := httptest.NewRecorder()
			h.Allot(w, req)

			testutil.AssertStatus(t, w, tc.expectedStatus)
			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Error != tc.expectedError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectedError, resp.Error)
			}
		})
	}
}
