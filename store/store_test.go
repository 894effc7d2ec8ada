// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/allotdesk/db"
	"github.com/danielhkuo/allotdesk/models"
	"github.com/danielhkuo/allotdesk/testutil"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	t.Cleanup(func() { conn.Close() })

	clock := time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC)
	return New(conn, db.SQLite).WithClock(func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	})
}

func reg(email, name string) models.Registration {
	return models.Registration{
		RegID:           "PR-" + name,
		SourceTimestamp: "2025-11-01 " + name,
		Round:           models.RoundPriority,
		FullName:        name,
		Email:           email,
		College:         name + " College",
		Category:        "Delegate",
		Preferences: models.Preferences{
			Pref1: models.Preference{Committee: "UNHRC", Portfolios: []string{"France"}},
			Pref2: models.Preference{Portfolios: []string{}},
			Pref3: models.Preference{Portfolios: []string{}},
		},
		Status: models.StatusRegistered,
	}
}

func mustFind(t *testing.T, s *Store, email string) models.Registration {
	t.Helper()
	all, err := s.List(context.Background(), Filter{})
	require.NoError(t, err)
	for _, r := range all {
		if r.Email == email {
			return r
		}
	}
	t.Fatalf("delegate %s not found", email)
	return models.Registration{}
}

func TestUpsertRegistrations_InsertThenUpdate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	n, err := s.UpsertRegistrations(ctx, []models.Registration{reg("alice@x.com", "Alice"), reg("bob@x.com", "Bob")})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	alice := mustFind(t, s, "alice@x.com")
	assert.NotEmpty(t, alice.ID)
	assert.Equal(t, models.StatusRegistered, alice.Status)
	assert.Equal(t, "UNHRC", alice.Preferences.Pref1.Committee)
	assert.Equal(t, []string{"France"}, alice.Preferences.Pref1.Portfolios)

	updated := reg("alice@x.com", "Alice")
	updated.FullName = "Alice Smith"
	updated.College = "New College"
	n, err = s.UpsertRegistrations(ctx, []models.Registration{updated})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	again := mustFind(t, s, "alice@x.com")
	assert.Equal(t, alice.ID, again.ID, "upsert must update in place")
	assert.Equal(t, "Alice Smith", again.FullName)
	assert.Equal(t, "New College", again.College)
	assert.Equal(t, alice.CreatedAt, again.CreatedAt)

	all, err := s.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpsertRegistrations_PreservesAllotment(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.UpsertRegistrations(ctx, []models.Registration{reg("alice@x.com", "Alice")})
	require.NoError(t, err)
	alice := mustFind(t, s, "alice@x.com")

	at := time.Date(2025, 12, 2, 9, 30, 0, 0, time.UTC)
	require.NoError(t, s.Allot(ctx, alice.ID, "UNHRC", "France", at))
	require.NoError(t, s.MarkEmailSent(ctx, alice.ID, at))

	_, err = s.UpsertRegistrations(ctx, []models.Registration{reg("alice@x.com", "Alice")})
	require.NoError(t, err)

	got, err := s.Get(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAllotted, got.Status)
	require.NotNil(t, got.AllottedCommittee)
	assert.Equal(t, "UNHRC", *got.AllottedCommittee)
	require.NotNil(t, got.AllottedAt)
	assert.Equal(t, "2025-12-02T09:30:00Z", *got.AllottedAt)
	require.NotNil(t, got.EmailStatus)
	assert.Equal(t, models.EmailSent, *got.EmailStatus)
}

func TestUpsertRegistrations_AllOrNothing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.conn.Exec(`
		CREATE TRIGGER reject_bad BEFORE INSERT ON delegates
		WHEN NEW.email = 'bad@x.com'
		BEGIN SELECT RAISE(ABORT, 'rejected'); END
	`)
	require.NoError(t, err)

	_, err = s.UpsertRegistrations(ctx, []models.Registration{reg("a@x.com", "A"), reg("bad@x.com", "Bad")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad@x.com")

	all, err := s.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Empty(t, all, "first row must be rolled back with the failing one")
}

func TestUpsertRegistrations_Empty(t *testing.T) {
	s := newTestStore(t)
	n, err := s.UpsertRegistrations(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestList_Filters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := reg("alice@x.com", "Alice")
	b := reg("bob@y.com", "Bob")
	b.Round = models.RoundFirst
	b.Category = "Press"
	c := reg("carol_1@x.com", "Carol")
	_, err := s.UpsertRegistrations(ctx, []models.Registration{a, b, c})
	require.NoError(t, err)
	require.NoError(t, s.Allot(ctx, mustFind(t, s, "carol_1@x.com").ID, "DISEC", "India", time.Now()))

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"round", Filter{Round: models.RoundFirst}, []string{"bob@y.com"}},
		{"status", Filter{Status: models.StatusAllotted}, []string{"carol_1@x.com"}},
		{"category", Filter{Category: "Press"}, []string{"bob@y.com"}},
		{"q on name case-insensitive", Filter{Q: "ALI"}, []string{"alice@x.com"}},
		{"q on email domain", Filter{Q: "@x.com"}, []string{"alice@x.com", "carol_1@x.com"}},
		{"q on college", Filter{Q: "bob college"}, []string{"bob@y.com"}},
		{"q underscore is literal", Filter{Q: "l_1"}, []string{"carol_1@x.com"}},
		{"combined", Filter{Round: models.RoundPriority, Q: "bob"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.List(ctx, tt.filter)
			require.NoError(t, err)
			var emails []string
			for _, r := range got {
				emails = append(emails, r.Email)
			}
			assert.ElementsMatch(t, tt.want, emails)
		})
	}
}

func TestList_NewestSourceTimestampFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, r := range []struct{ email, ts string }{
		{"dec@x.com", "12/1/2025 09:00:00"},
		{"sep@x.com", "9/30/2025 10:00:00"},
		{"odd@x.com", "not a time"},
	} {
		rec := reg(r.email, r.email)
		rec.SourceTimestamp = r.ts
		_, err := s.UpsertRegistrations(ctx, []models.Registration{rec})
		require.NoError(t, err)
	}

	got, err := s.List(ctx, Filter{})
	require.NoError(t, err)
	var emails []string
	for _, r := range got {
		emails = append(emails, r.Email)
	}
	assert.Equal(t, []string{"dec@x.com", "sep@x.com", "odd@x.com"}, emails)
}

func TestGet_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, models.KindNotFound, models.KindOf(err))
}

func TestWritebackRows(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.UpsertRegistrations(ctx, []models.Registration{reg("alice@x.com", "Alice"), reg("bob@x.com", "Bob")})
	require.NoError(t, err)
	require.NoError(t, s.Allot(ctx, mustFind(t, s, "bob@x.com").ID, "UNSC", "USA", time.Date(2025, 12, 3, 0, 0, 0, 0, time.UTC)))

	rows, err := s.WritebackRows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byEmail := map[string]models.WritebackRow{}
	for _, r := range rows {
		byEmail[r.Email] = r
	}
	assert.Nil(t, byEmail["alice@x.com"].AllottedCommittee)
	assert.Equal(t, models.StatusRegistered, byEmail["alice@x.com"].Status)
	require.NotNil(t, byEmail["bob@x.com"].AllottedPortfolio)
	assert.Equal(t, "USA", *byEmail["bob@x.com"].AllottedPortfolio)
	assert.Equal(t, models.StatusAllotted, byEmail["bob@x.com"].Status)
}
