// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/allotdesk/db"
	"github.com/danielhkuo/allotdesk/models"
)

// Store is the delegates row store.
type Store struct {
	conn    *sql.DB
	dialect db.Dialect
	now     func() time.Time
}

func New(conn *sql.DB, dialect db.Dialect) *Store {
	return &Store{conn: conn, dialect: dialect, now: time.Now}
}

// WithClock returns a copy of the store that stamps rows with now.
func (s *Store) WithClock(now func() time.Time) *Store {
	cp := *s
	cp.now = now
	return &cp
}

func (s *Store) stamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

const delegateColumns = `id, reg_id, source_timestamp, round, full_name, whatsapp, email,
	college, course, category, ca_code, mun_experience, accommodation, preferences, status,
	allotted_committee, allotted_portfolio, allotted_at, email_status, email_sent_at, email_error,
	created_at, updated_at`

// The update list leaves status, allotment and email tracking columns alone,
// so re-importing a round never undoes an allotment.
const upsertRegistration = `
	INSERT INTO delegates (id, reg_id, source_timestamp, round, full_name, whatsapp, email,
		college, course, category, ca_code, mun_experience, accommodation, preferences, status,
		created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (email) DO UPDATE SET
		reg_id = excluded.reg_id,
		source_timestamp = excluded.source_timestamp,
		round = excluded.round,
		full_name = excluded.full_name,
		whatsapp = excluded.whatsapp,
		college = excluded.college,
		course = excluded.course,
		category = excluded.category,
		ca_code = excluded.ca_code,
		mun_experience = excluded.mun_experience,
		accommodation = excluded.accommodation,
		preferences = excluded.preferences,
		updated_at = excluded.updated_at
`

// UpsertRegistrations inserts or updates records keyed on email in a single
// transaction. Either every record is written or none is.
func (s *Store) UpsertRegistrations(ctx context.Context, recs []models.Registration) (int, error) {
	if len(recs) == 0 {
		return 0, nil
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin upsert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, s.dialect.Rebind(upsertRegistration))
	if err != nil {
		return 0, fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	now := s.stamp()
	for _, rec := range recs {
		prefs, err := json.Marshal(rec.Preferences)
		if err != nil {
			return 0, fmt.Errorf("encode preferences for %s: %w", rec.Email, err)
		}
		status := rec.Status
		if status == "" {
			status = models.StatusRegistered
		}

		_, err = stmt.ExecContext(ctx,
			uuid.NewString(), rec.RegID, rec.SourceTimestamp, rec.Round, rec.FullName, rec.WhatsApp, rec.Email,
			rec.College, rec.Course, rec.Category, rec.CACode, rec.MUNExperience, rec.Accommodation,
			string(prefs), status, now, now,
		)
		if err != nil {
			return 0, fmt.Errorf("upsert %s: %w", rec.Email, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit upsert: %w", err)
	}
	return len(recs), nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRegistration(row scanner) (models.Registration, error) {
	var r models.Registration
	var prefs string
	err := row.Scan(
		&r.ID, &r.RegID, &r.SourceTimestamp, &r.Round, &r.FullName, &r.WhatsApp, &r.Email,
		&r.College, &r.Course, &r.Category, &r.CACode, &r.MUNExperience, &r.Accommodation, &prefs, &r.Status,
		&r.AllottedCommittee, &r.AllottedPortfolio, &r.AllottedAt, &r.EmailStatus, &r.EmailSentAt, &r.EmailError,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return models.Registration{}, err
	}
	if err := json.Unmarshal([]byte(prefs), &r.Preferences); err != nil {
		return models.Registration{}, fmt.Errorf("decode preferences for %s: %w", r.Email, err)
	}
	return r, nil
}

// Get returns one delegate by id.
func (s *Store) Get(ctx context.Context, id string) (models.Registration, error) {
	row := s.conn.QueryRowContext(ctx,
		s.dialect.Rebind(`SELECT `+delegateColumns+` FROM delegates WHERE id = ?`), id)
	r, err := scanRegistration(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Registration{}, models.NotFoundError("Delegate not found")
	}
	if err != nil {
		return models.Registration{}, fmt.Errorf("select delegate: %w", err)
	}
	return r, nil
}

// Filter narrows List. Empty fields are ignored.
type Filter struct {
	Round    string
	Status   string
	Category string
	// Case-insensitive substring over full name, email and college
	Q string
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// sourceLayouts are the timestamp formats seen in form response sheets.
var sourceLayouts = []string{
	"1/2/2006 15:04:05",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"1/2/2006",
	"2006-01-02",
}

func sourceTime(ts string) (time.Time, bool) {
	ts = strings.TrimSpace(ts)
	for _, layout := range sourceLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// sortNewestFirst orders by parsed source timestamp, newest first. Rows whose
// timestamp does not parse go last and keep their created_at order.
func sortNewestFirst(recs []models.Registration) {
	type key struct {
		t  time.Time
		ok bool
	}
	keys := make(map[string]key, len(recs))
	for _, r := range recs {
		t, ok := sourceTime(r.SourceTimestamp)
		keys[r.ID] = key{t, ok}
	}
	sort.SliceStable(recs, func(i, j int) bool {
		a, b := keys[recs[i].ID], keys[recs[j].ID]
		if a.ok && b.ok {
			return a.t.After(b.t)
		}
		return a.ok && !b.ok
	})
}

// List returns delegates matching f, newest source timestamp first.
func (s *Store) List(ctx context.Context, f Filter) ([]models.Registration, error) {
	var where []string
	var args []any

	for _, eq := range []struct{ col, val string }{
		{"round", f.Round},
		{"status", f.Status},
		{"category", f.Category},
	} {
		if v := strings.TrimSpace(eq.val); v != "" {
			where = append(where, eq.col+" = ?")
			args = append(args, v)
		}
	}
	if q := strings.TrimSpace(f.Q); q != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
		where = append(where, `(LOWER(full_name) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\' OR LOWER(college) LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern, pattern)
	}

	query := `SELECT ` + delegateColumns + ` FROM delegates`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.conn.QueryContext(ctx, s.dialect.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("select delegates: %w", err)
	}
	defer rows.Close()

	out := []models.Registration{}
	for rows.Next() {
		r, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan delegate: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate delegates: %w", err)
	}
	sortNewestFirst(out)
	return out, nil
}

// WritebackRows returns the fields pushed back to the sheet, newest delegate first.
func (s *Store) WritebackRows(ctx context.Context) ([]models.WritebackRow, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT email, allotted_committee, allotted_portfolio, status, allotted_at
		FROM delegates
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("select writeback rows: %w", err)
	}
	defer rows.Close()

	var out []models.WritebackRow
	for rows.Next() {
		var w models.WritebackRow
		if err := rows.Scan(&w.Email, &w.AllottedCommittee, &w.AllottedPortfolio, &w.Status, &w.AllottedAt); err != nil {
			return nil, fmt.Errorf("scan writeback row: %w", err)
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate writeback rows: %w", err)
	}
	return out, nil
}

// exec runs an UPDATE and reports not-found when no row matched.
func (s *Store) exec(ctx context.Context, query string, args ...any) error {
	res, err := s.conn.ExecContext(ctx, s.dialect.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("update delegate: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update delegate: %w", err)
	}
	if n == 0 {
		return models.NotFoundError("Delegate not found")
	}
	return nil
}
