// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/danielhkuo/allotdesk/sheets"
)

// FakeSheet is an in-memory sheets.Source. Reads ignore the range and
// return every row of the spreadsheet; writes are applied cell by cell.
type FakeSheet struct {
	mu     sync.Mutex
	rows   map[string][][]string
	Reads  []string
	Writes [][]sheets.RangeUpdate

	ReadErr  error
	WriteErr error
}

var _ sheets.Source = (*FakeSheet)(nil)

func NewFakeSheet() *FakeSheet {
	return &FakeSheet{rows: map[string][][]string{}}
}

// SetRows replaces the rows of a spreadsheet, header included
func (f *FakeSheet) SetRows(spreadsheetID string, rows [][]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[spreadsheetID] = rows
}

func (f *FakeSheet) Read(_ context.Context, spreadsheetID, rng string) ([][]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Reads = append(f.Reads, spreadsheetID+"|"+rng)
	if f.ReadErr != nil {
		return nil, f.ReadErr
	}

	src := f.rows[spreadsheetID]
	out := make([][]string, len(src))
	for i, r := range src {
		out[i] = append([]string(nil), r...)
	}
	return out, nil
}

func (f *FakeSheet) BatchWrite(_ context.Context, spreadsheetID string, updates []sheets.RangeUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Writes = append(f.Writes, updates)
	if f.WriteErr != nil {
		return f.WriteErr
	}

	for _, u := range updates {
		_, a1, _ := strings.Cut(u.Range, "!")
		start, _, _ := strings.Cut(a1, ":")
		col, row, err := parseCell(start)
		if err != nil {
			return err
		}
		for i, vals := range u.Values {
			for j, v := range vals {
				f.set(spreadsheetID, row+i, col+j, v)
			}
		}
	}
	return nil
}

// Cell returns the value at an A1 reference such as "W2"
func (f *FakeSheet) Cell(spreadsheetID, ref string) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	col, row, err := parseCell(ref)
	if err != nil {
		return ""
	}
	rows := f.rows[spreadsheetID]
	if row >= len(rows) || col >= len(rows[row]) {
		return ""
	}
	return rows[row][col]
}

func (f *FakeSheet) set(spreadsheetID string, row, col int, v string) {
	rows := f.rows[spreadsheetID]
	for len(rows) <= row {
		rows = append(rows, nil)
	}
	for len(rows[row]) <= col {
		rows[row] = append(rows[row], "")
	}
	rows[row][col] = v
	f.rows[spreadsheetID] = rows
}

// parseCell converts "W2" to zero-based (column, row)
func parseCell(ref string) (col, row int, err error) {
	i := 0
	for i < len(ref) && ref[i] >= 'A' && ref[i] <= 'Z' {
		col = col*26 + int(ref[i]-'A'+1)
		i++
	}
	if i == 0 {
		return 0, 0, errors.New("missing column in " + ref)
	}
	n, err := strconv.Atoi(ref[i:])
	if err != nil || n < 1 {
		return 0, 0, fmt.Errorf("bad row in %s", ref)
	}
	return col - 1, n - 1, nil
}
