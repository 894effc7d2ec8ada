// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/danielhkuo/allotdesk/models"
)

const valueInputRaw = "RAW"

// GoogleSource is a Source backed by the Google Sheets v4 API. The service
// is built on first use so the server starts without credentials.
type GoogleSource struct {
	load CredentialsLoader

	mu  sync.Mutex
	svc *gsheets.Service
}

var _ Source = (*GoogleSource)(nil)

func NewGoogleSource(load CredentialsLoader) *GoogleSource {
	return &GoogleSource{load: load}
}

func (g *GoogleSource) service(ctx context.Context) (*gsheets.Service, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.svc != nil {
		return g.svc, nil
	}

	creds, err := g.load(ctx)
	if err != nil {
		return nil, err
	}

	// Not the request context: the token source outlives this call.
	svc, err := gsheets.NewService(context.Background(),
		option.WithCredentialsJSON(creds),
		option.WithScopes(gsheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, models.ConfigError("invalid Google service account credentials: %v", err)
	}

	slog.Info("sheets client ready")
	g.svc = svc
	return svc, nil
}

func (g *GoogleSource) Read(ctx context.Context, spreadsheetID, rng string) ([][]string, error) {
	svc, err := g.service(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Spreadsheets.Values.Get(spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, models.UpstreamError("spreadsheet read failed", err)
	}

	rows := make([][]string, len(resp.Values))
	for i, r := range resp.Values {
		cells := make([]string, len(r))
		for j, v := range r {
			if v != nil {
				cells[j] = fmt.Sprint(v)
			}
		}
		rows[i] = cells
	}
	return rows, nil
}

func (g *GoogleSource) BatchWrite(ctx context.Context, spreadsheetID string, updates []RangeUpdate) error {
	svc, err := g.service(ctx)
	if err != nil {
		return err
	}

	data := make([]*gsheets.ValueRange, 0, len(updates))
	for _, u := range updates {
		values := make([][]interface{}, len(u.Values))
		for i, row := range u.Values {
			cells := make([]interface{}, len(row))
			for j, c := range row {
				cells[j] = c
			}
			values[i] = cells
		}
		data = append(data, &gsheets.ValueRange{Range: u.Range, Values: values})
	}

	_, err = svc.Spreadsheets.Values.BatchUpdate(spreadsheetID, &gsheets.BatchUpdateValuesRequest{
		ValueInputOption: valueInputRaw,
		Data:             data,
	}).Context(ctx).Do()
	if err != nil {
		return models.UpstreamError("spreadsheet batch update failed", err)
	}
	return nil
}
