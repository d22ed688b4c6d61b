// Package sheets wraps the Google Sheets API for expense storage: a thin
// client, the category catalog, and the append-only record sink.
package sheets

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m3rciful/expensebot/core/logger"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
	"log/slog"
)

// Client is a spreadsheet-scoped wrapper over the Sheets API service.
// The active spreadsheet can be swapped at runtime via SetSpreadsheet.
type Client struct {
	svc *sheetsapi.Service

	mu            sync.RWMutex
	spreadsheetID string
}

// New authenticates with the provided service account JSON and returns a
// client without an active spreadsheet. Credential problems surface here so
// that startup can fail before any dialogue traffic is served.
func New(ctx context.Context, credentialsJSON []byte) (*Client, error) {
	creds, err := NormalizeCredentials(credentialsJSON)
	if err != nil {
		return nil, fmt.Errorf("sheets: bad credentials: %w", err)
	}
	if _, err := google.JWTConfigFromJSON(creds, sheetsapi.SpreadsheetsScope); err != nil {
		return nil, fmt.Errorf("sheets: invalid service account credentials: %w", err)
	}

	start := time.Now()
	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsJSON(creds),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("sheets: service init failed: %w", err)
	}
	logger.Sheets.Info("sheets authorized",
		slog.String("event", "auth"),
		slog.String("status", "ok"),
		slog.Duration("duration", logger.RoundMS(time.Since(start))),
	)

	return &Client{svc: svc}, nil
}

// SetSpreadsheet switches the active spreadsheet.
func (c *Client) SetSpreadsheet(id string) {
	c.mu.Lock()
	c.spreadsheetID = id
	c.mu.Unlock()
}

// SpreadsheetID returns the active spreadsheet identifier, empty when unset.
func (c *Client) SpreadsheetID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.spreadsheetID
}

// Verify checks that the active spreadsheet exists and is readable.
func (c *Client) Verify(ctx context.Context) error {
	id := c.SpreadsheetID()
	if id == "" {
		return fmt.Errorf("sheets: no spreadsheet configured")
	}
	_, err := c.svc.Spreadsheets.Get(id).Fields("spreadsheetId").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: spreadsheet %s not reachable: %w", id, err)
	}
	return nil
}

// ReadColumn returns the first column of the named sheet, top to bottom.
// Empty cells inside the range are skipped.
func (c *Client) ReadColumn(ctx context.Context, sheet string) ([]string, error) {
	id := c.SpreadsheetID()
	if id == "" {
		return nil, fmt.Errorf("sheets: no spreadsheet configured")
	}
	resp, err := c.svc.Spreadsheets.Values.Get(id, sheet+"!A:A").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets: read column %s!A: %w", sheet, err)
	}
	var values []string
	for _, row := range resp.Values {
		if len(row) == 0 {
			continue
		}
		s, ok := row[0].(string)
		if !ok || s == "" {
			continue
		}
		values = append(values, s)
	}
	return values, nil
}

// EnsureSheet creates the named sheet with a header row when it does not
// exist yet. Existing sheets are left untouched, header included.
func (c *Client) EnsureSheet(ctx context.Context, title string, header []string) error {
	id := c.SpreadsheetID()
	if id == "" {
		return fmt.Errorf("sheets: no spreadsheet configured")
	}

	meta, err := c.svc.Spreadsheets.Get(id).Fields("sheets(properties(title))").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: list sheets: %w", err)
	}
	for _, sh := range meta.Sheets {
		if sh.Properties != nil && sh.Properties.Title == title {
			return nil
		}
	}

	req := &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			AddSheet: &sheetsapi.AddSheetRequest{
				Properties: &sheetsapi.SheetProperties{Title: title},
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(id, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("sheets: add sheet %s: %w", title, err)
	}

	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	vr := &sheetsapi.ValueRange{Values: [][]interface{}{headerRow}}
	_, err = c.svc.Spreadsheets.Values.Update(id, title+"!A1", vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: write header for %s: %w", title, err)
	}

	logger.Sheets.Info("sheet created",
		slog.String("event", "sheet.create"),
		slog.String("sheet", title),
	)
	return nil
}

// AppendRow appends one row after the last non-empty row of the named sheet.
func (c *Client) AppendRow(ctx context.Context, sheet string, row []interface{}) error {
	id := c.SpreadsheetID()
	if id == "" {
		return fmt.Errorf("sheets: no spreadsheet configured")
	}
	vr := &sheetsapi.ValueRange{Values: [][]interface{}{row}}
	_, err := c.svc.Spreadsheets.Values.Append(id, sheet+"!A1", vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: append to %s: %w", sheet, err)
	}
	return nil
}
