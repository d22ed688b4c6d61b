package sheets

import (
	"fmt"
	"strings"
)

// ParseSpreadsheetURL extracts the spreadsheet ID from a Google Sheets link.
// Supported forms:
//
//	https://docs.google.com/spreadsheets/d/<id>/edit...
//	https://docs.google.com/spreadsheets/d/<id>/
//	https://docs.google.com/spreadsheets/d/<id>
func ParseSpreadsheetURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "docs.google.com") {
		return "", fmt.Errorf("not a Google Sheets link: %q", raw)
	}
	_, rest, found := strings.Cut(raw, "/d/")
	if !found || rest == "" {
		return "", fmt.Errorf("no spreadsheet id in link: %q", raw)
	}
	id := rest
	if before, _, ok := strings.Cut(id, "/"); ok {
		id = before
	}
	if i := strings.IndexAny(id, "?#"); i >= 0 {
		id = id[:i]
	}
	if id == "" {
		return "", fmt.Errorf("no spreadsheet id in link: %q", raw)
	}
	return id, nil
}
