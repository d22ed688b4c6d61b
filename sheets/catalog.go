package sheets

import (
	"context"
	"strings"
	"sync"
)

// ColumnReader abstracts the catalog's view of the backing spreadsheet so the
// catalog can be exercised without a live API client.
type ColumnReader interface {
	ReadColumn(ctx context.Context, sheet string) ([]string, error)
}

// headerLabels are dropped from the top of the column when present, so a
// titled category sheet and a bare one both load cleanly.
var headerLabels = []string{"category", "категория"}

// Catalog holds the current snapshot of valid expense category labels.
// The snapshot is swapped whole on reload; readers never see a partial list.
type Catalog struct {
	reader ColumnReader
	sheet  string

	mu     sync.RWMutex
	labels []string
}

// NewCatalog returns an empty catalog reading from the named sheet.
func NewCatalog(reader ColumnReader, sheet string) *Catalog {
	return &Catalog{reader: reader, sheet: sheet}
}

// Reload fetches the category column and replaces the snapshot. On any
// retrieval error the catalog becomes empty and the error is returned for the
// caller to log; an empty catalog is a serviceable state.
func (c *Catalog) Reload(ctx context.Context) error {
	values, err := c.reader.ReadColumn(ctx, c.sheet)
	if err != nil {
		c.swap(nil)
		return err
	}
	c.swap(stripHeader(values))
	return nil
}

func (c *Catalog) swap(labels []string) {
	c.mu.Lock()
	c.labels = labels
	c.mu.Unlock()
}

func stripHeader(values []string) []string {
	if len(values) == 0 {
		return values
	}
	first := strings.TrimSpace(values[0])
	for _, h := range headerLabels {
		if strings.EqualFold(first, h) {
			return values[1:]
		}
	}
	return values
}

// Contains reports exact, case-sensitive membership of the candidate label.
func (c *Catalog) Contains(candidate string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, label := range c.labels {
		if label == candidate {
			return true
		}
	}
	return false
}

// Labels returns a copy of the current snapshot in load order.
func (c *Catalog) Labels() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.labels))
	copy(out, c.labels)
	return out
}

// Empty reports whether no categories are configured.
func (c *Catalog) Empty() bool {
	return c.Len() == 0
}

// Len returns the number of loaded categories.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.labels)
}
