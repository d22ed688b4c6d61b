package sheets

import (
	"context"
	"time"

	"github.com/m3rciful/expensebot/core/logger"
	"github.com/m3rciful/expensebot/expense"
	"log/slog"
)

// RowAppender abstracts the sink's view of the backing spreadsheet.
type RowAppender interface {
	EnsureSheet(ctx context.Context, title string, header []string) error
	AppendRow(ctx context.Context, sheet string, row []interface{}) error
}

// Sink persists completed expense records to the destination sheet, creating
// the sheet with its header row on first use. Appends are not deduplicated: a
// retry after a transport timeout can produce a duplicate row.
type Sink struct {
	appender  RowAppender
	sheet     string
	submitter bool
}

// NewSink returns a sink writing to the named sheet. When submitter is true
// each row carries the sender identity as an extra column.
func NewSink(appender RowAppender, sheet string, submitter bool) *Sink {
	return &Sink{appender: appender, sheet: sheet, submitter: submitter}
}

// Append writes one record as a new row. The record is either fully persisted
// or not at all; any backend failure is reported as a single opaque error.
func (s *Sink) Append(ctx context.Context, rec expense.Record) error {
	if err := s.appender.EnsureSheet(ctx, s.sheet, expense.Header(s.submitter)); err != nil {
		return err
	}

	start := time.Now()
	if err := s.appender.AppendRow(ctx, s.sheet, rec.Row(s.submitter)); err != nil {
		return err
	}
	logger.Info(ctx, "sheets", "append",
		slog.String("status", "ok"),
		slog.String("sheet", s.sheet),
		slog.String("category", rec.Category),
		slog.Duration("duration", logger.RoundMS(time.Since(start))),
	)
	return nil
}
