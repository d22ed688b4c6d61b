package sheets

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/m3rciful/expensebot/expense"
)

type fakeAppender struct {
	ensuredSheet  string
	ensuredHeader []string
	ensureErr     error

	appendedSheet string
	appendedRow   []interface{}
	appendErr     error
}

func (f *fakeAppender) EnsureSheet(ctx context.Context, title string, header []string) error {
	f.ensuredSheet = title
	f.ensuredHeader = header
	return f.ensureErr
}

func (f *fakeAppender) AppendRow(ctx context.Context, sheet string, row []interface{}) error {
	f.appendedSheet = sheet
	f.appendedRow = row
	return f.appendErr
}

var testRecord = expense.Record{
	Date:      "25.12.2023",
	Category:  "Food",
	Amount:    1500.5,
	Comment:   "lunch",
	Submitter: "tester",
}

func TestSinkAppend(t *testing.T) {
	appender := &fakeAppender{}
	s := NewSink(appender, "exp", false)

	if err := s.Append(context.Background(), testRecord); err != nil {
		t.Fatal(err)
	}
	if appender.ensuredSheet != "exp" || appender.appendedSheet != "exp" {
		t.Errorf("wrote to sheets %q/%q, want exp", appender.ensuredSheet, appender.appendedSheet)
	}
	wantHeader := []string{"Date", "Category", "Sum", "Comment"}
	if !reflect.DeepEqual(appender.ensuredHeader, wantHeader) {
		t.Errorf("header %v, want %v", appender.ensuredHeader, wantHeader)
	}
	wantRow := []interface{}{"25.12.2023", "Food", 1500.5, "lunch"}
	if !reflect.DeepEqual(appender.appendedRow, wantRow) {
		t.Errorf("row %v, want %v", appender.appendedRow, wantRow)
	}
}

func TestSinkAppendWithSubmitter(t *testing.T) {
	appender := &fakeAppender{}
	s := NewSink(appender, "exp", true)

	if err := s.Append(context.Background(), testRecord); err != nil {
		t.Fatal(err)
	}
	wantHeader := []string{"Date", "Category", "Sum", "Comment", "User"}
	if !reflect.DeepEqual(appender.ensuredHeader, wantHeader) {
		t.Errorf("header %v, want %v", appender.ensuredHeader, wantHeader)
	}
	wantRow := []interface{}{"25.12.2023", "Food", 1500.5, "lunch", "tester"}
	if !reflect.DeepEqual(appender.appendedRow, wantRow) {
		t.Errorf("row %v, want %v", appender.appendedRow, wantRow)
	}
}

func TestSinkAppendErrors(t *testing.T) {
	t.Run("ensure failure", func(t *testing.T) {
		wantErr := errors.New("ensure: permission denied")
		appender := &fakeAppender{ensureErr: wantErr}
		s := NewSink(appender, "exp", false)
		if err := s.Append(context.Background(), testRecord); !errors.Is(err, wantErr) {
			t.Fatalf("Append error = %v, want %v", err, wantErr)
		}
		if appender.appendedRow != nil {
			t.Error("row appended despite ensure failure")
		}
	})

	t.Run("append failure", func(t *testing.T) {
		wantErr := errors.New("append: backend unavailable")
		appender := &fakeAppender{appendErr: wantErr}
		s := NewSink(appender, "exp", false)
		if err := s.Append(context.Background(), testRecord); !errors.Is(err, wantErr) {
			t.Fatalf("Append error = %v, want %v", err, wantErr)
		}
	})
}
