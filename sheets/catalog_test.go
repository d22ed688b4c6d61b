package sheets

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

type fakeReader struct {
	values []string
	err    error
	sheet  string
}

func (f *fakeReader) ReadColumn(ctx context.Context, sheet string) ([]string, error) {
	f.sheet = sheet
	return f.values, f.err
}

func TestCatalogReload(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   []string
	}{
		{
			name:   "english header stripped",
			values: []string{"Category", "Food", "Transport"},
			want:   []string{"Food", "Transport"},
		},
		{
			name:   "russian header stripped",
			values: []string{"Категория", "Еда", "Транспорт"},
			want:   []string{"Еда", "Транспорт"},
		},
		{
			name:   "header with spaces stripped",
			values: []string{"  category  ", "Food"},
			want:   []string{"Food"},
		},
		{
			name:   "no header kept whole",
			values: []string{"Food", "Transport"},
			want:   []string{"Food", "Transport"},
		},
		{
			name:   "header only yields empty",
			values: []string{"Category"},
			want:   []string{},
		},
		{
			name:   "empty column",
			values: nil,
			want:   []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCatalog(&fakeReader{values: tt.values}, "cat")
			if err := c.Reload(context.Background()); err != nil {
				t.Fatal(err)
			}
			if got := c.Labels(); !reflect.DeepEqual(got, tt.want) && !(len(got) == 0 && len(tt.want) == 0) {
				t.Errorf("Labels() = %v, want %v", got, tt.want)
			}
			if c.Len() != len(tt.want) {
				t.Errorf("Len() = %d, want %d", c.Len(), len(tt.want))
			}
		})
	}
}

func TestCatalogReloadErrorEmpties(t *testing.T) {
	reader := &fakeReader{values: []string{"Food"}}
	c := NewCatalog(reader, "cat")
	if err := c.Reload(context.Background()); err != nil {
		t.Fatal(err)
	}
	if c.Empty() {
		t.Fatal("catalog empty after a good load")
	}

	wantErr := errors.New("read column: quota exceeded")
	reader.err = wantErr
	if err := c.Reload(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("Reload error = %v, want %v", err, wantErr)
	}
	if !c.Empty() {
		t.Error("catalog kept stale labels after a failed reload")
	}
}

func TestCatalogContainsIsCaseSensitive(t *testing.T) {
	c := NewCatalog(&fakeReader{values: []string{"Food"}}, "cat")
	if err := c.Reload(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !c.Contains("Food") {
		t.Error("exact label not found")
	}
	if c.Contains("food") {
		t.Error("lowercased label matched")
	}
	if c.Contains("Food ") {
		t.Error("label with trailing space matched")
	}
}

func TestCatalogReadsConfiguredSheet(t *testing.T) {
	reader := &fakeReader{}
	c := NewCatalog(reader, "categories")
	if err := c.Reload(context.Background()); err != nil {
		t.Fatal(err)
	}
	if reader.sheet != "categories" {
		t.Errorf("read from sheet %q, want %q", reader.sheet, "categories")
	}
}

func TestCatalogLabelsReturnsCopy(t *testing.T) {
	c := NewCatalog(&fakeReader{values: []string{"Food", "Transport"}}, "cat")
	if err := c.Reload(context.Background()); err != nil {
		t.Fatal(err)
	}
	labels := c.Labels()
	labels[0] = "mutated"
	if !c.Contains("Food") {
		t.Error("mutating the returned slice changed the catalog")
	}
}
