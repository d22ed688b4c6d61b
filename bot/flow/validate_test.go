package flow

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "full layout", input: "25.12.2023", want: time.Date(2023, 12, 25, 0, 0, 0, 0, time.Local)},
		{name: "short day and month", input: "5.1.2024", want: time.Date(2024, 1, 5, 0, 0, 0, 0, time.Local)},
		{name: "surrounding spaces", input: "  01.02.2024 ", want: time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local)},
		{name: "month out of range", input: "25.13.2023", wantErr: true},
		{name: "wrong separator", input: "25/12/2023", wantErr: true},
		{name: "garbage", input: "yesterday", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDate(%q): expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q): %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{name: "integer", input: "100", want: 100},
		{name: "decimal point", input: "1500.50", want: 1500.5},
		{name: "decimal comma", input: "1500,50", want: 1500.5},
		{name: "surrounding spaces", input: " 42 ", want: 42},
		{name: "zero", input: "0", wantErr: true},
		{name: "negative", input: "-5", wantErr: true},
		{name: "not a number", input: "ten", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "infinity", input: "Inf", wantErr: true},
		{name: "nan", input: "NaN", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseAmount(%q): expected error, got %v", tt.input, got)
				}
				if !errors.Is(err, ErrBadAmount) {
					t.Errorf("ParseAmount(%q): error %v is not ErrBadAmount", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseAmount(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
