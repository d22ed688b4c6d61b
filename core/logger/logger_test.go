package logger

import (
	"bytes"
	"strings"
	"testing"

	"log/slog"
)

func TestLogEventPutsEventFirst(t *testing.T) {
	buf := &bytes.Buffer{}
	log := slog.New(newHandler(buf, formatKV, slog.LevelInfo)).With("component", "app")

	ctx := WithRID(Background(), "42:7:9")
	LogEvent(ctx, log, slog.LevelInfo, "test.event",
		slog.String("status", "ok"),
	)

	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("expected log line")
	}
	for _, want := range []string{"component=app", "event=test.event", "status=ok"} {
		if !strings.Contains(line, want) {
			t.Fatalf("line %q missing %q", line, want)
		}
	}
	if strings.Index(line, "event=") > strings.Index(line, "status=") {
		t.Fatalf("event attribute not first in %q", line)
	}
}

func TestNewHandlerJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	log := slog.New(newHandler(buf, formatJSON, slog.LevelInfo)).With("component", "sheets")

	LogEvent(Background(), log, slog.LevelError, "append.failed",
		slog.String("status", "error"),
		slog.String("err", "boom"),
	)

	line := strings.TrimSpace(buf.String())
	if !strings.HasPrefix(line, "{") {
		t.Fatalf("expected JSON, got %q", line)
	}
	for _, want := range []string{`"component":"sheets"`, `"event":"append.failed"`, `"err":"boom"`} {
		if !strings.Contains(line, want) {
			t.Fatalf("line %q missing %q", line, want)
		}
	}
}

func TestNewHandlerLevelFilter(t *testing.T) {
	buf := &bytes.Buffer{}
	log := slog.New(newHandler(buf, formatKV, slog.LevelWarn))

	LogEvent(Background(), log, slog.LevelDebug, "noisy.event")
	if buf.Len() != 0 {
		t.Fatalf("debug line emitted below level: %q", buf.String())
	}
	LogEvent(Background(), log, slog.LevelWarn, "loud.event")
	if buf.Len() == 0 {
		t.Fatal("warn line suppressed")
	}
}

func TestSanitizeLimit(t *testing.T) {
	in := "abc\x00def\tghi"
	out := SanitizeLimit(in, 6)
	if out != "abcdef" {
		t.Fatalf("SanitizeLimit = %q", out)
	}
	if got := SanitizeLimit("short", 64); got != "short" {
		t.Fatalf("SanitizeLimit = %q", got)
	}
	if got := SanitizeLimit("anything", 0); got != "" {
		t.Fatalf("SanitizeLimit with zero max = %q", got)
	}
}

func TestBuildRID(t *testing.T) {
	if got := BuildRID(1, 2, 3); got != "1:2:3" {
		t.Fatalf("BuildRID = %q", got)
	}
}
