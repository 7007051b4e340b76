package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_Formats(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		New(Config{Level: slog.LevelInfo, Format: FormatJSON, Output: &buf}).Info("parsed", "key", "value")

		var parsed map[string]any
		if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
			t.Fatalf("output is not valid JSON: %v\noutput: %s", err, buf.String())
		}
		if parsed["msg"] != "parsed" || parsed["key"] != "value" || parsed["level"] != "INFO" {
			t.Errorf("unexpected JSON record: %v", parsed)
		}
	})

	for _, format := range []Format{FormatText, Format("unknown")} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			New(Config{Level: slog.LevelInfo, Format: format, Output: &buf}).Info("parsed", "key", "value")

			var parsed map[string]any
			if json.Unmarshal(buf.Bytes(), &parsed) == nil {
				t.Error("text output should not be valid JSON")
			}
			if !strings.Contains(buf.String(), "key=value") {
				t.Errorf("output missing key=value: %s", buf.String())
			}
		})
	}
}

func TestNew_File(t *testing.T) {
	var out, file bytes.Buffer
	logger := New(Config{
		Level:     slog.LevelWarn,
		Output:    &out,
		File:      &file,
		FileLevel: LevelTrace,
	})

	logger.Log(context.Background(), LevelTrace, "trace detail")
	logger.Warn("warning")

	if strings.Contains(out.String(), "trace detail") {
		t.Errorf("terminal output should not include trace records: %q", out.String())
	}
	if !strings.Contains(file.String(), `"level":"TRACE"`) {
		t.Errorf("file output should name the trace level: %q", file.String())
	}
	if strings.Count(file.String(), "\n") != 2 {
		t.Errorf("file output should hold both records: %q", file.String())
	}
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		name         string
		configLevel  slog.Level
		logLevel     slog.Level
		shouldAppear bool
	}{
		{"info at info", slog.LevelInfo, slog.LevelInfo, true},
		{"debug at info", slog.LevelInfo, slog.LevelDebug, false},
		{"error at info", slog.LevelInfo, slog.LevelError, true},
		{"info at warn", slog.LevelWarn, slog.LevelInfo, false},
		{"trace at debug", slog.LevelDebug, LevelTrace, false},
		{"trace at trace", LevelTrace, LevelTrace, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Config{Level: tt.configLevel, Output: &buf})
			logger.Log(context.Background(), tt.logLevel, "test message")

			if hasOutput := buf.Len() > 0; hasOutput != tt.shouldAppear {
				t.Errorf("got output=%v, want %v (output %q)", hasOutput, tt.shouldAppear, buf.String())
			}
		})
	}
}

func TestLevelFromVerbosity(t *testing.T) {
	tests := []struct {
		verbosity int
		want      slog.Level
	}{
		{-1, slog.LevelWarn},
		{0, slog.LevelWarn},
		{1, slog.LevelInfo},
		{2, slog.LevelDebug},
		{3, LevelTrace},
		{4, LevelTrace},
	}

	for _, tt := range tests {
		if got := LevelFromVerbosity(tt.verbosity); got != tt.want {
			t.Errorf("LevelFromVerbosity(%d) = %v, want %v", tt.verbosity, got, tt.want)
		}
	}
}

func TestLevelName(t *testing.T) {
	if LevelTrace >= slog.LevelDebug {
		t.Error("LevelTrace should be lower than LevelDebug")
	}
	if got := LevelName(LevelTrace); got != "TRACE" {
		t.Errorf("LevelName(LevelTrace) = %q, want TRACE", got)
	}
	if got := LevelName(slog.LevelWarn); got != "WARN" {
		t.Errorf("LevelName(Warn) = %q, want WARN", got)
	}
}

func TestContext(t *testing.T) {
	if FromContext(context.Background()) != slog.Default() {
		t.Error("FromContext without a logger should return slog.Default()")
	}

	logger := NewDiscard()
	ctx := NewContext(context.Background(), logger)
	if FromContext(ctx) != logger {
		t.Error("FromContext should return the stored logger")
	}
}

func TestDefaultAndDiscard(t *testing.T) {
	if Default() == nil {
		t.Fatal("expected non-nil logger")
	}
	if Default().Enabled(context.Background(), slog.LevelInfo) {
		t.Error("default logger should start at Warn")
	}
	if NewDiscard().Enabled(context.Background(), slog.LevelError) {
		t.Error("discard logger should not be enabled")
	}
}

func TestForTest(t *testing.T) {
	logger := ForTest(t)
	logger.Log(context.Background(), LevelTrace, "trace from test logger")
	logger.Info("info from test logger", "test", t.Name())
}

func TestTestWriter_TrimsNewline(t *testing.T) {
	tw := &testWriter{t: t}
	for _, in := range []string{"test message\n", "no newline", ""} {
		n, err := tw.Write([]byte(in))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != len(in) {
			t.Errorf("Write(%q) returned %d, want %d", in, n, len(in))
		}
	}
}
