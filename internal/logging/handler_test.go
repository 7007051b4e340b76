package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	now := time.Now()
	logger.Info("extracted frontmatter", "format", "yaml", "keys", 3)

	output := buf.String()
	for _, want := range []string{"INFO", "extracted frontmatter", "format=yaml", "keys=3"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q: %q", want, output)
		}
	}
	if !strings.Contains(output, now.Format(time.Kitchen)) {
		t.Errorf("expected kitchen time in output, got: %q", output)
	}
	if !strings.HasSuffix(output, "\n") {
		t.Errorf("expected trailing newline, got: %q", output)
	}
}

func TestHandler_QuotesValues(t *testing.T) {
	var buf bytes.Buffer
	slog.New(NewHandler(&buf, nil)).Info("msg", "title", "My Post", "plain", "x")

	output := buf.String()
	if !strings.Contains(output, `title="My Post"`) {
		t.Errorf("expected quoted value, got: %q", output)
	}
	if !strings.Contains(output, "plain=x") {
		t.Errorf("expected bare value, got: %q", output)
	}
}

func TestHandler_WithAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil)).With("file", "a.md").WithGroup("fm")

	logger.Info("message", "key", "title", slog.Group("limits", "depth", 32))

	output := buf.String()
	for _, want := range []string{"file=a.md", "fm.key=title", "fm.limits.depth=32"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q: %q", want, output)
		}
	}
}

func TestHandler_Enabled(t *testing.T) {
	h := NewHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	ctx := t.Context()
	if h.Enabled(ctx, slog.LevelInfo) {
		t.Error("expected Info level to be disabled when min level is Warn")
	}
	if !h.Enabled(ctx, slog.LevelWarn) {
		t.Error("expected Warn level to be enabled")
	}

	if NewHandler(&bytes.Buffer{}, nil).Enabled(ctx, slog.LevelDebug) {
		t.Error("expected Debug to be disabled by default")
	}
}

func TestHandler_TraceLevelName(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, &slog.HandlerOptions{Level: LevelTrace}))
	logger.Log(t.Context(), LevelTrace, "raw block", "bytes", 12)

	if !strings.Contains(buf.String(), "TRACE") {
		t.Errorf("expected TRACE level, got: %q", buf.String())
	}
}

func TestHandler_NoTime(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil)

	r := slog.NewRecord(time.Time{}, slog.LevelInfo, "no time", 0)
	if err := h.Handle(t.Context(), r); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "INFO") {
		t.Errorf("expected output to start with the level, got: %q", buf.String())
	}
}

func TestHandler_Redaction(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil))

	logger.Info("site config", "deploy_token", "abcd1234wxyz", "apiKey", "k1")
	output := buf.String()
	if strings.Contains(output, "abcd1234wxyz") {
		t.Error("deploy_token value should be redacted")
	}
	if !strings.Contains(output, "deploy_token=****wxyz") {
		t.Errorf("expected masked deploy_token, got: %q", output)
	}
	if !strings.Contains(output, "apiKey=********") {
		t.Errorf("expected fully masked short apiKey, got: %q", output)
	}

	buf.Reset()
	logger.Info("value", "author", "ghp_secrettoken")
	if !strings.Contains(buf.String(), "author=****oken") {
		t.Errorf("expected masked value based on prefix, got: %q", buf.String())
	}
}

func TestRedact(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"title", "Hello", "Hello"},
		{"PASSWORD", "hunter22", "****er22"},
		{"client_secret", "abc", "********"},
		{"note", "sk-live-1234", "****1234"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := Redact(tt.key, tt.value); got != tt.want {
				t.Errorf("Redact(%q, %q) = %q, want %q", tt.key, tt.value, got, tt.want)
			}
		})
	}
}
