package validator

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestReporter_Report(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	result := &Result{}
	result.AddError("title", "is required", nil)
	result.AddWarning("summary", "is present but null", strings.Repeat("x", 80))
	result.Issues[0].Context = map[string]string{"file": "post.md", "rule": "a"}

	t.Run("text format", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewReporter(&buf, FormatText).Report(result); err != nil {
			t.Fatalf("Report() error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"Validation failed: 1 error(s), 1 warning(s)",
			"title: is required (file=post.md, rule=a)",
			"Warnings:",
			"[" + strings.Repeat("x", 47) + "...]",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("output missing %q:\n%s", want, output)
			}
		}
	})

	t.Run("json format", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewReporter(&buf, FormatJSON).Report(result); err != nil {
			t.Fatalf("Report() error: %v", err)
		}

		var decoded Result
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("failed to decode JSON output: %v", err)
		}
		if len(decoded.Issues) != 2 {
			t.Fatalf("decoded issues count = %d, want 2", len(decoded.Issues))
		}
		if decoded.Issues[0].Field != "title" || decoded.Issues[0].Severity != SeverityError {
			t.Errorf("first issue = %+v", decoded.Issues[0])
		}
	})

	t.Run("empty result json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewReporter(&buf, FormatJSON).Report(nil); err != nil {
			t.Fatalf("Report() error: %v", err)
		}
		if !strings.Contains(buf.String(), `"issues": []`) {
			t.Errorf("output = %s", buf.String())
		}
	})

	t.Run("empty result text", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewReporter(&buf, FormatText).Report(&Result{}); err != nil {
			t.Fatalf("Report() error: %v", err)
		}
		if !strings.Contains(buf.String(), "Validation passed") {
			t.Error("output missing success message")
		}
	})

	t.Run("warnings only", func(t *testing.T) {
		r := &Result{}
		r.AddWarning("summary", "is present but null", nil)
		var buf bytes.Buffer
		if err := NewReporter(&buf, FormatText).Report(r); err != nil {
			t.Fatalf("Report() error: %v", err)
		}
		if !strings.Contains(buf.String(), "Validation passed with 1 warning(s)") {
			t.Errorf("output = %s", buf.String())
		}
	})
}
