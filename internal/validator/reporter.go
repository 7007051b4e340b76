package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
)

// Format selects how a Reporter renders a Result.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// maxValueWidth caps the rune length of offending values in text reports.
const maxValueWidth = 50

var (
	passStyle = color.New(color.FgGreen)
	errStyle  = color.New(color.FgRed)
	warnStyle = color.New(color.FgYellow)
	dimStyle  = color.New(color.FgHiBlack)
)

// Reporter renders validation results for people or for tools.
type Reporter struct {
	out    io.Writer
	format Format
}

// NewReporter returns a Reporter writing to out. Unknown formats render as
// text.
func NewReporter(out io.Writer, format Format) *Reporter {
	return &Reporter{out: out, format: format}
}

// Report renders result. A nil result is reported as a clean pass.
func (r *Reporter) Report(result *Result) error {
	if result == nil {
		result = &Result{}
	}
	if r.format == FormatJSON {
		return r.writeJSON(result)
	}
	r.writeText(result)
	return nil
}

func (r *Reporter) writeJSON(result *Result) error {
	doc := *result
	if doc.Issues == nil {
		doc.Issues = []Issue{}
	}
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(err, "encoding JSON report")
	}
	return nil
}

func (r *Reporter) writeText(result *Result) {
	errs, warnings := result.Errors(), result.Warnings()
	if len(errs)+len(warnings) == 0 {
		fmt.Fprintln(r.out, passStyle.Sprint("✓ Validation passed"))
		return
	}

	verdict := "Validation passed with"
	if len(errs) > 0 {
		verdict = "Validation failed:"
	}
	fmt.Fprintf(r.out, "%s %s\n\n", verdict, tally(len(errs), len(warnings)))

	r.writeGroup("Errors:", errs, errStyle)
	r.writeGroup("Warnings:", warnings, warnStyle)
}

// tally renders "N error(s), M warning(s)", leaving out zero counts.
func tally(errs, warnings int) string {
	counts := make([]string, 0, 2)
	if errs > 0 {
		counts = append(counts, errStyle.Sprintf("%d error(s)", errs))
	}
	if warnings > 0 {
		counts = append(counts, warnStyle.Sprintf("%d warning(s)", warnings))
	}
	return strings.Join(counts, ", ")
}

func (r *Reporter) writeGroup(heading string, issues []Issue, fieldStyle *color.Color) {
	if len(issues) == 0 {
		return
	}
	fmt.Fprintln(r.out, heading)
	for _, issue := range issues {
		fmt.Fprintln(r.out, formatIssue(issue, fieldStyle))
	}
	fmt.Fprintln(r.out)
}

// formatIssue renders one bullet line:
//
//	• field: message (k=v, ...) [value]
func formatIssue(issue Issue, fieldStyle *color.Color) string {
	line := "  • " + issue.Message
	if issue.Field != "" {
		line = "  • " + fieldStyle.Sprint(issue.Field) + ": " + issue.Message
	}

	if len(issue.Context) > 0 {
		pairs := make([]string, 0, len(issue.Context))
		for _, k := range slices.Sorted(maps.Keys(issue.Context)) {
			pairs = append(pairs, k+"="+issue.Context[k])
		}
		line += " " + dimStyle.Sprintf("(%s)", strings.Join(pairs, ", "))
	}

	if issue.Value != nil {
		line += dimStyle.Sprintf(" [%s]", truncate(fmt.Sprint(issue.Value), maxValueWidth))
	}
	return line
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}
