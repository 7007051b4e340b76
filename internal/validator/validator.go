package validator

import (
	"fmt"
	"maps"

	"github.com/cockroachdb/errors"
)

// Severity grades an issue. Only errors fail a validation run.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

var severityNames = [...]string{
	SeverityError:   "error",
	SeverityWarning: "warning",
	SeverityInfo:    "info",
}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return "unknown"
	}
	return severityNames[s]
}

// MarshalText renders the severity by name in JSON reports.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a severity name.
func (s *Severity) UnmarshalText(text []byte) error {
	for i, name := range severityNames {
		if name == string(text) {
			*s = Severity(i)
			return nil
		}
	}
	return errors.Newf("unknown severity %q", text)
}

// Issue represents a single validation problem.
type Issue struct {
	Severity Severity `json:"severity"`
	// Field is the frontmatter key path, e.g. "author.name" (optional).
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	// Value is the offending value (optional).
	Value any `json:"value,omitempty"`
	// Context carries extra detail such as the file or rule.
	Context map[string]string `json:"context,omitempty"`
}

// Error formats the issue as `severity: field "f": message (got v)`.
func (i Issue) Error() string {
	msg := i.Message
	if i.Field != "" {
		msg = fmt.Sprintf("field %q: %s", i.Field, msg)
	}
	if i.Value != nil {
		msg = fmt.Sprintf("%s (got %v)", msg, i.Value)
	}
	return i.Severity.String() + ": " + msg
}

// Result aggregates validation issues.
type Result struct {
	Issues []Issue `json:"issues"`
}

// HasErrors returns true if any issue has SeverityError.
func (r *Result) HasErrors() bool {
	return len(r.filter(SeverityError)) > 0
}

// HasWarnings returns true if any issue has SeverityWarning.
func (r *Result) HasWarnings() bool {
	return len(r.filter(SeverityWarning)) > 0
}

func (r *Result) add(s Severity, field, message string, value any) *Issue {
	r.Issues = append(r.Issues, Issue{
		Severity: s,
		Field:    field,
		Message:  message,
		Value:    value,
	})
	return &r.Issues[len(r.Issues)-1]
}

// AddError adds an error issue to the result.
func (r *Result) AddError(field, message string, value any) {
	r.add(SeverityError, field, message, value)
}

// AddWarning adds a warning issue to the result.
func (r *Result) AddWarning(field, message string, value any) {
	r.add(SeverityWarning, field, message, value)
}

// AddInfo adds an info issue to the result.
func (r *Result) AddInfo(field, message string, value any) {
	r.add(SeverityInfo, field, message, value)
}

// Merge appends every issue from other, tagging each with the given context
// key and value when key is non-empty.
func (r *Result) Merge(other *Result, key, value string) {
	if other == nil {
		return
	}
	for _, issue := range other.Issues {
		if key != "" {
			ctx := maps.Clone(issue.Context)
			if ctx == nil {
				ctx = make(map[string]string, 1)
			}
			ctx[key] = value
			issue.Context = ctx
		}
		r.Issues = append(r.Issues, issue)
	}
}

// Errors returns a slice of all issues with SeverityError.
func (r *Result) Errors() []Issue {
	return r.filter(SeverityError)
}

// Warnings returns a slice of all issues with SeverityWarning.
func (r *Result) Warnings() []Issue {
	return r.filter(SeverityWarning)
}

func (r *Result) filter(s Severity) []Issue {
	if r == nil {
		return nil
	}
	var res []Issue
	for _, i := range r.Issues {
		if i.Severity == s {
			res = append(res, i)
		}
	}
	return res
}
