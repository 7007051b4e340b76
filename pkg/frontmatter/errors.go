package frontmatter

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Error kinds. Every failure returned by this package matches exactly one of
// these with errors.Is (ErrNoFrontmatter additionally matches
// ErrInvalidFormat).
var (
	// ErrNoFrontmatter indicates the input has no recognizable frontmatter block.
	ErrNoFrontmatter = errors.New("no frontmatter found in the content")

	// ErrInvalidFormat indicates malformed delimiters or a block the format's
	// grammar rejects.
	ErrInvalidFormat = errors.New("invalid frontmatter format")

	// ErrInvalidBraced indicates a JSON block whose braces never balance.
	ErrInvalidBraced = errors.New("unbalanced braces in JSON frontmatter")

	// ErrDepthLimitExceeded indicates nesting deeper than the configured limit.
	ErrDepthLimitExceeded = errors.New("nesting depth limit exceeded")

	// ErrTooManyKeys indicates more top-level keys than the configured limit.
	ErrTooManyKeys = errors.New("too many keys in frontmatter")

	// ErrConversion indicates a sanity guard or emitter refused the input.
	ErrConversion = errors.New("frontmatter conversion failed")

	// ErrParse indicates the backing format library failed.
	ErrParse = errors.New("failed to parse frontmatter")

	// ErrUnsupportedFormat indicates FormatUnsupported or an unknown format name.
	ErrUnsupportedFormat = errors.New("unsupported frontmatter format")

	// ErrExtraction indicates any other failure while locating the block.
	ErrExtraction = errors.New("failed to extract frontmatter")
)

// Error describes a failure with enough context to render a diagnostic.
type Error struct {
	// Kind is one of the Err* sentinels above.
	Kind error
	// Format is the format being processed, if known.
	Format Format
	// Line is the 1-based line number of the failure, or 0 when unknown.
	Line int
	// Msg is additional detail.
	Msg string
	// Err is the underlying library error, if any.
	Err error
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.Error())
	if e.Line > 0 {
		sb.WriteString(" at line ")
		sb.WriteString(strconv.Itoa(e.Line))
	}
	if e.Msg != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Msg)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

// Unwrap exposes both the kind and the library cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Is reports a missing block as a special case of an invalid format.
func (e *Error) Is(target error) bool {
	return e.Kind == ErrNoFrontmatter && target == ErrInvalidFormat
}

func newError(kind error, format Format, msg string) *Error {
	return &Error{Kind: kind, Format: format, Msg: msg}
}

func parseError(format Format, line int, cause error) *Error {
	return &Error{Kind: ErrParse, Format: format, Line: line, Err: cause}
}

func conversionError(format Format, msg string) *Error {
	return &Error{Kind: ErrConversion, Format: format, Msg: msg}
}
