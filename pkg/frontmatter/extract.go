package frontmatter

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxBraceDepth is the deepest brace nesting the JSON block scanner accepts.
const MaxBraceDepth = 100

const utf8BOM = "\uFEFF"

// block is a located frontmatter block. raw and residual are substrings of
// the scanned input.
type block struct {
	raw      string
	residual string
	// shape is the format implied by the delimiters that matched.
	shape Format
}

// ExtractRaw locates the frontmatter block in content without parsing it.
// raw excludes the "---"/"+++" delimiter lines but includes the braces of a
// JSON block; residual is the rest of the document with leading whitespace
// removed.
func ExtractRaw(content string) (raw, residual string, err error) {
	b, err := locate(content)
	if err != nil {
		return "", "", err
	}
	return b.raw, b.residual, nil
}

// locate probes the delimited shapes in a fixed order: YAML, TOML, then JSON.
func locate(content string) (block, error) {
	if !utf8.ValidString(content) {
		return block{}, newError(ErrExtraction, FormatUnsupported, "input is not valid UTF-8")
	}
	content = strings.TrimPrefix(content, utf8BOM)

	for _, format := range []Format{FormatYAML, FormatTOML} {
		b, found, err := locateDelimited(content, format)
		if err != nil {
			return block{}, err
		}
		if found {
			return b, nil
		}
	}

	start := len(content) - len(strings.TrimLeftFunc(content, unicode.IsSpace))
	if strings.HasPrefix(content[start:], "{") {
		return scanBraced(content, start)
	}

	return block{}, newError(ErrNoFrontmatter, FormatUnsupported, "")
}

// locateDelimited finds a block opened by a line holding only the format's
// delimiter and closed by the next such line.
func locateDelimited(content string, format Format) (block, bool, error) {
	delim := format.Delimiter()

	var rest string
	switch {
	case strings.HasPrefix(content, delim+"\n"):
		rest = content[len(delim):]
	case strings.HasPrefix(content, delim+"\r\n"):
		rest = content[len(delim)+1:]
	default:
		return block{}, false, nil
	}

	// rest starts on the opener's newline so that an empty block, where the
	// closer immediately follows the opener, is found too.
	closer := "\n" + delim
	offset := 0
	for {
		idx := strings.Index(rest[offset:], closer)
		if idx < 0 {
			return block{}, false, newError(ErrInvalidFormat, format, "missing closing "+delim+" delimiter")
		}
		idx += offset

		end := idx + len(closer)
		after := rest[end:]
		var skip int
		switch {
		case after == "":
		case strings.HasPrefix(after, "\n"):
			skip = 1
		case strings.HasPrefix(after, "\r\n"):
			skip = 2
		default:
			// "----" or "--- trailing" is content, not a closer.
			offset = idx + 1
			continue
		}

		raw := ""
		if idx > 0 {
			raw = strings.TrimSuffix(rest[1:idx], "\r")
		}
		return block{
			raw:      raw,
			residual: strings.TrimLeftFunc(after[skip:], unicode.IsSpace),
			shape:    format,
		}, true, nil
	}
}

// scanBraced returns the shortest run of s starting at the '{' at offset
// start in which braces balance. Braces inside double-quoted strings are
// ignored and a backslash inside a string escapes the following byte. Error
// lines count from the beginning of s.
func scanBraced(s string, start int) (block, error) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
			if depth > MaxBraceDepth {
				e := newError(ErrDepthLimitExceeded, FormatJSON, "more than 100 nested braces")
				e.Line = lineAt(s, i)
				return block{}, e
			}
		case '}':
			depth--
			if depth == 0 {
				return block{
					raw:      s[start : i+1],
					residual: strings.TrimLeftFunc(s[i+1:], unicode.IsSpace),
					shape:    FormatJSON,
				}, nil
			}
		}
	}

	return block{}, newError(ErrInvalidBraced, FormatJSON, "reached end of input with unclosed braces")
}

// lineAt returns the 1-based line number of byte offset off in s.
func lineAt(s string, off int) int {
	if off > len(s) {
		off = len(s)
	}
	return strings.Count(s[:off], "\n") + 1
}
