package frontmatter

import (
	"strings"
	"unicode"
)

// DetectFormat classifies a raw block by shape: a leading brace is JSON, any
// '=' means TOML and everything else is YAML. The chosen adapter still
// rejects a block that does not match its grammar.
func DetectFormat(raw string) Format {
	trimmed := strings.TrimLeftFunc(raw, unicode.IsSpace)
	switch {
	case strings.HasPrefix(trimmed, "{"):
		return FormatJSON
	case strings.Contains(trimmed, "="):
		return FormatTOML
	default:
		return FormatYAML
	}
}
