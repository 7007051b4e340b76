package frontmatter

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Format identifies a frontmatter serialization format.
type Format int

const (
	// FormatJSON is a braced JSON object. It is the zero value.
	FormatJSON Format = iota
	// FormatYAML is YAML between "---" delimiter lines.
	FormatYAML
	// FormatTOML is TOML between "+++" delimiter lines.
	FormatTOML
	// FormatUnsupported is never produced by detection. Parsing or emitting
	// with it fails with ErrUnsupportedFormat.
	FormatUnsupported
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return "unsupported"
	}
}

// Delimiter returns the line that opens and closes a block of this format.
// JSON blocks are self-delimiting and return "".
func (f Format) Delimiter() string {
	switch f {
	case FormatYAML:
		return "---"
	case FormatTOML:
		return "+++"
	default:
		return ""
	}
}

// ParseFormat resolves a format name. Names are case-insensitive and accept
// both the format name and its shape alias (li, tkv, bof).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml", "li":
		return FormatYAML, nil
	case "toml", "tkv":
		return FormatTOML, nil
	case "json", "bof":
		return FormatJSON, nil
	default:
		return FormatUnsupported, errors.Wrapf(ErrUnsupportedFormat, "unknown format %q (valid: yaml, toml, json)", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	if f < FormatJSON || f >= FormatUnsupported {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "format %d", int(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
