package frontmatter

import (
	"log/slog"
	"strings"
	"unicode"
)

// Extract locates, parses and validates the frontmatter at the start of
// content using default options. It returns the parsed frontmatter and the
// document body that follows it.
func Extract(content string) (Frontmatter, string, error) {
	return ExtractWithOptions(content, Options{})
}

// ExtractWithOptions is Extract with explicit options.
func ExtractWithOptions(content string, opts Options) (Frontmatter, string, error) {
	opts = opts.withDefaults()

	if opts.CheckInput {
		if err := ValidateInput(content, opts.RejectPatterns...); err != nil {
			return nil, "", err
		}
	}

	b, err := locate(content)
	if err != nil {
		return nil, "", err
	}

	format := DetectFormat(b.raw)
	if format != b.shape {
		// Delimiters name their format explicitly; the shape heuristic
		// misreads YAML values containing '=' as TOML.
		opts.Logger.Debug("delimiters override detected format",
			"delimited", b.shape.String(), "detected", format.String())
		format = b.shape
	}

	fm, err := ParseWithOptions(b.raw, format, opts)
	if err != nil {
		return nil, "", err
	}
	return fm, b.residual, nil
}

// Parse parses a raw block, without delimiter lines, in the given format and
// validates it with default limits.
func Parse(raw string, format Format) (Frontmatter, error) {
	return ParseWithOptions(raw, format, Options{})
}

// ParseWithOptions is Parse with explicit options.
func ParseWithOptions(raw string, format Format, opts Options) (Frontmatter, error) {
	opts = opts.withDefaults()

	if err := checkShape(raw, format, opts.Logger); err != nil {
		return nil, err
	}

	var (
		fm  Frontmatter
		err error
	)
	switch format {
	case FormatYAML:
		fm, err = parseYAML(raw, opts.Logger)
	case FormatTOML:
		fm, err = parseTOML(raw)
	case FormatJSON:
		fm, err = parseJSON(raw)
	}
	if err != nil {
		return nil, err
	}

	if !opts.SkipValidation {
		if err := Validate(fm, opts); err != nil {
			return nil, err
		}
	}
	return fm, nil
}

// checkShape rejects blocks that cannot belong to the requested format before
// any library sees them. Blank blocks are an empty mapping in every format.
func checkShape(raw string, format Format, logger *slog.Logger) error {
	if format < FormatJSON || format >= FormatUnsupported {
		e := newError(ErrUnsupportedFormat, format, "")
		e.Line = 1
		return e
	}

	trimmed := strings.TrimLeftFunc(raw, unicode.IsSpace)
	if trimmed == "" {
		return nil
	}

	switch format {
	case FormatTOML:
		if !strings.Contains(raw, "=") {
			return conversionError(format, "TOML block contains no key/value assignment")
		}
	case FormatJSON:
		if !strings.HasPrefix(trimmed, "{") {
			return conversionError(format, "JSON block does not start with '{'")
		}
	case FormatYAML:
		if !strings.HasPrefix(trimmed, "---") {
			logger.Debug("YAML block has no leading document marker")
		}
	}
	return nil
}

// Emit serializes fm in the given format. It does not validate.
func Emit(fm Frontmatter, format Format) (string, error) {
	return EmitWithOptions(fm, format, Options{})
}

// EmitWithOptions is Emit with explicit options. Only Logger is used.
func EmitWithOptions(fm Frontmatter, format Format, opts Options) (string, error) {
	opts = opts.withDefaults()
	if fm == nil {
		fm = New()
	}

	switch format {
	case FormatYAML:
		return emitYAML(fm)
	case FormatTOML:
		return emitTOML(fm, opts.Logger)
	case FormatJSON:
		return emitJSON(fm)
	default:
		e := newError(ErrUnsupportedFormat, format, "")
		e.Line = 1
		return "", e
	}
}

// Compose renders a complete document: the frontmatter block in the given
// format with its delimiters, a blank line and then body.
func Compose(fm Frontmatter, format Format, body string) (string, error) {
	out, err := Emit(fm, format)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	delim := format.Delimiter()
	if delim != "" {
		sb.WriteString(delim)
		sb.WriteByte('\n')
	}
	sb.WriteString(out)
	if !strings.HasSuffix(out, "\n") {
		sb.WriteByte('\n')
	}
	if delim != "" {
		sb.WriteString(delim)
		sb.WriteByte('\n')
	}
	if body != "" {
		sb.WriteByte('\n')
		sb.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			sb.WriteByte('\n')
		}
	}
	return sb.String(), nil
}
