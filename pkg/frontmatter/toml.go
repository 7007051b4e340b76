package frontmatter

import (
	"bytes"
	"log/slog"
	"math"

	tomlenc "github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
)

func parseTOML(raw string) (Frontmatter, error) {
	var data map[string]any
	if err := toml.Unmarshal([]byte(raw), &data); err != nil {
		line := 0
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			line, _ = derr.Position()
		}
		return nil, parseError(FormatTOML, line, err)
	}

	// Local dates and times arrive as go-toml types implementing
	// fmt.Stringer and offset date-times as time.Time; ValueOf turns both
	// into their canonical text.
	v, err := ValueOf(data)
	if err != nil {
		return nil, err
	}
	fm, _ := v.AsObject()
	return fm, nil
}

// emitTOML writes strings as basic (double-quoted) strings and inline
// arrays as ["a", "b"]. Keys are sorted, with sub-tables after plain keys.
func emitTOML(fm Frontmatter, logger *slog.Logger) (string, error) {
	table, err := tomlTable(fm, logger)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	enc := tomlenc.NewEncoder(&buf)
	enc.Indent = ""
	if err := enc.Encode(table); err != nil {
		return "", &Error{Kind: ErrConversion, Format: FormatTOML, Msg: "encoding TOML", Err: err}
	}
	return buf.String(), nil
}

// tomlTable converts fm into values go-toml encodes natively. TOML has no
// null, so null entries are left out of tables.
func tomlTable(fm Frontmatter, logger *slog.Logger) (map[string]any, error) {
	table := make(map[string]any, len(fm))
	for k, v := range fm {
		if v.Untagged().IsNull() {
			logger.Debug("omitting null value from TOML output", "key", k)
			continue
		}
		tv, err := tomlValue(v, logger)
		if err != nil {
			return nil, err
		}
		table[k] = tv
	}
	return table, nil
}

func tomlValue(v Value, logger *slog.Logger) (any, error) {
	switch v.kind {
	case KindString:
		return v.str, nil
	case KindNumber:
		// Whole numbers inside the int64 range are written as TOML integers.
		if v.num == math.Trunc(v.num) && math.Abs(v.num) < math.MaxInt64 {
			return int64(v.num), nil
		}
		return v.num, nil
	case KindBool:
		return v.b, nil
	case KindArray:
		items := make([]any, len(v.arr))
		for i, item := range v.arr {
			if item.Untagged().IsNull() {
				return nil, conversionError(FormatTOML, "TOML arrays cannot hold null values")
			}
			tv, err := tomlValue(item, logger)
			if err != nil {
				return nil, err
			}
			items[i] = tv
		}
		return items, nil
	case KindObject:
		return tomlTable(v.obj, logger)
	case KindTagged:
		return tomlValue(*v.elem, logger)
	default:
		return nil, conversionError(FormatTOML, "TOML cannot represent null")
	}
}
