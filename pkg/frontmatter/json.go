package frontmatter

import (
	"encoding/json"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

func parseJSON(raw string) (Frontmatter, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var data any
	if err := dec.Decode(&data); err != nil {
		return nil, parseError(FormatJSON, jsonErrorLine(raw, err), err)
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		e := newError(ErrParse, FormatJSON, "unexpected data after the top-level object")
		e.Line = lineAt(raw, int(dec.InputOffset()))
		return nil, e
	}

	obj, ok := data.(map[string]any)
	if !ok {
		return nil, newError(ErrInvalidFormat, FormatJSON, "top level must be an object")
	}
	v, err := ValueOf(obj)
	if err != nil {
		return nil, err
	}
	fm, _ := v.AsObject()
	return fm, nil
}

func jsonErrorLine(raw string, err error) int {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return lineAt(raw, int(syntaxErr.Offset))
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return lineAt(raw, int(typeErr.Offset))
	}
	return 0
}

// emitJSON writes fm as compact JSON with sorted keys into a buffer sized up
// front by estimateJSONSize.
func emitJSON(fm Frontmatter) (string, error) {
	buf := make([]byte, 0, estimateJSONSize(fm))
	buf, err := appendJSONObject(buf, fm)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// estimateJSONSize approximates the encoded size of fm: per key its length
// plus quotes and separator, per value 4 for null, 8 for numbers, 5 for
// booleans and the quoted length for strings.
func estimateJSONSize(fm Frontmatter) int {
	size := 2
	for k, v := range fm {
		size += len(k) + 3 + estimateJSONValue(v)
	}
	return size
}

func estimateJSONValue(v Value) int {
	switch v.kind {
	case KindString:
		return len(v.str) + 2
	case KindNumber:
		return 8
	case KindBool:
		return 5
	case KindArray:
		size := 2
		for _, item := range v.arr {
			size += estimateJSONValue(item) + 1
		}
		return size
	case KindObject:
		return estimateJSONSize(v.obj)
	case KindTagged:
		return estimateJSONValue(*v.elem)
	default:
		return 4
	}
}

func appendJSONObject(buf []byte, fm Frontmatter) ([]byte, error) {
	buf = append(buf, '{')
	for i, k := range fm.Keys() {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = appendJSONString(buf, k)
		buf = append(buf, ':')
		var err error
		if buf, err = appendJSONValue(buf, fm[k]); err != nil {
			return nil, err
		}
	}
	return append(buf, '}'), nil
}

func appendJSONValue(buf []byte, v Value) ([]byte, error) {
	switch v.kind {
	case KindString:
		return appendJSONString(buf, v.str), nil
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return nil, conversionError(FormatJSON, "JSON cannot represent "+strconv.FormatFloat(v.num, 'g', -1, 64))
		}
		return append(buf, formatNumber(v.num)...), nil
	case KindBool:
		return strconv.AppendBool(buf, v.b), nil
	case KindArray:
		buf = append(buf, '[')
		for i, item := range v.arr {
			if i > 0 {
				buf = append(buf, ',')
			}
			var err error
			if buf, err = appendJSONValue(buf, item); err != nil {
				return nil, err
			}
		}
		return append(buf, ']'), nil
	case KindObject:
		return appendJSONObject(buf, v.obj)
	case KindTagged:
		return appendJSONValue(buf, *v.elem)
	default:
		return append(buf, "null"...), nil
	}
}

const hexDigits = "0123456789abcdef"

// appendJSONString appends s as a JSON string literal. Control characters,
// quotes, backslashes and the JavaScript line separators are escaped; invalid
// UTF-8 becomes U+FFFD.
func appendJSONString(buf []byte, s string) []byte {
	buf = append(buf, '"')
	start := 0
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			if c >= 0x20 && c != '"' && c != '\\' {
				i++
				continue
			}
			buf = append(buf, s[start:i]...)
			switch c {
			case '"', '\\':
				buf = append(buf, '\\', c)
			case '\n':
				buf = append(buf, '\\', 'n')
			case '\r':
				buf = append(buf, '\\', 'r')
			case '\t':
				buf = append(buf, '\\', 't')
			default:
				buf = append(buf, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xF])
			}
			i++
			start = i
			continue
		}

		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			buf = append(buf, s[start:i]...)
			buf = append(buf, `\ufffd`...)
		case r == '\u2028' || r == '\u2029':
			buf = append(buf, s[start:i]...)
			buf = append(buf, '\\', 'u', '2', '0', '2', hexDigits[r&0xF])
		default:
			i += size
			continue
		}
		i += size
		start = i
	}
	buf = append(buf, s[start:]...)
	return append(buf, '"')
}
