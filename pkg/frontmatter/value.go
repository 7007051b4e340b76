package frontmatter

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindArray
	KindObject
	KindTagged
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindTagged:
		return "tagged"
	default:
		return "unknown"
	}
}

// Value is a parsed frontmatter value. The zero Value is null.
//
// Values are immutable once built. Constructors take ownership of the slices
// and maps passed to them, and accessors return internal storage that callers
// must not modify.
type Value struct {
	kind Kind
	str  string // string payload, or the tag of a tagged value
	num  float64
	b    bool
	arr  []Value
	obj  Frontmatter
	elem *Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number returns a numeric value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Array returns an ordered array value.
func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, arr: items}
}

// Object returns a nested mapping value.
func Object(fm Frontmatter) Value {
	if fm == nil {
		fm = New()
	}
	return Value{kind: KindObject, obj: fm}
}

// Tagged wraps v with a format-specific tag such as "!include".
func Tagged(tag string, v Value) Value {
	return Value{kind: KindTagged, str: tag, elem: &v}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsString returns the string payload.
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

// AsNumber returns the numeric payload.
func (v Value) AsNumber() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// AsBool returns the boolean payload.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsArray returns the array elements.
func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

// AsObject returns the nested mapping.
func (v Value) AsObject() (Frontmatter, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.obj, true
}

// AsTagged returns the tag and the wrapped value.
func (v Value) AsTagged() (string, Value, bool) {
	if v.kind != KindTagged {
		return "", Value{}, false
	}
	return v.str, *v.elem, true
}

// Untagged strips any number of tag wrappers.
func (v Value) Untagged() Value {
	for v.kind == KindTagged {
		v = *v.elem
	}
	return v
}

// Equal reports deep semantic equality.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.str == o.str
	case KindNumber:
		return v.num == o.num
	case KindBool:
		return v.b == o.b
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return v.obj.Equal(o.obj)
	case KindTagged:
		return v.str == o.str && v.elem.Equal(*o.elem)
	}
	return false
}

// String renders v for display. Object keys are sorted.
func (v Value) String() string {
	var sb strings.Builder
	v.writeDisplay(&sb)
	return sb.String()
}

func (v Value) writeDisplay(sb *strings.Builder) {
	switch v.kind {
	case KindNull:
		sb.WriteString("null")
	case KindString:
		sb.WriteString(strconv.Quote(v.str))
	case KindNumber:
		sb.WriteString(formatNumber(v.num))
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.b))
	case KindArray:
		sb.WriteByte('[')
		for i, item := range v.arr {
			if i > 0 {
				sb.WriteString(", ")
			}
			item.writeDisplay(sb)
		}
		sb.WriteByte(']')
	case KindObject:
		v.obj.writeDisplay(sb)
	case KindTagged:
		sb.WriteString(v.str)
		sb.WriteByte(' ')
		v.elem.writeDisplay(sb)
	}
}

// Interface converts v to plain Go values: nil, string, float64, bool,
// []any and map[string]any. Tags are dropped.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindArray:
		out := make([]any, len(v.arr))
		for i, item := range v.arr {
			out[i] = item.Interface()
		}
		return out
	case KindObject:
		return v.obj.Interface()
	case KindTagged:
		return v.elem.Interface()
	default:
		return nil
	}
}

// ValueOf converts a decoded Go value into a Value. Integers of any width are
// widened to float64 and date/time values become their canonical string form.
func ValueOf(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case Frontmatter:
		return Object(t), nil
	case string:
		return String(ownString(t)), nil
	case bool:
		return Bool(t), nil
	case float64:
		return Number(t), nil
	case int:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return Value{}, &Error{Kind: ErrConversion, Format: FormatJSON, Msg: "invalid number " + t.String(), Err: err}
		}
		return Number(n), nil
	case time.Time:
		return String(t.Format(time.RFC3339Nano)), nil
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			v, err := ValueOf(item)
			if err != nil {
				return Value{}, err
			}
			items[i] = v
		}
		return Array(items...), nil
	case map[string]any:
		fm := make(Frontmatter, len(t))
		for k, item := range t {
			v, err := ValueOf(item)
			if err != nil {
				return Value{}, err
			}
			fm[ownString(k)] = v
		}
		return Object(fm), nil
	case fmt.Stringer:
		return String(t.String()), nil
	}
	return reflectValueOf(reflect.ValueOf(x))
}

func reflectValueOf(rv reflect.Value) (Value, error) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number(float64(rv.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Number(float64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return Number(rv.Float()), nil
	case reflect.String:
		return String(ownString(rv.String())), nil
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return ValueOf(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return Array(), nil
		}
		items := make([]Value, rv.Len())
		for i := range items {
			v, err := ValueOf(rv.Index(i).Interface())
			if err != nil {
				return Value{}, err
			}
			items[i] = v
		}
		return Array(items...), nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		fm := make(Frontmatter, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			v, err := ValueOf(iter.Value().Interface())
			if err != nil {
				return Value{}, err
			}
			fm[ownString(iter.Key().String())] = v
		}
		return Object(fm), nil
	}
	return Value{}, &Error{Kind: ErrConversion, Format: FormatUnsupported, Msg: fmt.Sprintf("unsupported value type %T", rv.Interface())}
}

// ParseScalar interprets text the way a command-line override would:
// "null", "true" and "false" are literals, finite numbers become numbers and
// everything else is a string.
func ParseScalar(s string) Value {
	switch s {
	case "null":
		return Null()
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(n, 0) && !math.IsNaN(n) {
		return Number(n)
	}
	return String(s)
}

// smallStringSize is the length up to which strings are kept as handed over
// by a decoder. Longer strings are cloned so they do not pin decoder buffers.
const smallStringSize = 24

func ownString(s string) string {
	if len(s) <= smallStringSize {
		return s
	}
	return strings.Clone(s)
}

// formatNumber renders whole numbers without a fractional part and all
// others with the shortest representation that round-trips.
func formatNumber(n float64) string {
	if n == math.Trunc(n) && math.Abs(n) < 1e21 {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}
