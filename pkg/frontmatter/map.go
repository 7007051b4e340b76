package frontmatter

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-viper/mapstructure/v2"
)

// Frontmatter maps unique keys to values. Iteration order carries no meaning;
// every rendering of a Frontmatter sorts its keys.
type Frontmatter map[string]Value

// New returns an empty Frontmatter.
func New() Frontmatter {
	return make(Frontmatter)
}

// Get returns the value stored under key.
func (f Frontmatter) Get(key string) (Value, bool) {
	v, ok := f[key]
	return v, ok
}

// Set stores v under key, replacing any existing value.
func (f Frontmatter) Set(key string, v Value) {
	f[key] = v
}

// Remove deletes key and returns the value it held.
func (f Frontmatter) Remove(key string) (Value, bool) {
	v, ok := f[key]
	if ok {
		delete(f, key)
	}
	return v, ok
}

// Has reports whether key is present.
func (f Frontmatter) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// IsNull reports whether key is present and holds null.
func (f Frontmatter) IsNull(key string) bool {
	v, ok := f[key]
	return ok && v.IsNull()
}

// Len returns the number of top-level keys.
func (f Frontmatter) Len() int { return len(f) }

// IsEmpty reports whether f has no keys.
func (f Frontmatter) IsEmpty() bool { return len(f) == 0 }

// Keys returns the keys in sorted order.
func (f Frontmatter) Keys() []string {
	return slices.Sorted(maps.Keys(f))
}

// Merge copies every entry of other into f. Entries in other win.
func (f Frontmatter) Merge(other Frontmatter) {
	maps.Copy(f, other)
}

// Clone returns a deep copy of f.
func (f Frontmatter) Clone() Frontmatter {
	if f == nil {
		return nil
	}
	out := make(Frontmatter, len(f))
	for k, v := range f {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v Value) Value {
	switch v.kind {
	case KindArray:
		items := make([]Value, len(v.arr))
		for i, item := range v.arr {
			items[i] = cloneValue(item)
		}
		return Array(items...)
	case KindObject:
		return Object(v.obj.Clone())
	case KindTagged:
		return Tagged(v.str, cloneValue(*v.elem))
	default:
		return v
	}
}

// Equal reports deep semantic equality.
func (f Frontmatter) Equal(o Frontmatter) bool {
	if len(f) != len(o) {
		return false
	}
	for k, v := range f {
		ov, ok := o[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// String renders f for display with sorted keys.
func (f Frontmatter) String() string {
	var sb strings.Builder
	f.writeDisplay(&sb)
	return sb.String()
}

func (f Frontmatter) writeDisplay(sb *strings.Builder) {
	sb.WriteByte('{')
	for i, k := range f.Keys() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Quote(k))
		sb.WriteString(": ")
		f[k].writeDisplay(sb)
	}
	sb.WriteByte('}')
}

// Interface converts f to a map of plain Go values.
func (f Frontmatter) Interface() map[string]any {
	out := make(map[string]any, len(f))
	for k, v := range f {
		out[k] = v.Interface()
	}
	return out
}

// Decode stores f into out, which must be a pointer to a struct or map.
// Struct fields are matched through `mapstructure` tags and scalar types are
// converted weakly, so a numeric "year: 2024" decodes into a string field.
func (f Frontmatter) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return errors.Wrap(err, "creating decoder")
	}
	if err := dec.Decode(f.Interface()); err != nil {
		return &Error{Kind: ErrConversion, Format: FormatUnsupported, Msg: "decoding frontmatter", Err: err}
	}
	return nil
}
