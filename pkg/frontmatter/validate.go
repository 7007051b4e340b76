package frontmatter

import (
	"log/slog"
	"regexp"
	"strconv"
)

// Default validation limits.
const (
	DefaultMaxDepth = 32
	DefaultMaxKeys  = 1000
)

// Options configures parsing and validation. The zero value validates with
// the default limits and skips input checks.
type Options struct {
	// MaxDepth bounds nesting of arrays and objects. Values below 1 select
	// DefaultMaxDepth.
	MaxDepth int
	// MaxKeys bounds the number of top-level keys. Values below 1 select
	// DefaultMaxKeys.
	MaxKeys int
	// SkipValidation disables the depth and key checks.
	SkipValidation bool
	// CheckInput runs ValidateInput over the whole document before
	// extraction.
	CheckInput bool
	// RejectPatterns replaces DefaultRejectPatterns for CheckInput.
	RejectPatterns []*regexp.Regexp
	// Logger receives diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.MaxDepth < 1 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.MaxKeys < 1 {
		o.MaxKeys = DefaultMaxKeys
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if len(o.RejectPatterns) == 0 {
		o.RejectPatterns = DefaultRejectPatterns
	}
	return o
}

// Validate checks fm against the key count and depth limits in opts.
// SkipValidation is ignored; calling Validate always validates.
func Validate(fm Frontmatter, opts Options) error {
	opts = opts.withDefaults()

	if fm.Len() > opts.MaxKeys {
		return newError(ErrTooManyKeys, FormatUnsupported,
			strconv.Itoa(fm.Len())+" keys, limit is "+strconv.Itoa(opts.MaxKeys))
	}

	// Top-level values sit one level below the root mapping.
	for _, k := range fm.Keys() {
		if err := checkDepth(fm[k], 1, opts.MaxDepth, k); err != nil {
			return err
		}
	}
	return nil
}

func checkDepth(v Value, depth, limit int, path string) error {
	if depth > limit {
		return newError(ErrDepthLimitExceeded, FormatUnsupported,
			"depth "+strconv.Itoa(depth)+" at "+strconv.Quote(path)+" exceeds limit "+strconv.Itoa(limit))
	}
	switch v.kind {
	case KindArray:
		for i, item := range v.arr {
			if err := checkDepth(item, depth+1, limit, path+"["+strconv.Itoa(i)+"]"); err != nil {
				return err
			}
		}
	case KindObject:
		for _, k := range v.obj.Keys() {
			if err := checkDepth(v.obj[k], depth+1, limit, path+"."+k); err != nil {
				return err
			}
		}
	case KindTagged:
		return checkDepth(*v.elem, depth, limit, path)
	}
	return nil
}
