package config

import (
	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/fmgen/internal/paths"
	"github.com/thoreinstein/fmgen/pkg/frontmatter"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrInvalidFormat indicates an unrecognized default frontmatter format.
	ErrInvalidFormat = errors.New("invalid frontmatter format")

	// ErrInvalidLimit indicates a non-positive limit or worker count.
	ErrInvalidLimit = errors.New("must be a positive number")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version < 1 {
		errs = append(errs, ErrVersionTooLow)
	}

	if cfg.Extract.DefaultFormat != "" {
		if _, err := frontmatter.ParseFormat(cfg.Extract.DefaultFormat); err != nil {
			errs = append(errs, errors.Wrapf(ErrInvalidFormat, "extract.default_format: %q", cfg.Extract.DefaultFormat))
		}
	}

	limits := []struct {
		field string
		value int
	}{
		{"validate.max_depth", cfg.Validate.MaxDepth},
		{"validate.max_keys", cfg.Validate.MaxKeys},
		{"build.workers", cfg.Build.Workers},
	}
	for _, l := range limits {
		if l.value < 1 {
			errs = append(errs, &FieldError{Field: l.field, Err: ErrInvalidLimit})
		}
	}

	dirs := []struct {
		field string
		path  string
	}{
		{"build.content_dir", cfg.Build.ContentDir},
		{"build.output_dir", cfg.Build.OutputDir},
		{"build.template_dir", cfg.Build.TemplateDir},
	}
	for _, d := range dirs {
		// Empty paths mean "use default".
		if d.path == "" {
			continue
		}
		if err := paths.ValidatePath(d.path); err != nil {
			errs = append(errs, &PathError{Field: d.field, Path: d.path, Err: err})
		}
	}

	if cfg.Validate.Schema != "" {
		if err := paths.ValidatePath(cfg.Validate.Schema); err != nil {
			errs = append(errs, &PathError{Field: "validate.schema", Path: cfg.Validate.Schema, Err: err})
		}
	}

	return errs
}

// FieldError represents an error for a specific config field.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// PathError represents an error for a specific path field.
type PathError struct {
	Field string
	Path  string
	Err   error
}

func (e *PathError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *PathError) Unwrap() error {
	return e.Err
}
