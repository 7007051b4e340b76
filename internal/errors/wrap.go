package errors

import crdb "github.com/cockroachdb/errors"

// Thin re-exports of github.com/cockroachdb/errors so command code needs a
// single errors import.

// New returns an error with the given message and a stack trace.
func New(msg string) error { return crdb.NewWithDepth(1, msg) }

// Newf is New with formatting.
func Newf(format string, args ...any) error { return crdb.NewWithDepthf(1, format, args...) }

// Wrap annotates err with msg. It returns nil when err is nil.
func Wrap(err error, msg string) error { return crdb.WrapWithDepth(1, err, msg) }

// Wrapf is Wrap with formatting.
func Wrapf(err error, format string, args ...any) error {
	return crdb.WrapWithDepthf(1, err, format, args...)
}

// Is reports whether any error in err's chain matches reference.
func Is(err, reference error) bool { return crdb.Is(err, reference) }

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool { return crdb.As(err, target) }

// Mark returns err marked so that errors.Is also matches reference.
func Mark(err, reference error) error { return crdb.Mark(err, reference) }

// Join combines errs into one error, skipping nils.
func Join(errs ...error) error { return crdb.Join(errs...) }
