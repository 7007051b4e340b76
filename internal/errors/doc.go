// Package errors holds fmgen's exit-code plumbing and sentinel errors.
//
// Commands return an [ExitError] to choose the process exit status and,
// optionally, a hint printed under the message:
//
//	return errors.NewUserError(err, "Run 'fmgen --help' for usage")
//
// Status codes are [ExitSuccess], [ExitUser] for bad input or failed
// validation, and [ExitSystem] for I/O trouble. [ExitCode] walks the chain
// and treats an error without an ExitError as a system failure.
//
// The wrapping helpers (New, Newf, Wrap, Wrapf, Is, As, Mark, Join) forward
// to github.com/cockroachdb/errors.
package errors
