// Package logging provides structured logging for the fmgen CLI using slog.
//
// Terminal output goes through [Handler], a compact colorized text handler
// that masks secret-looking attribute values. [FormatJSON] selects the
// standard JSON handler instead, and [Config.File] tees records to a JSON log
// file through [MultiHandler].
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  logging.LevelFromVerbosity(verbose),
//		Format: logging.FormatText,
//	})
//	ctx = logging.NewContext(ctx, logger)
//	logging.FromContext(ctx).Info("extracting", "path", path)
//
// # Testing
//
// For tests, use [ForTest] to route log output through t.Log:
//
//	logger := logging.ForTest(t)
//
// Use [NewDiscard] when log output should be suppressed entirely.
package logging
