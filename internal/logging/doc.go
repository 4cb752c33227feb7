// Package logging provides structured logging for quail using slog.
//
// Console output uses a compact, optionally colorised text handler; JSON
// output is available for machine consumption. When a log file is
// configured, records are additionally written as JSON to a size-rotated
// file (gopkg.in/natefinch/lumberjack.v2).
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  slog.LevelInfo,
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	logger.Info("installed", "version", "1.1")
//
// Commands receive the logger through their context:
//
//	ctx = logging.NewContext(ctx, logger)
//	logging.FromContext(ctx).Debug("opening source")
//
// # Redaction
//
// Attribute values whose key looks sensitive (token, secret, password) or
// whose value carries a well-known token prefix are masked by every handler
// this package builds.
//
// # Testing
//
// Use [ForTest] to route log output through t.Log, or [NewDiscard] to drop it.
package logging
