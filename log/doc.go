// Package log provides a leveled structured logging interface based on
// [log/slog], with a trace level below debug, selectable text and JSON
// output, and colorized text rendering for interactive use.
//
// Loggers are configured at creation with functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("StampMilli"))
//
// The zero Logger is valid and discards every message, so components can
// embed one unconditionally and log only when the caller wires a real
// logger in.
//
// Package-level functions mirror the Logger methods against a default
// logger writing to os.Stderr; [Config] adjusts it in place:
//
//	log.Config(log.WithLevel(log.LevelTrace))
//	log.Debug("cache miss", slog.String("key", key))
package log
