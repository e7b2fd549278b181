// Package cli contains the command line interface for the lime
// interpreter.
//
// # Commands
//
//   - run:  interpret source files against one persistent environment
//     (default when arguments are given)
//   - fmt:  reformat parsed source as native syntax, JSON, YAML, or a
//     syntax tree dump
//   - repl: start an interactive session with completion and history
//
// # Configuration
//
// Flags may be defaulted from a configuration file written as lime
// bindings at $XDG_CONFIG_HOME/lime/config.lime (with a JSON alternative
// at config.json read first):
//
//	log_level := "debug"
//	log_format := "text"
//
// Command-line flags override configuration file values.
//
// # Logging options
//
//   - --log-level: minimum log level (trace, debug, info, warn, error)
//   - --log-format: output format (json, text)
//   - --log-time-layout: timestamp layout (RFC3339, StampMilli, none, ...)
//   - --log-caller: include caller information
//   - --log-pretty: colorize text output
//
// # Profiling options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: enable profiling (cpu, heap, allocs, block, mutex,
//     goroutine, thread, trace, clock, mem)
//   - --pprof-dir: profile output directory (default:
//     ~/.cache/lime/pprof)
package cli
