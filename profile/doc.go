// Package profile provides optional runtime profiling for the lime
// interpreter, built on [github.com/pkg/profile].
//
// Profiling must be enabled at build time with the "pprof" build tag:
//
//	go build -tags pprof .
//
// Without the tag every operation is a no-op with zero overhead. With the
// tag, the --pprof-mode flag selects one of the modes listed by [Modes]
// (cpu, heap, allocs, block, mutex, goroutine, thread, trace, clock, mem)
// and --pprof-dir selects the output directory, defaulting to the pprof
// subdirectory of the interpreter's cache directory.
//
// Analyze the written profiles with the standard tooling:
//
//	go tool pprof ./lime ~/.cache/lime/pprof/cpu.pprof
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
