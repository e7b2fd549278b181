//go:build !pprof

package profile

// Modes returns no modes when built without the pprof build tag.
var Modes = func() []string { return nil }

// start never runs without the pprof build tag; [Config.Start] short
// circuits on an empty mode and no mode is accepted by the CLI.
func start(string, string, bool) interface{ Stop() } {
	return ignore{}
}
