package log

import (
	"log/slog"
	"slices"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Level
	}{
		{name: "trace", input: "trace", want: LevelTrace},
		{name: "trace uppercase", input: "TRACE", want: LevelTrace},
		{name: "trace padded", input: " trace ", want: LevelTrace},
		{name: "debug", input: "debug", want: LevelDebug},
		{name: "info", input: "info", want: LevelInfo},
		{name: "warn", input: "warn", want: LevelWarn},
		{name: "error", input: "ERROR", want: LevelError},
		{name: "offset spelling", input: "info+2", want: LevelInfo + 2},
		{name: "unknown falls back", input: "bogus", want: DefaultLevel},
		{name: "empty falls back", input: "", want: DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{level: LevelTrace, want: "trace"},
		{level: LevelDebug, want: "debug"},
		{level: LevelInfo, want: "info"},
		{level: LevelWarn, want: "warn"},
		{level: LevelError, want: "error"},
		{level: LevelInfo + 2, want: "info+2"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestLevels(t *testing.T) {
	got := slices.Collect(Levels())
	want := []string{"trace", "debug", "info", "warn", "error"}

	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Format
	}{
		{name: "json", input: "json", want: FormatJSON},
		{name: "json uppercase", input: "JSON", want: FormatJSON},
		{name: "text", input: "text", want: FormatText},
		{name: "unknown falls back", input: "xml", want: DefaultFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseFormat(tt.input); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFormats(t *testing.T) {
	got := slices.Collect(Formats())
	want := []string{"text", "json"}

	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestResolveTimeLayout(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "named layout", input: "RFC3339", want: time.RFC3339},
		{name: "lowercase named", input: "stampmilli", want: time.StampMilli},
		{name: "none disables", input: "none", want: ""},
		{name: "literal layout passes through", input: "15:04:05", want: "15:04:05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveTimeLayout(tt.input); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestLevelTrace_BelowDebug(t *testing.T) {
	if slog.Level(LevelTrace) >= slog.Level(LevelDebug) {
		t.Errorf("trace must order below debug, got %v", LevelTrace)
	}
}
