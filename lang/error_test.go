package lang

import (
	"errors"
	"io"
	"log/slog"
	"testing"
)

func TestError_MessageFormat(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "bare sentinel",
			err:  ErrDivisionByZero,
			want: "division by zero",
		},
		{
			name: "with position",
			err:  ErrUnboundIdentifier.at(3, 7),
			want: "unbound identifier at (ln: 3, col: 7)",
		},
		{
			name: "with detail and position",
			err:  ErrUnboundIdentifier.detail("`x` is not defined").at(1, 1),
			want: "unbound identifier: `x` is not defined at (ln: 1, col: 1)",
		},
		{
			name: "line without column",
			err:  ErrTypeMismatch.at(3, 0),
			want: "type mismatch at (ln: 3)",
		},
		{
			name: "with wrapped cause",
			err:  ErrReadInput.Wrap(io.ErrUnexpectedEOF),
			want: "failed to read input: unexpected EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestError_IsAcrossClones(t *testing.T) {
	derived := ErrTypeMismatch.
		at(2, 5).
		detail("expected type of number; received type of string").
		With(slog.String("builtin", "+"))

	if !errors.Is(derived, ErrTypeMismatch) {
		t.Errorf("derived error must match its sentinel")
	}

	if errors.Is(derived, ErrDivisionByZero) {
		t.Errorf("derived error must not match unrelated sentinels")
	}
}

func TestError_CloneDoesNotMutateSentinel(t *testing.T) {
	_ = ErrNotCallable.at(9, 9).detail("scratch")

	if ErrNotCallable.Line() != 0 {
		t.Errorf("sentinel position mutated: %d", ErrNotCallable.Line())
	}

	if got := ErrNotCallable.Error(); got != "value is not callable" {
		t.Errorf("sentinel message mutated: %q", got)
	}
}

func TestError_Unwrap(t *testing.T) {
	wrapped := ErrReadInput.Wrap(io.ErrClosedPipe)

	if !errors.Is(wrapped, io.ErrClosedPipe) {
		t.Errorf("expected wrapped cause to be visible to errors.Is")
	}
}

func TestWrapError(t *testing.T) {
	t.Run("foreign error", func(t *testing.T) {
		e := WrapError(io.ErrShortWrite)

		if !errors.Is(e, io.ErrShortWrite) {
			t.Errorf("expected cause preserved")
		}
	})

	t.Run("existing Error passes through", func(t *testing.T) {
		orig := ErrRecursionLimit.at(4, 2)

		e := WrapError(orig)
		if e != orig {
			t.Errorf("expected identical *Error, got %v", e)
		}
	})
}

func TestError_LogValue(t *testing.T) {
	err := ErrIndexOutOfRange.
		at(1, 2).
		detail("index 9 exceeds bounds of length 3").
		With(slog.String("builtin", "at"))

	attrs := err.LogValue().Group()

	got := make(map[string]string, len(attrs))
	for _, a := range attrs {
		got[a.Key] = a.Value.String()
	}

	want := map[string]string{
		"error":   "index out of range",
		"detail":  "index 9 exceeds bounds of length 3",
		"line":    "1",
		"col":     "2",
		"builtin": "at",
	}

	for key, val := range want {
		if got[key] != val {
			t.Errorf("attr %q: expected %q, got %q", key, val, got[key])
		}
	}
}
