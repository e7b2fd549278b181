package repl

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func testHistory(t *testing.T) *History {
	t.Helper()

	return NewHistory(filepath.Join(t.TempDir(), baseHistory))
}

func TestHistory_LoadMissingFile(t *testing.T) {
	h := testHistory(t)

	if err := h.Load(); err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}

	if h.Len() != 0 {
		t.Errorf("expected empty history, got %d entries", h.Len())
	}
}

func TestHistory_WriteAndReload(t *testing.T) {
	h := testHistory(t)

	for _, entry := range []string{"+ 1 2", `id := \x.x`, "id 3"} {
		if _, err := h.Write(entry); err != nil {
			t.Fatalf("write error: %v", err)
		}
	}

	reloaded := NewHistory(h.path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("load error: %v", err)
	}

	want := []string{"+ 1 2", `id := \x.x`, "id 3"}
	if got := reloaded.Entries(); !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestHistory_SkipsBlankEntries(t *testing.T) {
	h := testHistory(t)

	if n, err := h.Write("   "); err != nil || n != 0 {
		t.Errorf("blank entry should be ignored, got n=%d err=%v", n, err)
	}

	if h.Len() != 0 {
		t.Errorf("expected no entries, got %d", h.Len())
	}
}

func TestHistory_ConsecutiveDuplicateIgnored(t *testing.T) {
	h := testHistory(t)

	if _, err := h.Write("+ 1 2"); err != nil {
		t.Fatalf("write error: %v", err)
	}

	if _, err := h.Write("+ 1 2"); err != nil {
		t.Fatalf("write error: %v", err)
	}

	if h.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", h.Len())
	}
}

func TestHistory_EarlierDuplicateMovesToEnd(t *testing.T) {
	h := testHistory(t)

	for _, entry := range []string{"a", "b", "c", "a"} {
		if _, err := h.Write(entry); err != nil {
			t.Fatalf("write error: %v", err)
		}
	}

	want := []string{"b", "c", "a"}
	if got := h.Entries(); !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	// The rewrite must also land on disk.
	reloaded := NewHistory(h.path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("load error: %v", err)
	}

	if got := reloaded.Entries(); !slices.Equal(got, want) {
		t.Errorf("expected persisted %v, got %v", want, got)
	}
}

func TestHistory_GetLine(t *testing.T) {
	h := testHistory(t)

	if _, err := h.Write("oldest"); err != nil {
		t.Fatalf("write error: %v", err)
	}

	if _, err := h.Write("newest"); err != nil {
		t.Fatalf("write error: %v", err)
	}

	line, err := h.GetLine(0)
	if err != nil || line != "oldest" {
		t.Errorf("expected oldest, got %q (%v)", line, err)
	}

	if _, err := h.GetLine(2); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected out of bounds, got %v", err)
	}

	if _, err := h.GetLine(-1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected out of bounds, got %v", err)
	}
}

func TestHistory_LoadSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	if err := os.WriteFile(path, []byte("a\n\n  \nb\n"), 0o600); err != nil {
		t.Fatalf("seed error: %v", err)
	}

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatalf("load error: %v", err)
	}

	want := []string{"a", "b"}
	if got := h.Entries(); !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
