package repl

import (
	"slices"
	"testing"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/limelang/lime/lang"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{
			name:      "empty input",
			input:     "",
			cursor:    0,
			wantWord:  "",
			wantStart: 0,
			wantEnd:   0,
		},
		{
			name:      "single word at end",
			input:     "len",
			cursor:    3,
			wantWord:  "len",
			wantStart: 0,
			wantEnd:   3,
		},
		{
			name:      "cursor mid-word takes whole word",
			input:     "print x",
			cursor:    3,
			wantWord:  "print",
			wantStart: 0,
			wantEnd:   5,
		},
		{
			name:      "second word",
			input:     "print xs",
			cursor:    8,
			wantWord:  "xs",
			wantStart: 6,
			wantEnd:   8,
		},
		{
			name:      "cursor after space starts next word",
			input:     "print x",
			cursor:    6,
			wantWord:  "x",
			wantStart: 6,
			wantEnd:   7,
		},
		{
			name:      "paren is a boundary",
			input:     "(len",
			cursor:    4,
			wantWord:  "len",
			wantStart: 1,
			wantEnd:   4,
		},
		{
			name:      "bracket and comma are boundaries",
			input:     "[ab,cd]",
			cursor:    6,
			wantWord:  "cd",
			wantStart: 4,
			wantEnd:   6,
		},
		{
			name:      "lambda dot is a boundary",
			input:     `\x.len`,
			cursor:    6,
			wantWord:  "len",
			wantStart: 3,
			wantEnd:   6,
		},
		{
			name:      "operators are word characters",
			input:     "a+b",
			cursor:    2,
			wantWord:  "a+b",
			wantStart: 0,
			wantEnd:   3,
		},
		{
			name:      "colon command",
			input:     ":he",
			cursor:    3,
			wantWord:  ":he",
			wantStart: 0,
			wantEnd:   3,
		},
		{
			name:      "cursor past end clamps",
			input:     "ab",
			cursor:    10,
			wantWord:  "ab",
			wantStart: 0,
			wantEnd:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)

			if word != tt.wantWord {
				t.Errorf("expected word %q, got %q", tt.wantWord, word)
			}

			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("expected bounds [%d, %d], got [%d, %d]",
					tt.wantStart, tt.wantEnd, start, end)
			}
		})
	}
}

func completerModel(value string, cursor int) model {
	input := textinput.New()
	input.SetValue(value)
	input.SetCursor(cursor)

	return model{
		input:  input,
		interp: lang.New(),
	}
}

func matchStrings(t *testing.T, m model) []string {
	t.Helper()

	matches, _, _ := m.computeMatches()

	got := make([]string, len(matches))
	for i, match := range matches {
		got[i] = match.Str
	}

	return got
}

func TestComputeMatches_Builtins(t *testing.T) {
	m := completerModel("le", 2)

	got := matchStrings(t, m)
	if !slices.Contains(got, "len") {
		t.Errorf("expected len among matches, got %v", got)
	}
}

func TestComputeMatches_UserBindings(t *testing.T) {
	m := completerModel("dou", 3)

	if _, _, err := m.interp.EvalLine(`double := \x.* x 2`, 1); err != nil {
		t.Fatalf("eval error: %v", err)
	}

	got := matchStrings(t, m)
	if !slices.Contains(got, "double") {
		t.Errorf("expected double among matches, got %v", got)
	}
}

func TestComputeMatches_ColonCommands(t *testing.T) {
	m := completerModel(":h", 2)

	got := matchStrings(t, m)
	if !slices.Contains(got, ":help") {
		t.Errorf("expected :help among matches, got %v", got)
	}

	for _, s := range got {
		if !slices.Contains(ctrlCommands, s) {
			t.Errorf("colon word must only match commands, got %q", s)
		}
	}
}

func TestComputeMatches_EmptyWord(t *testing.T) {
	m := completerModel("", 0)

	matches, _, _ := m.computeMatches()
	if len(matches) != 0 {
		t.Errorf("expected no matches for empty word, got %v", matches)
	}
}

func TestRenderCandidateBar_Empty(t *testing.T) {
	if got := renderCandidateBar(nil, 0, false, 80); got != "" {
		t.Errorf("expected empty bar, got %q", got)
	}
}
