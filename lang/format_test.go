package lang

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestDisplay(t *testing.T) {
	tests := []struct {
		name string
		val  Value
		want string
	}{
		{name: "integral number", val: Number(42), want: "42"},
		{name: "fractional number", val: Number(3.25), want: "3.25"},
		{name: "negative number", val: Number(-0.5), want: "-0.5"},
		{name: "no exponent form", val: Number(1e21), want: "1000000000000000000000"},
		{name: "string is raw", val: String("a b"), want: "a b"},
		{name: "empty string", val: String(""), want: ""},
		{name: "none", val: None{}, want: "()"},
		{name: "empty list", val: List{}, want: "[]"},
		{
			name: "list quotes nested strings",
			val:  List{Number(1), String("a"), List{None{}}},
			want: `[1, "a", [()]]`,
		},
		{
			name: "list escapes nested string",
			val:  List{String("a\nb")},
			want: `["a\nb"]`,
		},
		{name: "builtin", val: &Builtin{Name: "len"}, want: "<builtin len>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Display(tt.val); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDisplay_Closure(t *testing.T) {
	in, _ := testInterp()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "named parameter", input: `\x.+ x 1`, want: `\x.((+ x) 1)`},
		{name: "parameterless", input: `\.0`, want: `\.0`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val, err := evalLines(in, tt.input)
			if err != nil {
				t.Fatalf("eval error: %v", err)
			}

			if got := Display(val); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestProgram_Format(t *testing.T) {
	prog, err := ParseReader(strings.NewReader(
		"fact:=\\f.\\n.= n 0 1 (* n (f f (- n 1)))\n; comment\nfact fact 5\n",
	))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	var buf bytes.Buffer
	if err := prog.Format(context.Background(), &buf, 0); err != nil {
		t.Fatalf("format error: %v", err)
	}

	want := "fact := \\f.\\n.((((= n) 0) 1) ((* n) ((f f) ((- n) 1))))\n" +
		"((fact fact) 5)\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestProgram_FormatJSON(t *testing.T) {
	prog, err := ParseReader(strings.NewReader("x := 1\n"))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	var buf bytes.Buffer
	if err := prog.FormatJSON(context.Background(), &buf, 2); err != nil {
		t.Fatalf("format error: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	stmts, ok := doc["statements"].([]any)
	if !ok || len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %v", doc["statements"])
	}

	bind, ok := stmts[0].(map[string]any)
	if !ok || bind["kind"] != "bind" || bind["name"] != "x" {
		t.Errorf("unexpected statement shape: %v", stmts[0])
	}
}

func TestProgram_FormatYAML(t *testing.T) {
	prog, err := ParseReader(strings.NewReader("x := 1\n"))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	var buf bytes.Buffer
	if err := prog.FormatYAML(context.Background(), &buf, 2); err != nil {
		t.Fatalf("format error: %v", err)
	}

	for _, want := range []string{"statements", "kind: bind", "name: x"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected output to contain %q, got %q", want, buf.String())
		}
	}
}

func TestProgram_FormatAST(t *testing.T) {
	prog, err := ParseReader(strings.NewReader("twice := \\f.\\x.f (f x)\n"))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	var buf bytes.Buffer
	if err := prog.FormatAST(context.Background(), &buf, 2); err != nil {
		t.Fatalf("format error: %v", err)
	}

	want := strings.Join([]string{
		"bind twice",
		"  lambda f",
		"    lambda x",
		"      apply",
		"        ident f",
		"        apply",
		"          ident f",
		"          ident x",
	}, "\n") + "\n"

	if buf.String() != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, buf.String())
	}
}

func TestSnippet(t *testing.T) {
	source := "first\nsec(ond\nthird\n"

	err := ErrUnexpectedToken.at(2, 4)

	got := Snippet(err, source)
	want := "  2 | sec(ond\n" +
		"         ^\n"

	if got != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestSnippet_NoPosition(t *testing.T) {
	if got := Snippet(ErrUnexpectedToken, "x\n"); got != "" {
		t.Errorf("expected empty snippet, got %q", got)
	}
}
