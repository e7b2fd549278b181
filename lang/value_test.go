package lang

import "testing"

func TestValue_Kind(t *testing.T) {
	for _, tt := range []struct {
		name string
		val  Value
		want ValueKind
	}{
		{"number", Number(3.5), ValueNumber},
		{"string", String("abc"), ValueString},
		{"list", List{Number(1)}, ValueList},
		{"none", None{}, ValueNone},
		{"closure", &Closure{Param: "x"}, ValueFunction},
		{"builtin", &Builtin{Name: "+", Arity: 2}, ValueFunction},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.val.Kind(); got != tt.want {
				t.Errorf("Kind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValueKind_String(t *testing.T) {
	for _, tt := range []struct {
		kind ValueKind
		want string
	}{
		{ValueNone, "none"},
		{ValueNumber, "number"},
		{ValueString, "string"},
		{ValueList, "list"},
		{ValueFunction, "function"},
		{ValueKind(99), "unknown"},
	} {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// Token kinds and value kinds spell their literal classes the same way but
// are distinct enums; both must name numbers and strings independently.
func TestValueKind_DistinctFromTokenKind(t *testing.T) {
	pairs := []struct {
		tok Kind
		val ValueKind
	}{
		{KindNumber, ValueNumber},
		{KindString, ValueString},
	}

	for _, p := range pairs {
		if p.tok.String() != p.val.String() {
			t.Errorf("token kind %v and value kind %v should share a display name",
				p.tok, p.val)
		}
	}
}
