package formula

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func lookupFrom(values map[string]string) Lookup {
	return func(id string) (decimal.Decimal, error) {
		v, ok := values[id]
		if !ok {
			return decimal.Zero, &UnresolvedReferenceError{Ref: id, Reason: "no such item"}
		}
		return decimal.RequireFromString(v), nil
	}
}

func TestEval(t *testing.T) {
	lookup := lookupFrom(map[string]string{"A": "10", "B": "4", "C": "0", "D": "3"})

	tests := []struct {
		name    string
		formula string
		want    string
		wantErr error
	}{
		{name: "reference plus literal", formula: "B + 10", want: "14"},
		{name: "precedence", formula: "A + B * 2", want: "18"},
		{name: "grouping", formula: "(A + B) * 2", want: "28"},
		{name: "negation", formula: "-A + B", want: "-6"},
		{name: "division", formula: "A / B", want: "2.5"},
		{name: "evaluated zero divisor", formula: "A / C", wantErr: &DivisionByZeroError{}},
		{name: "computed zero divisor", formula: "A / (B - 4)", wantErr: &DivisionByZeroError{}},
		{name: "missing reference", formula: "A + Z", wantErr: &UnresolvedReferenceError{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := Parse(tt.formula, nil)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.formula, err)
			}
			got, err := Eval(node, lookup)

			switch want := tt.wantErr.(type) {
			case nil:
				if err != nil {
					t.Fatalf("Eval(%q) error = %v", tt.formula, err)
				}
				if !got.Round(10).Equal(decimal.RequireFromString(tt.want)) {
					t.Errorf("Eval(%q) = %s, want %s", tt.formula, got, tt.want)
				}
			case *DivisionByZeroError:
				if !errors.As(err, &want) {
					t.Errorf("Eval(%q) error = %v, want division by zero", tt.formula, err)
				}
			case *UnresolvedReferenceError:
				if !errors.As(err, &want) {
					t.Errorf("Eval(%q) error = %v, want unresolved reference", tt.formula, err)
				}
			}
		})
	}
}

func TestEvalWithoutLookup(t *testing.T) {
	node, err := Parse("B * 2", nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	var unresolved *UnresolvedReferenceError
	if _, err := Eval(node, nil); !errors.As(err, &unresolved) {
		t.Errorf("Eval error = %v, want *UnresolvedReferenceError", err)
	}
}

func TestRenameReferences(t *testing.T) {
	rename := map[string]string{
		"slab":   "7c1e5b0a-0000-4000-8000-000000000001",
		"finish": "labor_2",
	}

	tests := []struct {
		name    string
		formula string
		want    string
	}{
		{name: "bare names", formula: "slab * 0.1 + finish", want: "[7c1e5b0a-0000-4000-8000-000000000001] * 0.1 + labor_2"},
		{name: "bracketed name", formula: "= [ slab ] / 2", want: "= [7c1e5b0a-0000-4000-8000-000000000001] / 2"},
		{name: "unknown names untouched", formula: "other + 1", want: "other + 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenameReferences(tt.formula, rename)
			if err != nil {
				t.Fatalf("RenameReferences failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("RenameReferences(%q) = %q, want %q", tt.formula, got, tt.want)
			}
		})
	}

	if _, err := RenameReferences("slab +", rename); err != nil {
		t.Errorf("incomplete formula should still lex: %v", err)
	}
	if _, err := RenameReferences("slab # 2", rename); err == nil {
		t.Error("expected lex error for unknown character")
	}
}

func TestDivisionScale(t *testing.T) {
	lookup := lookupFrom(map[string]string{"A": "10", "D": "3"})

	tests := []struct {
		formula string
		want    string
	}{
		{"A / D", "3.3333333333333333"},
		{"A / D * D", "9.9999999999999999"},
		{"A * D / D", "10"},
		{"2 / D", "0.6666666666666667"},
	}
	for _, tt := range tests {
		t.Run(tt.formula, func(t *testing.T) {
			node, err := Parse(tt.formula, nil)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.formula, err)
			}
			got, err := Eval(node, lookup)
			if err != nil {
				t.Fatalf("Eval(%q) error = %v", tt.formula, err)
			}
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("Eval(%q) = %s, want %s", tt.formula, got, tt.want)
			}
		})
	}
}

func TestPinReferences(t *testing.T) {
	resolve := func(name string) []string {
		switch name {
		case "c1":
			return []string{"c1"}
		case "Concrete":
			return []string{"c1", "c2"}
		case "Rebar":
			return []string{"r1"}
		}
		return nil
	}

	tests := []struct {
		name    string
		formula string
		want    string
	}{
		{name: "description among candidates", formula: "[Concrete] * 0.1", want: "c1 * 0.1"},
		{name: "id already pinned", formula: "c1 + Rebar", want: "c1 + Rebar"},
		{name: "other references untouched", formula: "Rebar / 2", want: "Rebar / 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PinReferences(tt.formula, resolve, "c1")
			if err != nil {
				t.Fatalf("PinReferences failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("PinReferences(%q) = %q, want %q", tt.formula, got, tt.want)
			}
		})
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&SyntaxError{Msg: "x"}, "syntax"},
		{&AmbiguousReferenceError{Name: "x"}, "ambiguous_reference"},
		{&UnresolvedReferenceError{Ref: "x"}, "unresolved_reference"},
		{&CyclicFormulaError{Cycle: []string{"a"}}, "cyclic"},
		{&DivisionByZeroError{}, "division_by_zero"},
		{errors.New("x"), "other"},
	}
	for _, tt := range tests {
		if got := Kind(tt.err); got != tt.want {
			t.Errorf("Kind(%T) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
