package formula

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseTree(t *testing.T) {
	tests := []struct {
		name    string
		formula string
		want    string
	}{
		{name: "literal", formula: "42", want: "42"},
		{name: "decimal literal", formula: "0.125", want: "0.125"},
		{name: "leading period", formula: ".5", want: "0.5"},
		{name: "reference", formula: "B", want: "B"},
		{name: "leading equals", formula: "= B + 10", want: "(B + 10)"},
		{name: "precedence", formula: "1 + 2 * B", want: "(1 + (2 * B))"},
		{name: "left associative subtraction", formula: "10 - 4 - 3", want: "((10 - 4) - 3)"},
		{name: "left associative division", formula: "A / B / C", want: "((A / B) / C)"},
		{name: "parentheses", formula: "(1 + 2) * B", want: "((1 + 2) * B)"},
		{name: "negative literal", formula: "-5 + B", want: "(-5 + B)"},
		{name: "negated reference", formula: "-B", want: "(0 - B)"},
		{name: "unary plus", formula: "+B * 2", want: "(B * 2)"},
		{name: "bracketed id", formula: "[3f0c-77] * 1.15", want: "([3f0c-77] * 1.15)"},
		{name: "dotted identifier", formula: "site.prep + 1", want: "(site.prep + 1)"},
		{name: "whitespace is insignificant", formula: "  A*B+C ", want: "((A * B) + C)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := Parse(tt.formula, nil)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.formula, err)
			}
			if got := node.String(); got != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.formula, got, tt.want)
			}
		})
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		name      string
		formula   string
		wantToken string
		wantPos   int
	}{
		{name: "empty", formula: "", wantToken: "", wantPos: 0},
		{name: "only equals", formula: "=", wantToken: "", wantPos: 0},
		{name: "dangling operator", formula: "B +", wantToken: "", wantPos: 3},
		{name: "double operator", formula: "B * * 2", wantToken: "*", wantPos: 4},
		{name: "unknown character", formula: "B % 2", wantToken: "%", wantPos: 2},
		{name: "missing close paren", formula: "(B + 1", wantToken: "", wantPos: 6},
		{name: "extra close paren", formula: "B + 1)", wantToken: ")", wantPos: 5},
		{name: "adjacent operands", formula: "B C", wantToken: "C", wantPos: 2},
		{name: "unterminated bracket", formula: "[abc + 1", wantToken: "[", wantPos: 0},
		{name: "empty bracket", formula: "[ ] + 1", wantToken: "[]", wantPos: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.formula, nil)
			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("Parse(%q) error = %v, want *SyntaxError", tt.formula, err)
			}
			if syntaxErr.Token != tt.wantToken {
				t.Errorf("token = %q, want %q", syntaxErr.Token, tt.wantToken)
			}
			if syntaxErr.Pos != tt.wantPos {
				t.Errorf("pos = %d, want %d", syntaxErr.Pos, tt.wantPos)
			}
		})
	}
}

func TestParseDivisionByLiteralZero(t *testing.T) {
	for _, formula := range []string{"B / 0", "B / (0)", "B / 0.00", "B / -0"} {
		_, err := Parse(formula, nil)
		var divErr *DivisionByZeroError
		if !errors.As(err, &divErr) {
			t.Errorf("Parse(%q) error = %v, want *DivisionByZeroError", formula, err)
			continue
		}
		if !divErr.Literal {
			t.Errorf("Parse(%q): expected Literal to be set", formula)
		}
	}

	// an evaluated zero is not a parse error
	if _, err := Parse("B / (1 - 1)", nil); err != nil {
		t.Errorf("Parse(B / (1 - 1)) error = %v, want nil", err)
	}
}

func TestParseResolver(t *testing.T) {
	resolve := func(name string) []string {
		switch name {
		case "Concrete":
			return []string{"item-1"}
		case "Labor":
			return []string{"item-2", "item-3"}
		}
		return nil
	}

	t.Run("single match resolves to id", func(t *testing.T) {
		node, err := Parse("[Concrete] * 2", resolve)
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if got := References(node); len(got) != 1 || got[0] != "item-1" {
			t.Errorf("References = %v, want [item-1]", got)
		}
	})

	t.Run("no match keeps name", func(t *testing.T) {
		node, err := Parse("Missing + 1", resolve)
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if got := References(node); len(got) != 1 || got[0] != "Missing" {
			t.Errorf("References = %v, want [Missing]", got)
		}
	})

	t.Run("several matches are ambiguous", func(t *testing.T) {
		_, err := Parse("Concrete + Labor", resolve)
		var ambErr *AmbiguousReferenceError
		if !errors.As(err, &ambErr) {
			t.Fatalf("error = %v, want *AmbiguousReferenceError", err)
		}
		if ambErr.Name != "Labor" || ambErr.Pos != 11 || len(ambErr.Candidates) != 2 {
			t.Errorf("unexpected error detail: %+v", ambErr)
		}
	})
}

func TestReferencesDedupesInOrder(t *testing.T) {
	node, err := Parse("C + A * C - B / A", nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	got := References(node)
	want := []string{"C", "A", "B"}
	if len(got) != len(want) {
		t.Fatalf("References = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("References[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestFormatReference(t *testing.T) {
	tests := map[string]string{
		"B":                                    "B",
		"site.prep":                            "site.prep",
		"3f0c2d1e-9b7a-4c55-8f0e-2a1d7c9e4b10": "[3f0c2d1e-9b7a-4c55-8f0e-2a1d7c9e4b10]",
		"has space":                            "[has space]",
	}
	for id, want := range tests {
		if got := FormatReference(id); got != want {
			t.Errorf("FormatReference(%q) = %q, want %q", id, got, want)
		}
	}
}

func TestLiteralKeepsDecimalPrecision(t *testing.T) {
	node, err := Parse("0.1 + 0.2", nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	got, err := Eval(node, nil)
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if !got.Equal(decimal.RequireFromString("0.3")) {
		t.Errorf("0.1 + 0.2 = %s, want 0.3", got)
	}
}
