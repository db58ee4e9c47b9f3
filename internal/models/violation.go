package models

// Rule identifies a validation rule. Violations are grouped by rule in this order.
type Rule int

const (
	RuleQuantity Rule = iota
	RuleUnitPrice
	RuleDescription
	RuleFormula
)

func (r Rule) String() string {
	switch r {
	case RuleQuantity:
		return "quantity"
	case RuleUnitPrice:
		return "unit_price"
	case RuleDescription:
		return "description"
	case RuleFormula:
		return "formula"
	}
	return "unknown"
}

// Violation is one problem attached to a line item. Violations are not
// persisted; they are recomputed on every validation pass.
type Violation struct {
	ItemID  string
	Rule    Rule
	Message string
}
