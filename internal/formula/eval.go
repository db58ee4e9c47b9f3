package formula

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Lookup returns the current total of a referenced item.
type Lookup func(itemID string) (decimal.Decimal, error)

// DivisionScale is the number of decimal places a quotient is rounded to.
// Addition, subtraction and multiplication are exact.
const DivisionScale = 16

// Eval computes the value of n. Only quotients are rounded, to DivisionScale
// places, so A / 3 * 3 can differ from A in the last place.
func Eval(n Node, lookup Lookup) (decimal.Decimal, error) {
	switch node := n.(type) {
	case *Literal:
		return node.Value, nil

	case *Reference:
		if lookup == nil {
			return decimal.Zero, &UnresolvedReferenceError{Ref: node.Name}
		}
		return lookup(node.ItemID)

	case *BinaryOp:
		left, err := Eval(node.Left, lookup)
		if err != nil {
			return decimal.Zero, err
		}
		right, err := Eval(node.Right, lookup)
		if err != nil {
			return decimal.Zero, err
		}

		switch node.Op {
		case OpAdd:
			return left.Add(right), nil
		case OpSub:
			return left.Sub(right), nil
		case OpMul:
			return left.Mul(right), nil
		case OpDiv:
			if right.IsZero() {
				return decimal.Zero, &DivisionByZeroError{Pos: node.Pos}
			}
			return left.DivRound(right, DivisionScale), nil
		}
		return decimal.Zero, fmt.Errorf("unknown operator %q", node.Op)
	}
	return decimal.Zero, fmt.Errorf("unknown node type %T", n)
}
