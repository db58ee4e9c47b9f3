package formula

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Op is a binary arithmetic operator.
type Op byte

const (
	OpAdd Op = '+'
	OpSub Op = '-'
	OpMul Op = '*'
	OpDiv Op = '/'
)

func (op Op) String() string {
	return string(op)
}

// Node is an expression tree node: *Literal, *Reference or *BinaryOp.
type Node interface {
	// Position is the rune offset in the source the node was parsed from.
	Position() int
	String() string
}

// Literal is a decimal constant.
type Literal struct {
	Value decimal.Decimal
	Pos   int
}

// Reference is the computed total of another line item.
type Reference struct {
	// ItemID is the resolved item ID. When the name did not resolve to any
	// item it holds the name as written.
	ItemID string

	// Name is the reference as written in the formula.
	Name string

	Pos int
}

// BinaryOp applies Op to the values of Left and Right.
type BinaryOp struct {
	Op    Op
	Left  Node
	Right Node
	Pos   int
}

func (n *Literal) Position() int   { return n.Pos }
func (n *Reference) Position() int { return n.Pos }
func (n *BinaryOp) Position() int  { return n.Pos }

func (n *Literal) String() string {
	return n.Value.String()
}

func (n *Reference) String() string {
	return FormatReference(n.ItemID)
}

func (n *BinaryOp) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left, n.Op, n.Right)
}

// References returns the distinct item IDs referenced by n, in order of first appearance.
func References(n Node) []string {
	var ids []string
	seen := make(map[string]struct{})

	var walk func(Node)
	walk = func(n Node) {
		switch node := n.(type) {
		case *Reference:
			if _, ok := seen[node.ItemID]; !ok {
				seen[node.ItemID] = struct{}{}
				ids = append(ids, node.ItemID)
			}
		case *BinaryOp:
			walk(node.Left)
			walk(node.Right)
		}
	}
	walk(n)
	return ids
}
