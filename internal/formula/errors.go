package formula

import (
	"errors"
	"fmt"
	"strings"
)

// SyntaxError reports a malformed formula, naming the offending token.
type SyntaxError struct {
	Token string
	Pos   int
	Msg   string
}

func (e *SyntaxError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("syntax error at position %d: %s", e.Pos+1, e.Msg)
	}
	return fmt.Sprintf("syntax error at position %d: %s %q", e.Pos+1, e.Msg, e.Token)
}

// AmbiguousReferenceError reports a reference that matches more than one item.
type AmbiguousReferenceError struct {
	Name       string
	Pos        int
	Candidates []string
}

func (e *AmbiguousReferenceError) Error() string {
	return fmt.Sprintf("ambiguous reference %q matches %d items", e.Name, len(e.Candidates))
}

// UnresolvedReferenceError reports a reference whose value is unavailable:
// the item does not exist, or its own total could not be computed.
type UnresolvedReferenceError struct {
	Ref    string
	Reason string
}

func (e *UnresolvedReferenceError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("unresolved reference %q", e.Ref)
	}
	return fmt.Sprintf("unresolved reference %q: %s", e.Ref, e.Reason)
}

// CyclicFormulaError marks an item that belongs to a reference cycle.
type CyclicFormulaError struct {
	// Cycle lists the items of the cycle in store order.
	Cycle []string
}

func (e *CyclicFormulaError) Error() string {
	return "cyclic reference among " + strings.Join(e.Cycle, ", ")
}

// DivisionByZeroError reports a division whose divisor is zero. Literal is set
// when the divisor was a literal zero caught at parse time.
type DivisionByZeroError struct {
	Pos     int
	Literal bool
}

func (e *DivisionByZeroError) Error() string {
	return "division by zero"
}

// Kind classifies a formula error for metrics and logs.
func Kind(err error) string {
	var (
		syntax     *SyntaxError
		ambiguous  *AmbiguousReferenceError
		unresolved *UnresolvedReferenceError
		cyclic     *CyclicFormulaError
		divByZero  *DivisionByZeroError
	)
	switch {
	case errors.As(err, &syntax):
		return "syntax"
	case errors.As(err, &ambiguous):
		return "ambiguous_reference"
	case errors.As(err, &unresolved):
		return "unresolved_reference"
	case errors.As(err, &cyclic):
		return "cyclic"
	case errors.As(err, &divByZero):
		return "division_by_zero"
	}
	return "other"
}
