// Package formula parses and evaluates line-item formulas.
//
// A formula is an arithmetic expression over decimal literals and references
// to other line items, combined with + - * / and parentheses. Multiplication
// and division bind tighter than addition and subtraction; all operators are
// left-associative. An optional leading '=' is ignored.
//
// References are written either as bare identifiers (letters, digits, '_' and
// '.', not starting with a digit) or in brackets, which accept any text:
//
//	B + 10
//	[3f0c2d1e-9b7a-4c55-8f0e-2a1d7c9e4b10] * 1.15
//	[Concrete 4000 psi] / 2
//
// Arithmetic is decimal. Sums, differences and products are exact; each
// quotient is rounded half away from zero to DivisionScale decimal places.
//
// Parsing is pure. Reference names are mapped to item IDs by a Resolver
// supplied by the caller; evaluation reads referenced totals through a Lookup.
package formula
