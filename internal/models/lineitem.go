package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Category classifies a line item's cost.
type Category string

const (
	CategoryMaterial      Category = "material"
	CategoryLabor         Category = "labor"
	CategoryEquipment     Category = "equipment"
	CategorySubcontractor Category = "subcontractor"
	CategoryOverhead      Category = "overhead"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryMaterial,
	CategoryLabor,
	CategoryEquipment,
	CategorySubcontractor,
	CategoryOverhead,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory converts user input into a Category. Matching is case-insensitive.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// LineItem represents one row of an estimate.
type LineItem struct {
	// ID is the unique identifier for the item (UUID format unless supplied).
	// It is stable for the item's lifetime.
	ID string

	// EstimateID is the owning estimate. All items recomputed together share it.
	EstimateID string

	// Description is free text. An empty description is a validation
	// problem, not a structural one.
	Description string

	// Quantity is the number of units.
	Quantity decimal.Decimal

	// Unit is a free text unit label (e.g., "ea", "cy", "hr").
	Unit string

	// UnitPrice is the price of one unit.
	UnitPrice decimal.Decimal

	// Category is one of the closed set in Categories.
	Category Category

	// Formula is an optional expression. When present it is the authoritative
	// source of TotalPrice; otherwise TotalPrice = Quantity * UnitPrice.
	Formula string

	// TotalPrice is derived. It is never edited directly.
	TotalPrice decimal.Decimal

	// VendorName is optional and has no computational role.
	VendorName string
}

// NewLineItem returns an item with default field values.
func NewLineItem(id, estimateID string) LineItem {
	return LineItem{
		ID:         id,
		EstimateID: estimateID,
		Quantity:   decimal.NewFromInt(1),
		Unit:       "ea",
		UnitPrice:  decimal.Zero,
		Category:   CategoryMaterial,
	}
}

// HasFormula reports whether the item's total comes from its formula.
func (it LineItem) HasFormula() bool {
	return strings.TrimSpace(it.Formula) != ""
}

// PlainTotal is Quantity * UnitPrice.
func (it LineItem) PlainTotal() decimal.Decimal {
	return it.Quantity.Mul(it.UnitPrice)
}

// Value returns the current value of field f formatted as it is shown in an edit cell.
func (it LineItem) Value(f Field) string {
	switch f {
	case FieldDescription:
		return it.Description
	case FieldQuantity:
		return it.Quantity.String()
	case FieldUnit:
		return it.Unit
	case FieldUnitPrice:
		return it.UnitPrice.String()
	case FieldCategory:
		return string(it.Category)
	case FieldFormula:
		return it.Formula
	case FieldTotalPrice:
		return it.TotalPrice.String()
	case FieldVendorName:
		return it.VendorName
	}
	return ""
}
