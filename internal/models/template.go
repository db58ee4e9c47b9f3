package models

import "github.com/shopspring/decimal"

// TemplateLine is a line item blueprint used for bulk insertion.
type TemplateLine struct {
	// Key optionally names the line inside its template. Formulas of other
	// lines in the same template may reference it; on insertion the reference
	// is rewritten to the generated item ID.
	Key string

	Description string
	Quantity    decimal.Decimal
	Unit        string
	UnitPrice   decimal.Decimal

	// Category defaults to material when empty.
	Category Category

	Formula    string
	VendorName string
}
