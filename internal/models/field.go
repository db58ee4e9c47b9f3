package models

import "fmt"

// Field names one column of a line item.
type Field int

const (
	FieldDescription Field = iota
	FieldQuantity
	FieldUnit
	FieldUnitPrice
	FieldCategory
	FieldFormula
	FieldTotalPrice
	FieldVendorName
)

var fieldNames = map[Field]string{
	FieldDescription: "description",
	FieldQuantity:    "quantity",
	FieldUnit:        "unit",
	FieldUnitPrice:   "unitPrice",
	FieldCategory:    "category",
	FieldFormula:     "formula",
	FieldTotalPrice:  "totalPrice",
	FieldVendorName:  "vendorName",
}

// Columns lists every field in column order.
var Columns = []Field{
	FieldDescription,
	FieldQuantity,
	FieldUnit,
	FieldUnitPrice,
	FieldCategory,
	FieldFormula,
	FieldTotalPrice,
	FieldVendorName,
}

func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// ParseField looks a field up by its column name.
func ParseField(name string) (Field, error) {
	for f, n := range fieldNames {
		if n == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown field %q", name)
}

// Editable reports whether the field can be changed through a cell edit.
// TotalPrice is always derived.
func (f Field) Editable() bool {
	_, known := fieldNames[f]
	return known && f != FieldTotalPrice
}

// Numeric reports whether raw input for the field must parse as a number.
func (f Field) Numeric() bool {
	return f == FieldQuantity || f == FieldUnitPrice
}

// EditableColumns returns the editable fields in column order.
func EditableColumns() []Field {
	cols := make([]Field, 0, len(Columns))
	for _, f := range Columns {
		if f.Editable() {
			cols = append(cols, f)
		}
	}
	return cols
}
