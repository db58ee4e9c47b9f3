package models

import "fmt"

// EditRejected reports raw cell input that does not fit the field's type.
// A rejected edit never reaches the store.
type EditRejected struct {
	ItemID string
	Field  Field
	Value  string

	// Reason is the message shown next to the cell (e.g., "enter a valid number").
	Reason string
}

func (e *EditRejected) Error() string {
	return fmt.Sprintf("edit rejected for %s.%s (%q): %s", e.ItemID, e.Field, e.Value, e.Reason)
}
