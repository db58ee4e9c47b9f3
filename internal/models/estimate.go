package models

// Estimate is a named collection of line items.
type Estimate struct {
	// ID is the unique identifier for the estimate (UUID format).
	ID string

	// Name is the display name (e.g., "Lot 14 - Foundation").
	Name string

	// CreatedAt is the Unix timestamp when the estimate was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last persisted settle pass.
	UpdatedAt int64
}
