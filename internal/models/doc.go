// Package models defines the core domain models for the estimator.
//
// # Models
//
//   - Estimate: a named cost estimate owning an ordered set of line items
//   - LineItem: one row of an estimate (quantity, unit price, optional formula)
//   - Field: the editable columns of a line item, in column order
//   - Violation: one data-quality or formula problem attached to a line item
//   - EditRejected: malformed raw input for a typed field
//
// # Design Principles
//
// 1. **Plain values**: models are copied in and out of the line-item store;
// nothing holds a pointer into another item.
// 2. **Reference by ID**: formulas and violations refer to items by their ID string.
// 3. **Decimal money**: quantities and prices use decimal.Decimal so that
// chained formulas do not accumulate binary floating point error.
package models
