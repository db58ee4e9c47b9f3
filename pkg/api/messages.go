// Package api defines the EstimateService wire messages and the Connect
// handler and client constructors for them. Messages travel as JSON; money
// and quantities are decimal strings ("145.10").
package api

import "github.com/shopspring/decimal"

type Estimate struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

type LineItem struct {
	ID          string          `json:"id"`
	EstimateID  string          `json:"estimateId"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Category    string          `json:"category"`
	Formula     string          `json:"formula,omitempty"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	VendorName  string          `json:"vendorName,omitempty"`

	// FormulaError is set when the item's total is frozen by a formula error.
	FormulaError string `json:"formulaError,omitempty"`
}

type Violation struct {
	ItemID  string `json:"itemId"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// TemplateLine is an explicit line for ApplyTemplate. Quantity defaults to 1
// and UnitPrice to 0 when omitted.
type TemplateLine struct {
	Key         string           `json:"key,omitempty"`
	Description string           `json:"description"`
	Quantity    *decimal.Decimal `json:"quantity,omitempty"`
	Unit        string           `json:"unit,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unitPrice,omitempty"`
	Category    string           `json:"category,omitempty"`
	Formula     string           `json:"formula,omitempty"`
	VendorName  string           `json:"vendorName,omitempty"`
}

type TemplateInfo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Lines       int    `json:"lines"`
}

type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Items    int             `json:"items"`
}

type CreateEstimateRequest struct {
	Name string `json:"name"`
}

type CreateEstimateResponse struct {
	Estimate *Estimate `json:"estimate"`
}

type ListEstimatesRequest struct{}

type ListEstimatesResponse struct {
	Estimates []*Estimate `json:"estimates"`
}

type DeleteEstimateRequest struct {
	EstimateID string `json:"estimateId"`
}

type DeleteEstimateResponse struct{}

type GetItemsRequest struct {
	EstimateID string `json:"estimateId"`
}

type GetItemsResponse struct {
	Items []*LineItem `json:"items"`
}

type AddItemRequest struct {
	EstimateID string `json:"estimateId"`
}

type AddItemResponse struct {
	Item       *LineItem    `json:"item"`
	Violations []*Violation `json:"violations"`
}

// CommitFieldEditRequest carries raw cell input. Field is a column name such
// as "quantity" or "unitPrice".
type CommitFieldEditRequest struct {
	EstimateID string `json:"estimateId"`
	ItemID     string `json:"itemId"`
	Field      string `json:"field"`
	Value      string `json:"value"`
}

type CommitFieldEditResponse struct {
	Item       *LineItem    `json:"item"`
	Violations []*Violation `json:"violations"`
}

type DuplicateItemRequest struct {
	EstimateID string `json:"estimateId"`
	ItemID     string `json:"itemId"`
}

type DuplicateItemResponse struct {
	Item       *LineItem    `json:"item"`
	Violations []*Violation `json:"violations"`
}

type DeleteItemRequest struct {
	EstimateID string `json:"estimateId"`
	ItemID     string `json:"itemId"`
}

type DeleteItemResponse struct {
	Violations []*Violation `json:"violations"`
}

type GetViolationsRequest struct {
	EstimateID string `json:"estimateId"`
}

type GetViolationsResponse struct {
	Violations []*Violation `json:"violations"`
}

// ApplyTemplateRequest inserts either the named template or the explicit lines.
type ApplyTemplateRequest struct {
	EstimateID string          `json:"estimateId"`
	Template   string          `json:"template,omitempty"`
	Lines      []*TemplateLine `json:"lines,omitempty"`
}

type ApplyTemplateResponse struct {
	Items      []*LineItem  `json:"items"`
	Violations []*Violation `json:"violations"`
}

type ListTemplatesRequest struct{}

type ListTemplatesResponse struct {
	Templates []*TemplateInfo `json:"templates"`
}

type GetSummaryRequest struct {
	EstimateID string `json:"estimateId"`
}

type GetSummaryResponse struct {
	Categories []*CategoryTotal `json:"categories"`
	GrandTotal decimal.Decimal  `json:"grandTotal"`
	Flagged    int              `json:"flagged"`
}
