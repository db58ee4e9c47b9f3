// Package estimate ties the line-item store, the recalculation engine and
// the validation engine together into one consistently settled estimate.
package estimate

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/estimator/internal/calculator"
	"github.com/mmynk/estimator/internal/formula"
	"github.com/mmynk/estimator/internal/items"
	"github.com/mmynk/estimator/internal/metrics"
	"github.com/mmynk/estimator/internal/models"
	"github.com/mmynk/estimator/internal/validation"
)

var (
	ErrUnknownItem     = errors.New("unknown line item")
	ErrDuplicateKey    = errors.New("duplicate template key")
	ErrInvalidTemplate = errors.New("invalid template line")
)

const (
	MsgInvalidNumber    = "enter a valid number"
	MsgFieldNotEditable = "field is not editable"
	MsgInvalidCategory  = "choose one of material, labor, equipment, subcontractor, overhead"

	defaultUnit = "ea"
)

// IDSource produces new unique item IDs.
type IDSource func() string

// Option configures a Sheet.
type Option func(*Sheet)

// WithIDSource replaces the default UUID generator.
func WithIDSource(next IDSource) Option {
	return func(s *Sheet) { s.newID = next }
}

// WithMetrics records passes and edits on c.
func WithMetrics(c *metrics.Collectors) Option {
	return func(s *Sheet) { s.metrics = c }
}

// Sheet is one estimate's line items together with the totals and violations
// of the last settled pass. Every mutation is followed by exactly one full
// recalculation and validation pass before it returns.
//
// A Sheet is not safe for concurrent use. Registry serializes access.
type Sheet struct {
	estimateID string
	store      *items.Store
	newID      IDSource
	metrics    *metrics.Collectors

	// retired holds the IDs of items deleted from this sheet
	retired []string

	last       *calculator.Result
	violations []models.Violation
}

// New creates a sheet over seed and settles it.
func New(estimateID string, seed []models.LineItem, opts ...Option) *Sheet {
	s := &Sheet{
		estimateID: estimateID,
		store:      items.NewStore(seed...),
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.settle("load")
	return s
}

// EstimateID returns the owning estimate.
func (s *Sheet) EstimateID() string {
	return s.estimateID
}

// Items returns every line item in display order.
func (s *Sheet) Items() []models.LineItem {
	return s.store.All()
}

// Item returns one line item.
func (s *Sheet) Item(id string) (models.LineItem, error) {
	item, err := s.store.Get(id)
	if err != nil {
		return models.LineItem{}, fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}
	return item, nil
}

// Violations returns the violations of the last pass.
func (s *Sheet) Violations() []models.Violation {
	out := make([]models.Violation, len(s.violations))
	copy(out, s.violations)
	return out
}

// FormulaError returns the error that froze the item's total in the last pass.
func (s *Sheet) FormulaError(id string) error {
	return s.last.Errors[id]
}

// Summary aggregates the current totals.
func (s *Sheet) Summary() calculator.Summary {
	return calculator.Summarize(s.store.All(), s.last.Errors)
}

// AddItem appends a new item with default values.
func (s *Sheet) AddItem() models.LineItem {
	item := models.NewLineItem(s.newID(), s.estimateID)
	s.store.Upsert(item)
	s.settle("add")
	return s.mustGet(item.ID)
}

// CommitFieldEdit parses raw for field and writes it to the item. Input that
// does not fit the field is rejected with *models.EditRejected and leaves the
// sheet untouched. A formula that fails is accepted and shows up as a violation.
func (s *Sheet) CommitFieldEdit(itemID string, field models.Field, raw string) (models.LineItem, error) {
	item, err := s.Item(itemID)
	if err != nil {
		return models.LineItem{}, err
	}

	updated, err := applyField(item, field, raw)
	if err != nil {
		s.metrics.ObserveEdit(metrics.EditRejected)
		slog.Info("Edit rejected",
			"estimate_id", s.estimateID,
			"item_id", itemID,
			"field", field.String(),
			"error", err,
		)
		return models.LineItem{}, err
	}

	s.store.Upsert(updated)
	s.metrics.ObserveEdit(metrics.EditCommitted)
	s.settle("commit")
	return s.mustGet(itemID), nil
}

// DuplicateItem appends a copy of the item under a new ID.
func (s *Sheet) DuplicateItem(itemID string) (models.LineItem, error) {
	item, err := s.Item(itemID)
	if err != nil {
		return models.LineItem{}, err
	}
	item.ID = s.newID()
	s.store.Upsert(item)
	s.settle("duplicate")
	return s.mustGet(item.ID), nil
}

// DeleteItem removes the item. Formulas that referenced it are flagged on the
// following pass and keep their last total. References that reached the item
// through its description are rewritten to its ID first, so they cannot bind
// to another item that shares the description.
func (s *Sheet) DeleteItem(itemID string) error {
	if !s.store.Has(itemID) {
		return fmt.Errorf("%w: %s", ErrUnknownItem, itemID)
	}
	dependents := s.last.Plan.Dependents(itemID)
	s.pinReferences(itemID)
	if err := s.store.Remove(itemID); err != nil {
		return fmt.Errorf("failed to remove item: %w", err)
	}
	s.retired = append(s.retired, itemID)
	if len(dependents) > 0 {
		slog.Info("Deleted item had dependents",
			"estimate_id", s.estimateID,
			"item_id", itemID,
			"dependents", dependents,
		)
	}
	s.settle("delete")
	return nil
}

// ApplyTemplate inserts lines as one mutation followed by one pass. Keys
// referenced by formulas inside the template are rewritten to the new IDs.
// A malformed template inserts nothing.
func (s *Sheet) ApplyTemplate(lines []models.TemplateLine) ([]models.LineItem, error) {
	created := make([]models.LineItem, 0, len(lines))
	rename := make(map[string]string)
	for i, line := range lines {
		category := line.Category
		if category == "" {
			category = models.CategoryMaterial
		}
		if !category.Valid() {
			return nil, fmt.Errorf("%w %d: unknown category %q", ErrInvalidTemplate, i+1, line.Category)
		}
		unit := line.Unit
		if unit == "" {
			unit = defaultUnit
		}

		item := models.NewLineItem(s.newID(), s.estimateID)
		item.Description = line.Description
		item.Quantity = line.Quantity
		item.Unit = unit
		item.UnitPrice = line.UnitPrice
		item.Category = category
		item.Formula = strings.TrimSpace(line.Formula)
		item.VendorName = line.VendorName

		if line.Key != "" {
			if _, dup := rename[line.Key]; dup {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, line.Key)
			}
			rename[line.Key] = item.ID
		}
		created = append(created, item)
	}

	for i := range created {
		if !created[i].HasFormula() || len(rename) == 0 {
			continue
		}
		rewritten, err := formula.RenameReferences(created[i].Formula, rename)
		if err != nil {
			// left as typed; the pass reports the syntax error
			continue
		}
		created[i].Formula = rewritten
	}

	for _, item := range created {
		s.store.Upsert(item)
	}
	s.settle("template")

	out := make([]models.LineItem, len(created))
	for i, item := range created {
		out[i] = s.mustGet(item.ID)
	}
	return out, nil
}

func (s *Sheet) mustGet(id string) models.LineItem {
	item, _ := s.store.Get(id)
	return item
}

// settle runs one full recalculation and validation pass.
// pinReferences rewrites every formula reference that may denote itemID,
// including ambiguous ones, to name itemID directly.
func (s *Sheet) pinReferences(itemID string) {
	resolve := calculator.NewResolver(s.store.All(), s.retired...)
	for _, item := range s.store.All() {
		if !item.HasFormula() || item.ID == itemID {
			continue
		}
		pinned, err := formula.PinReferences(item.Formula, resolve, itemID)
		if err != nil || pinned == item.Formula {
			continue
		}
		item.Formula = pinned
		s.store.Upsert(item)
	}
}

func (s *Sheet) settle(reason string) {
	start := time.Now()
	s.last = calculator.Recalculate(s.store, s.retired...)
	s.violations = validation.Validate(s.store.All(), s.last.Errors)
	elapsed := time.Since(start)

	s.metrics.ObservePass(elapsed, s.last.Errors)
	slog.Debug("Estimate settled",
		"estimate_id", s.estimateID,
		"reason", reason,
		"items", s.store.Len(),
		"changed", len(s.last.Changed),
		"violations", len(s.violations),
		"formula_errors", len(s.last.Errors),
		"duration_ms", elapsed.Milliseconds(),
	)
}

// applyField returns item with field set from raw input.
func applyField(item models.LineItem, field models.Field, raw string) (models.LineItem, error) {
	reject := func(reason string) (models.LineItem, error) {
		return models.LineItem{}, &models.EditRejected{ItemID: item.ID, Field: field, Value: raw, Reason: reason}
	}

	if !field.Editable() {
		return reject(MsgFieldNotEditable)
	}

	switch field {
	case models.FieldQuantity, models.FieldUnitPrice:
		n, err := ParseNumber(raw)
		if err != nil {
			return reject(MsgInvalidNumber)
		}
		if field == models.FieldQuantity {
			item.Quantity = n
		} else {
			item.UnitPrice = n
		}
	case models.FieldCategory:
		c, err := models.ParseCategory(raw)
		if err != nil {
			return reject(MsgInvalidCategory)
		}
		item.Category = c
	case models.FieldDescription:
		item.Description = raw
	case models.FieldUnit:
		item.Unit = strings.TrimSpace(raw)
	case models.FieldFormula:
		item.Formula = strings.TrimSpace(raw)
	case models.FieldVendorName:
		item.VendorName = raw
	}
	return item, nil
}

// ParseNumber parses numeric cell input. Surrounding space, a leading "$"
// and "," group separators are accepted.
func ParseNumber(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, errors.New("empty number")
	}
	n, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse number %q: %w", raw, err)
	}
	return n, nil
}
