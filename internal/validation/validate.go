// Package validation scans an estimate for data-quality and formula problems.
package validation

import (
	"strings"

	"github.com/mmynk/estimator/internal/models"
)

const (
	MsgInvalidQuantity     = "Missing or invalid quantity"
	MsgInvalidUnitPrice    = "Missing or invalid unit price"
	MsgDescriptionRequired = "Description is required"
	msgFormulaPrefix       = "Formula error: "
)

// Validate returns every violation of the given items. Each rule is applied to
// every item independently. The result is grouped by rule (quantity, unit
// price, description, formula) and follows item order within a rule, so
// identical input always yields an identical list.
//
// formulaErrs holds the errors recorded by the last recalculation pass.
func Validate(all []models.LineItem, formulaErrs map[string]error) []models.Violation {
	var quantity, unitPrice, description, formula []models.Violation

	for _, item := range all {
		if !item.Quantity.IsPositive() {
			quantity = append(quantity, violation(item.ID, models.RuleQuantity, MsgInvalidQuantity))
		}
		if !item.UnitPrice.IsPositive() {
			unitPrice = append(unitPrice, violation(item.ID, models.RuleUnitPrice, MsgInvalidUnitPrice))
		}
		if strings.TrimSpace(item.Description) == "" {
			description = append(description, violation(item.ID, models.RuleDescription, MsgDescriptionRequired))
		}
		if err, failed := formulaErrs[item.ID]; failed && item.HasFormula() {
			formula = append(formula, violation(item.ID, models.RuleFormula, msgFormulaPrefix+err.Error()))
		}
	}

	out := make([]models.Violation, 0, len(quantity)+len(unitPrice)+len(description)+len(formula))
	out = append(out, quantity...)
	out = append(out, unitPrice...)
	out = append(out, description...)
	out = append(out, formula...)
	return out
}

func violation(itemID string, rule models.Rule, msg string) models.Violation {
	return models.Violation{ItemID: itemID, Rule: rule, Message: msg}
}

// ForItem filters violations down to one item, keeping their order.
func ForItem(violations []models.Violation, itemID string) []models.Violation {
	var out []models.Violation
	for _, v := range violations {
		if v.ItemID == itemID {
			out = append(out, v)
		}
	}
	return out
}
