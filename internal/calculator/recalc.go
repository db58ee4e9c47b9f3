package calculator

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/estimator/internal/formula"
	"github.com/mmynk/estimator/internal/graph"
	"github.com/mmynk/estimator/internal/items"
	"github.com/mmynk/estimator/internal/models"
)

// Result describes one recalculation pass.
type Result struct {
	// Errors maps item IDs to the formula error that kept their total frozen.
	Errors map[string]error

	// Plan is the dependency plan the pass walked.
	Plan *graph.Plan

	// Changed lists the items whose total changed, in evaluation order.
	Changed []string
}

// NewResolver maps formula reference names to item IDs. An exact ID match is
// authoritative; otherwise the name is compared to item descriptions,
// ignoring case and surrounding space.
//
// Retired IDs belong to deleted items. A name equal to one resolves to it and
// never falls through to a description, so the reference fails instead of
// binding to some other item.
func NewResolver(all []models.LineItem, retired ...string) formula.Resolver {
	ids := make(map[string]struct{}, len(all)+len(retired))
	for _, id := range retired {
		ids[id] = struct{}{}
	}
	byDescription := make(map[string][]string)
	for _, item := range all {
		ids[item.ID] = struct{}{}
		key := descriptionKey(item.Description)
		if key != "" {
			byDescription[key] = append(byDescription[key], item.ID)
		}
	}

	return func(name string) []string {
		if _, ok := ids[name]; ok {
			return []string{name}
		}
		return byDescription[descriptionKey(name)]
	}
}

func descriptionKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Recalculate brings every TotalPrice in the store up to date.
//
// Items without a formula get Quantity * UnitPrice. Formula items are
// evaluated in dependency order, each reference reading the total computed
// earlier in the same pass. A formula that fails to parse, sits on a cycle,
// or fails to evaluate keeps its previous total and is reported in
// Result.Errors; the rest of the estimate is still recomputed. References to
// retired IDs fail as unresolved.
func Recalculate(store *items.Store, retired ...string) *Result {
	all := store.All()
	result := &Result{Errors: make(map[string]error)}
	totals := make(map[string]decimal.Decimal, len(all))

	setTotal := func(item models.LineItem, total decimal.Decimal) {
		totals[item.ID] = total
		if item.TotalPrice.Equal(total) {
			return
		}
		item.TotalPrice = total
		store.Upsert(item)
		result.Changed = append(result.Changed, item.ID)
	}

	resolve := NewResolver(all, retired...)
	trees := make(map[string]formula.Node)
	for _, item := range all {
		if !item.HasFormula() {
			setTotal(item, item.PlainTotal())
			continue
		}
		totals[item.ID] = item.TotalPrice

		tree, err := formula.Parse(item.Formula, resolve)
		if err != nil {
			result.Errors[item.ID] = err
			continue
		}
		trees[item.ID] = tree
	}

	result.Plan = graph.Resolve(all, trees)
	for _, cycle := range result.Plan.Cycles {
		for _, id := range cycle {
			result.Errors[id] = &formula.CyclicFormulaError{Cycle: cycle}
		}
	}

	lookup := func(id string) (decimal.Decimal, error) {
		if _, failed := result.Errors[id]; failed {
			return decimal.Zero, &formula.UnresolvedReferenceError{Ref: id, Reason: "referenced item has a formula error"}
		}
		total, ok := totals[id]
		if !ok {
			return decimal.Zero, &formula.UnresolvedReferenceError{Ref: id, Reason: "no such item"}
		}
		return total, nil
	}

	for _, id := range result.Plan.Order {
		total, err := formula.Eval(trees[id], lookup)
		if err != nil {
			result.Errors[id] = err
			continue
		}
		item, err := store.Get(id)
		if err != nil {
			continue
		}
		setTotal(item, total)
	}

	return result
}
