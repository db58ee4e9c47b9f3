package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/estimator/internal/models"
)

// CategoryTotal is the subtotal of one cost category.
type CategoryTotal struct {
	Category models.Category
	Total    decimal.Decimal
	Items    int
}

// Summary aggregates the totals of an estimate.
type Summary struct {
	// Categories holds one entry per known category, in models.Categories order.
	Categories []CategoryTotal

	// GrandTotal is the sum of every item total.
	GrandTotal decimal.Decimal

	// Flagged counts items whose total is frozen by a formula error.
	Flagged int
}

// Summarize sums item totals per category. Items carrying a formula error
// contribute their last good total and are counted in Flagged.
func Summarize(all []models.LineItem, errs map[string]error) Summary {
	summary := Summary{GrandTotal: decimal.Zero}
	index := make(map[models.Category]int, len(models.Categories))
	for i, c := range models.Categories {
		index[c] = i
		summary.Categories = append(summary.Categories, CategoryTotal{Category: c, Total: decimal.Zero})
	}

	for _, item := range all {
		summary.GrandTotal = summary.GrandTotal.Add(item.TotalPrice)
		if _, flagged := errs[item.ID]; flagged {
			summary.Flagged++
		}
		if i, ok := index[item.Category]; ok {
			summary.Categories[i].Total = summary.Categories[i].Total.Add(item.TotalPrice)
			summary.Categories[i].Items++
		}
	}
	return summary
}
