package service

import (
	"errors"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/estimator/internal/calculator"
	"github.com/mmynk/estimator/internal/estimate"
	"github.com/mmynk/estimator/internal/models"
	"github.com/mmynk/estimator/internal/storage"
	"github.com/mmynk/estimator/internal/templates"
	"github.com/mmynk/estimator/pkg/api"
)

// toConnectError maps domain errors to Connect codes.
func toConnectError(err error) error {
	var rejected *models.EditRejected
	switch {
	case errors.As(err, &rejected),
		errors.Is(err, estimate.ErrInvalidTemplate),
		errors.Is(err, estimate.ErrDuplicateKey),
		errors.Is(err, templates.ErrInvalidTemplate):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, storage.ErrNotFound),
		errors.Is(err, estimate.ErrUnknownItem),
		errors.Is(err, templates.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}

func estimateToAPI(est *models.Estimate) *api.Estimate {
	return &api.Estimate{
		ID:        est.ID,
		Name:      est.Name,
		CreatedAt: est.CreatedAt,
		UpdatedAt: est.UpdatedAt,
	}
}

func itemToAPI(sheet *estimate.Sheet, item models.LineItem) *api.LineItem {
	out := &api.LineItem{
		ID:          item.ID,
		EstimateID:  item.EstimateID,
		Description: item.Description,
		Quantity:    item.Quantity,
		Unit:        item.Unit,
		UnitPrice:   item.UnitPrice,
		Category:    string(item.Category),
		Formula:     item.Formula,
		TotalPrice:  item.TotalPrice,
		VendorName:  item.VendorName,
	}
	if err := sheet.FormulaError(item.ID); err != nil {
		out.FormulaError = err.Error()
	}
	return out
}

func itemsToAPI(sheet *estimate.Sheet, all []models.LineItem) []*api.LineItem {
	out := make([]*api.LineItem, len(all))
	for i, item := range all {
		out[i] = itemToAPI(sheet, item)
	}
	return out
}

func violationsToAPI(violations []models.Violation) []*api.Violation {
	out := make([]*api.Violation, len(violations))
	for i, v := range violations {
		out[i] = &api.Violation{ItemID: v.ItemID, Rule: v.Rule.String(), Message: v.Message}
	}
	return out
}

func summaryToAPI(s calculator.Summary) *api.GetSummaryResponse {
	out := &api.GetSummaryResponse{GrandTotal: s.GrandTotal, Flagged: s.Flagged}
	for _, c := range s.Categories {
		out.Categories = append(out.Categories, &api.CategoryTotal{
			Category: string(c.Category),
			Total:    c.Total,
			Items:    c.Items,
		})
	}
	return out
}

// templateLinesFromAPI converts explicit request lines. Categories are
// checked later by the sheet.
func templateLinesFromAPI(lines []*api.TemplateLine) []models.TemplateLine {
	out := make([]models.TemplateLine, 0, len(lines))
	for _, l := range lines {
		if l == nil {
			continue
		}
		line := models.TemplateLine{
			Key:         l.Key,
			Description: l.Description,
			Quantity:    decimal.NewFromInt(1),
			Unit:        l.Unit,
			UnitPrice:   decimal.Zero,
			Category:    models.Category(l.Category),
			Formula:     l.Formula,
			VendorName:  l.VendorName,
		}
		if l.Quantity != nil {
			line.Quantity = *l.Quantity
		}
		if l.UnitPrice != nil {
			line.UnitPrice = *l.UnitPrice
		}
		if c, err := models.ParseCategory(l.Category); err == nil {
			line.Category = c
		}
		out = append(out, line)
	}
	return out
}
