package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/estimator/internal/estimate"
	"github.com/mmynk/estimator/internal/middleware"
	"github.com/mmynk/estimator/internal/models"
	"github.com/mmynk/estimator/internal/storage"
	"github.com/mmynk/estimator/internal/templates"
	"github.com/mmynk/estimator/pkg/api"
)

// Ensure EstimateService implements api.EstimateServiceHandler
var _ api.EstimateServiceHandler = (*EstimateService)(nil)

var (
	errMissingEstimateID = errors.New("estimate_id is required")
	errMissingItemID     = errors.New("item_id is required")
)

// EstimateService implements the Connect EstimateService.
type EstimateService struct {
	store   storage.Store
	sheets  *estimate.Registry
	catalog *templates.Catalog
}

// NewEstimateService creates a new EstimateService. sheets must persist
// through store; catalog may be nil when no templates are configured.
func NewEstimateService(store storage.Store, sheets *estimate.Registry, catalog *templates.Catalog) *EstimateService {
	if catalog == nil {
		catalog = templates.NewCatalog()
	}
	return &EstimateService{store: store, sheets: sheets, catalog: catalog}
}

// CreateEstimate creates an empty estimate.
func (s *EstimateService) CreateEstimate(ctx context.Context, req *connect.Request[api.CreateEstimateRequest]) (*connect.Response[api.CreateEstimateResponse], error) {
	est := &models.Estimate{Name: strings.TrimSpace(req.Msg.Name)}
	if err := s.store.CreateEstimate(ctx, est); err != nil {
		slog.Error("Failed to create estimate", "error", err)
		return nil, toConnectError(err)
	}
	slog.Info("Estimate created", "estimate_id", est.ID, "name", est.Name, "user_id", middleware.GetUserID(ctx))
	return connect.NewResponse(&api.CreateEstimateResponse{Estimate: estimateToAPI(est)}), nil
}

// ListEstimates returns every estimate, most recently updated first.
func (s *EstimateService) ListEstimates(ctx context.Context, req *connect.Request[api.ListEstimatesRequest]) (*connect.Response[api.ListEstimatesResponse], error) {
	list, err := s.store.ListEstimates(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	resp := &api.ListEstimatesResponse{Estimates: make([]*api.Estimate, len(list))}
	for i, est := range list {
		resp.Estimates[i] = estimateToAPI(est)
	}
	return connect.NewResponse(resp), nil
}

// DeleteEstimate removes an estimate and its items.
func (s *EstimateService) DeleteEstimate(ctx context.Context, req *connect.Request[api.DeleteEstimateRequest]) (*connect.Response[api.DeleteEstimateResponse], error) {
	if req.Msg.EstimateID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errMissingEstimateID)
	}
	if err := s.store.DeleteEstimate(ctx, req.Msg.EstimateID); err != nil {
		return nil, toConnectError(err)
	}
	s.sheets.Evict(req.Msg.EstimateID)
	slog.Info("Estimate deleted", "estimate_id", req.Msg.EstimateID, "user_id", middleware.GetUserID(ctx))
	return connect.NewResponse(&api.DeleteEstimateResponse{}), nil
}

// GetItems returns the line items of an estimate in display order.
func (s *EstimateService) GetItems(ctx context.Context, req *connect.Request[api.GetItemsRequest]) (*connect.Response[api.GetItemsResponse], error) {
	resp := &api.GetItemsResponse{}
	err := s.view(ctx, req.Msg.EstimateID, func(sheet *estimate.Sheet) error {
		resp.Items = itemsToAPI(sheet, sheet.Items())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(resp), nil
}

// AddItem appends an item with default values.
func (s *EstimateService) AddItem(ctx context.Context, req *connect.Request[api.AddItemRequest]) (*connect.Response[api.AddItemResponse], error) {
	resp := &api.AddItemResponse{}
	err := s.update(ctx, req.Msg.EstimateID, func(sheet *estimate.Sheet) error {
		resp.Item = itemToAPI(sheet, sheet.AddItem())
		resp.Violations = violationsToAPI(sheet.Violations())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(resp), nil
}

// CommitFieldEdit writes raw input to one field of an item.
func (s *EstimateService) CommitFieldEdit(ctx context.Context, req *connect.Request[api.CommitFieldEditRequest]) (*connect.Response[api.CommitFieldEditResponse], error) {
	if req.Msg.ItemID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errMissingItemID)
	}
	field, err := models.ParseField(req.Msg.Field)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	resp := &api.CommitFieldEditResponse{}
	err = s.update(ctx, req.Msg.EstimateID, func(sheet *estimate.Sheet) error {
		item, err := sheet.CommitFieldEdit(req.Msg.ItemID, field, req.Msg.Value)
		if err != nil {
			return err
		}
		resp.Item = itemToAPI(sheet, item)
		resp.Violations = violationsToAPI(sheet.Violations())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(resp), nil
}

// DuplicateItem copies an item under a new ID.
func (s *EstimateService) DuplicateItem(ctx context.Context, req *connect.Request[api.DuplicateItemRequest]) (*connect.Response[api.DuplicateItemResponse], error) {
	if req.Msg.ItemID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errMissingItemID)
	}
	resp := &api.DuplicateItemResponse{}
	err := s.update(ctx, req.Msg.EstimateID, func(sheet *estimate.Sheet) error {
		item, err := sheet.DuplicateItem(req.Msg.ItemID)
		if err != nil {
			return err
		}
		resp.Item = itemToAPI(sheet, item)
		resp.Violations = violationsToAPI(sheet.Violations())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(resp), nil
}

// DeleteItem removes an item; formulas referencing it are flagged.
func (s *EstimateService) DeleteItem(ctx context.Context, req *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error) {
	if req.Msg.ItemID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errMissingItemID)
	}
	resp := &api.DeleteItemResponse{}
	err := s.update(ctx, req.Msg.EstimateID, func(sheet *estimate.Sheet) error {
		if err := sheet.DeleteItem(req.Msg.ItemID); err != nil {
			return err
		}
		resp.Violations = violationsToAPI(sheet.Violations())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(resp), nil
}

// GetViolations returns the violations of the last settled pass.
func (s *EstimateService) GetViolations(ctx context.Context, req *connect.Request[api.GetViolationsRequest]) (*connect.Response[api.GetViolationsResponse], error) {
	resp := &api.GetViolationsResponse{}
	err := s.view(ctx, req.Msg.EstimateID, func(sheet *estimate.Sheet) error {
		resp.Violations = violationsToAPI(sheet.Violations())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(resp), nil
}

// ApplyTemplate inserts a named template or explicit lines in one pass.
func (s *EstimateService) ApplyTemplate(ctx context.Context, req *connect.Request[api.ApplyTemplateRequest]) (*connect.Response[api.ApplyTemplateResponse], error) {
	var lines []models.TemplateLine
	switch {
	case req.Msg.Template != "" && len(req.Msg.Lines) > 0:
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("set either template or lines, not both"))
	case req.Msg.Template != "":
		tmpl, err := s.catalog.Get(req.Msg.Template)
		if err != nil {
			return nil, toConnectError(err)
		}
		lines = tmpl.TemplateLines()
	case len(req.Msg.Lines) > 0:
		lines = templateLinesFromAPI(req.Msg.Lines)
	default:
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("template or lines is required"))
	}

	resp := &api.ApplyTemplateResponse{}
	err := s.update(ctx, req.Msg.EstimateID, func(sheet *estimate.Sheet) error {
		created, err := sheet.ApplyTemplate(lines)
		if err != nil {
			return err
		}
		resp.Items = itemsToAPI(sheet, created)
		resp.Violations = violationsToAPI(sheet.Violations())
		return nil
	})
	if err != nil {
		return nil, err
	}
	slog.Info("Template applied",
		"estimate_id", req.Msg.EstimateID,
		"template", req.Msg.Template,
		"items", len(resp.Items),
	)
	return connect.NewResponse(resp), nil
}

// ListTemplates returns the available templates sorted by name.
func (s *EstimateService) ListTemplates(ctx context.Context, req *connect.Request[api.ListTemplatesRequest]) (*connect.Response[api.ListTemplatesResponse], error) {
	resp := &api.ListTemplatesResponse{}
	for _, t := range s.catalog.List() {
		resp.Templates = append(resp.Templates, &api.TemplateInfo{
			Name:        t.Name,
			Description: t.Description,
			Lines:       len(t.Lines),
		})
	}
	return connect.NewResponse(resp), nil
}

// GetSummary returns per-category subtotals and the grand total.
func (s *EstimateService) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	var resp *api.GetSummaryResponse
	err := s.view(ctx, req.Msg.EstimateID, func(sheet *estimate.Sheet) error {
		resp = summaryToAPI(sheet.Summary())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(resp), nil
}

func (s *EstimateService) view(ctx context.Context, estimateID string, fn func(*estimate.Sheet) error) error {
	if estimateID == "" {
		return connect.NewError(connect.CodeInvalidArgument, errMissingEstimateID)
	}
	if err := s.sheets.View(ctx, estimateID, fn); err != nil {
		return toConnectError(err)
	}
	return nil
}

func (s *EstimateService) update(ctx context.Context, estimateID string, fn func(*estimate.Sheet) error) error {
	if estimateID == "" {
		return connect.NewError(connect.CodeInvalidArgument, errMissingEstimateID)
	}
	if err := s.sheets.Update(ctx, estimateID, fn); err != nil {
		connectErr := toConnectError(fmt.Errorf("estimate %s: %w", estimateID, err))
		if connect.CodeOf(connectErr) == connect.CodeInternal {
			slog.Error("Estimate update failed", "estimate_id", estimateID, "error", err)
		}
		return connectErr
	}
	return nil
}
