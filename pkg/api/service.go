package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// EstimateServiceName is the fully-qualified name of the EstimateService.
const EstimateServiceName = "estimator.v1.EstimateService"

// Procedure paths of the EstimateService RPCs.
const (
	CreateEstimateProcedure  = "/" + EstimateServiceName + "/CreateEstimate"
	ListEstimatesProcedure   = "/" + EstimateServiceName + "/ListEstimates"
	DeleteEstimateProcedure  = "/" + EstimateServiceName + "/DeleteEstimate"
	GetItemsProcedure        = "/" + EstimateServiceName + "/GetItems"
	AddItemProcedure         = "/" + EstimateServiceName + "/AddItem"
	CommitFieldEditProcedure = "/" + EstimateServiceName + "/CommitFieldEdit"
	DuplicateItemProcedure   = "/" + EstimateServiceName + "/DuplicateItem"
	DeleteItemProcedure      = "/" + EstimateServiceName + "/DeleteItem"
	GetViolationsProcedure   = "/" + EstimateServiceName + "/GetViolations"
	ApplyTemplateProcedure   = "/" + EstimateServiceName + "/ApplyTemplate"
	ListTemplatesProcedure   = "/" + EstimateServiceName + "/ListTemplates"
	GetSummaryProcedure      = "/" + EstimateServiceName + "/GetSummary"
)

// EstimateServiceHandler is implemented by the estimate service.
type EstimateServiceHandler interface {
	CreateEstimate(context.Context, *connect.Request[CreateEstimateRequest]) (*connect.Response[CreateEstimateResponse], error)
	ListEstimates(context.Context, *connect.Request[ListEstimatesRequest]) (*connect.Response[ListEstimatesResponse], error)
	DeleteEstimate(context.Context, *connect.Request[DeleteEstimateRequest]) (*connect.Response[DeleteEstimateResponse], error)
	GetItems(context.Context, *connect.Request[GetItemsRequest]) (*connect.Response[GetItemsResponse], error)
	AddItem(context.Context, *connect.Request[AddItemRequest]) (*connect.Response[AddItemResponse], error)
	CommitFieldEdit(context.Context, *connect.Request[CommitFieldEditRequest]) (*connect.Response[CommitFieldEditResponse], error)
	DuplicateItem(context.Context, *connect.Request[DuplicateItemRequest]) (*connect.Response[DuplicateItemResponse], error)
	DeleteItem(context.Context, *connect.Request[DeleteItemRequest]) (*connect.Response[DeleteItemResponse], error)
	GetViolations(context.Context, *connect.Request[GetViolationsRequest]) (*connect.Response[GetViolationsResponse], error)
	ApplyTemplate(context.Context, *connect.Request[ApplyTemplateRequest]) (*connect.Response[ApplyTemplateResponse], error)
	ListTemplates(context.Context, *connect.Request[ListTemplatesRequest]) (*connect.Response[ListTemplatesResponse], error)
	GetSummary(context.Context, *connect.Request[GetSummaryRequest]) (*connect.Response[GetSummaryResponse], error)
}

// NewEstimateServiceHandler builds an HTTP handler for every EstimateService
// RPC. It returns the path to mount the handler on.
func NewEstimateServiceHandler(svc EstimateServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(CreateEstimateProcedure, connect.NewUnaryHandler(CreateEstimateProcedure, svc.CreateEstimate, opts...))
	mux.Handle(ListEstimatesProcedure, connect.NewUnaryHandler(ListEstimatesProcedure, svc.ListEstimates, opts...))
	mux.Handle(DeleteEstimateProcedure, connect.NewUnaryHandler(DeleteEstimateProcedure, svc.DeleteEstimate, opts...))
	mux.Handle(GetItemsProcedure, connect.NewUnaryHandler(GetItemsProcedure, svc.GetItems, opts...))
	mux.Handle(AddItemProcedure, connect.NewUnaryHandler(AddItemProcedure, svc.AddItem, opts...))
	mux.Handle(CommitFieldEditProcedure, connect.NewUnaryHandler(CommitFieldEditProcedure, svc.CommitFieldEdit, opts...))
	mux.Handle(DuplicateItemProcedure, connect.NewUnaryHandler(DuplicateItemProcedure, svc.DuplicateItem, opts...))
	mux.Handle(DeleteItemProcedure, connect.NewUnaryHandler(DeleteItemProcedure, svc.DeleteItem, opts...))
	mux.Handle(GetViolationsProcedure, connect.NewUnaryHandler(GetViolationsProcedure, svc.GetViolations, opts...))
	mux.Handle(ApplyTemplateProcedure, connect.NewUnaryHandler(ApplyTemplateProcedure, svc.ApplyTemplate, opts...))
	mux.Handle(ListTemplatesProcedure, connect.NewUnaryHandler(ListTemplatesProcedure, svc.ListTemplates, opts...))
	mux.Handle(GetSummaryProcedure, connect.NewUnaryHandler(GetSummaryProcedure, svc.GetSummary, opts...))
	return "/" + EstimateServiceName + "/", mux
}
