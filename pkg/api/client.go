package api

import (
	"context"
	"strings"

	"connectrpc.com/connect"
)

// EstimateServiceClient calls the EstimateService over Connect with the JSON codec.
type EstimateServiceClient struct {
	createEstimate  *connect.Client[CreateEstimateRequest, CreateEstimateResponse]
	listEstimates   *connect.Client[ListEstimatesRequest, ListEstimatesResponse]
	deleteEstimate  *connect.Client[DeleteEstimateRequest, DeleteEstimateResponse]
	getItems        *connect.Client[GetItemsRequest, GetItemsResponse]
	addItem         *connect.Client[AddItemRequest, AddItemResponse]
	commitFieldEdit *connect.Client[CommitFieldEditRequest, CommitFieldEditResponse]
	duplicateItem   *connect.Client[DuplicateItemRequest, DuplicateItemResponse]
	deleteItem      *connect.Client[DeleteItemRequest, DeleteItemResponse]
	getViolations   *connect.Client[GetViolationsRequest, GetViolationsResponse]
	applyTemplate   *connect.Client[ApplyTemplateRequest, ApplyTemplateResponse]
	listTemplates   *connect.Client[ListTemplatesRequest, ListTemplatesResponse]
	getSummary      *connect.Client[GetSummaryRequest, GetSummaryResponse]
}

// NewEstimateServiceClient creates a client for the service at baseURL
// (e.g., http://localhost:8080).
func NewEstimateServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *EstimateServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
	return &EstimateServiceClient{
		createEstimate:  connect.NewClient[CreateEstimateRequest, CreateEstimateResponse](httpClient, baseURL+CreateEstimateProcedure, opts...),
		listEstimates:   connect.NewClient[ListEstimatesRequest, ListEstimatesResponse](httpClient, baseURL+ListEstimatesProcedure, opts...),
		deleteEstimate:  connect.NewClient[DeleteEstimateRequest, DeleteEstimateResponse](httpClient, baseURL+DeleteEstimateProcedure, opts...),
		getItems:        connect.NewClient[GetItemsRequest, GetItemsResponse](httpClient, baseURL+GetItemsProcedure, opts...),
		addItem:         connect.NewClient[AddItemRequest, AddItemResponse](httpClient, baseURL+AddItemProcedure, opts...),
		commitFieldEdit: connect.NewClient[CommitFieldEditRequest, CommitFieldEditResponse](httpClient, baseURL+CommitFieldEditProcedure, opts...),
		duplicateItem:   connect.NewClient[DuplicateItemRequest, DuplicateItemResponse](httpClient, baseURL+DuplicateItemProcedure, opts...),
		deleteItem:      connect.NewClient[DeleteItemRequest, DeleteItemResponse](httpClient, baseURL+DeleteItemProcedure, opts...),
		getViolations:   connect.NewClient[GetViolationsRequest, GetViolationsResponse](httpClient, baseURL+GetViolationsProcedure, opts...),
		applyTemplate:   connect.NewClient[ApplyTemplateRequest, ApplyTemplateResponse](httpClient, baseURL+ApplyTemplateProcedure, opts...),
		listTemplates:   connect.NewClient[ListTemplatesRequest, ListTemplatesResponse](httpClient, baseURL+ListTemplatesProcedure, opts...),
		getSummary:      connect.NewClient[GetSummaryRequest, GetSummaryResponse](httpClient, baseURL+GetSummaryProcedure, opts...),
	}
}

func (c *EstimateServiceClient) CreateEstimate(ctx context.Context, req *connect.Request[CreateEstimateRequest]) (*connect.Response[CreateEstimateResponse], error) {
	return c.createEstimate.CallUnary(ctx, req)
}

func (c *EstimateServiceClient) ListEstimates(ctx context.Context, req *connect.Request[ListEstimatesRequest]) (*connect.Response[ListEstimatesResponse], error) {
	return c.listEstimates.CallUnary(ctx, req)
}

func (c *EstimateServiceClient) DeleteEstimate(ctx context.Context, req *connect.Request[DeleteEstimateRequest]) (*connect.Response[DeleteEstimateResponse], error) {
	return c.deleteEstimate.CallUnary(ctx, req)
}

func (c *EstimateServiceClient) GetItems(ctx context.Context, req *connect.Request[GetItemsRequest]) (*connect.Response[GetItemsResponse], error) {
	return c.getItems.CallUnary(ctx, req)
}

func (c *EstimateServiceClient) AddItem(ctx context.Context, req *connect.Request[AddItemRequest]) (*connect.Response[AddItemResponse], error) {
	return c.addItem.CallUnary(ctx, req)
}

func (c *EstimateServiceClient) CommitFieldEdit(ctx context.Context, req *connect.Request[CommitFieldEditRequest]) (*connect.Response[CommitFieldEditResponse], error) {
	return c.commitFieldEdit.CallUnary(ctx, req)
}

func (c *EstimateServiceClient) DuplicateItem(ctx context.Context, req *connect.Request[DuplicateItemRequest]) (*connect.Response[DuplicateItemResponse], error) {
	return c.duplicateItem.CallUnary(ctx, req)
}

func (c *EstimateServiceClient) DeleteItem(ctx context.Context, req *connect.Request[DeleteItemRequest]) (*connect.Response[DeleteItemResponse], error) {
	return c.deleteItem.CallUnary(ctx, req)
}

func (c *EstimateServiceClient) GetViolations(ctx context.Context, req *connect.Request[GetViolationsRequest]) (*connect.Response[GetViolationsResponse], error) {
	return c.getViolations.CallUnary(ctx, req)
}

func (c *EstimateServiceClient) ApplyTemplate(ctx context.Context, req *connect.Request[ApplyTemplateRequest]) (*connect.Response[ApplyTemplateResponse], error) {
	return c.applyTemplate.CallUnary(ctx, req)
}

func (c *EstimateServiceClient) ListTemplates(ctx context.Context, req *connect.Request[ListTemplatesRequest]) (*connect.Response[ListTemplatesResponse], error) {
	return c.listTemplates.CallUnary(ctx, req)
}

func (c *EstimateServiceClient) GetSummary(ctx context.Context, req *connect.Request[GetSummaryRequest]) (*connect.Response[GetSummaryResponse], error) {
	return c.getSummary.CallUnary(ctx, req)
}
