package http

import (
	"net/http"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/application/usecases/commands"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/application/usecases/queries"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/kernel"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/shipment"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/services"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/generated/servers"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Handlers bundles the use cases the HTTP server dispatches to.
type Handlers struct {
	// Command handlers
	CreateOrder               commands.CreateOrderCommandHandler
	CreateSplitShipment       commands.CreateSplitShipmentCommandHandler
	UpdateSplitShipmentStatus commands.UpdateSplitShipmentStatusCommandHandler
	SaveCutoffRuleSet         commands.SaveCutoffRuleSetCommandHandler

	// Query handlers
	EvaluatePromise     queries.EvaluatePromiseQueryHandler
	ValidateSplit       queries.ValidateSplitQueryHandler
	GetOrderFulfillment queries.GetOrderFulfillmentQueryHandler
	FindIntegrityIssues queries.FindIntegrityIssuesQueryHandler
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// EvaluatePromise handles POST /api/v1/promise/evaluate.
func (s *Server) EvaluatePromise(ctx echo.Context) error {
	var body servers.EvaluatePromiseJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(ctx, err)
	}

	requestedShipDate := ""
	if body.RequestedShipDate != nil {
		requestedShipDate = body.RequestedShipDate.String()
	}

	query, err := queries.NewEvaluatePromiseQuery(
		body.LocationId,
		deref(body.Division),
		requestedShipDate,
		itemsSummaryFromRequest(body.Items),
	)
	if err != nil {
		return badRequest(ctx, "Invalid promise request", err)
	}
	if body.AsOf != nil {
		query = query.At(*body.AsOf)
	}

	eval, err := s.handlers.EvaluatePromise.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, "Failed to evaluate promise", err)
	}

	return ctx.JSON(http.StatusOK, promiseEvaluationToResponse(eval))
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.CreateOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(ctx, err)
	}

	lines := make([]commands.OrderLineInput, 0, len(body.Lines))
	for _, l := range body.Lines {
		lineID := kernel.NewUUID()
		if l.LineId != nil {
			parsed, err := kernelID(*l.LineId)
			if err != nil {
				return badRequest(ctx, "Invalid order data", err)
			}
			lineID = parsed
		}
		lines = append(lines, commands.OrderLineInput{
			LineID:        lineID,
			LineNumber:    l.LineNumber,
			SKU:           l.Sku,
			Description:   deref(l.Description),
			QtyOrdered:    l.QtyOrdered,
			WeightPerUnit: l.WeightPerUnit,
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, body.OrderNumber, lines)
	if err != nil {
		return badRequest(ctx, "Invalid order data", err)
	}

	if handleErr := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return fail(ctx, "Failed to create order", handleErr)
	}

	return ctx.JSON(http.StatusCreated, servers.CreatedOrder{OrderId: orderID.Bytes()})
}

// GetOrderFulfillment handles GET /api/v1/orders/{orderId}/fulfillment.
func (s *Server) GetOrderFulfillment(ctx echo.Context, orderId servers.OrderId) error {
	orderID, err := kernelID(orderId)
	if err != nil {
		return badRequest(ctx, "Invalid order id", err)
	}

	query, err := queries.NewGetOrderFulfillmentQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id", err)
	}

	view, err := s.handlers.GetOrderFulfillment.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, "Failed to retrieve order fulfillment", err)
	}

	return ctx.JSON(http.StatusOK, orderFulfillmentToResponse(view))
}

// ValidateSplit handles POST /api/v1/orders/{orderId}/splits/validate.
// A rejected split is still a 200: the result carries the messages.
func (s *Server) ValidateSplit(ctx echo.Context, orderId servers.OrderId) error {
	var body servers.ValidateSplitJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(ctx, err)
	}

	orderID, err := kernelID(orderId)
	if err != nil {
		return badRequest(ctx, "Invalid order id", err)
	}
	lines, err := splitLinesFromRequest(body.Lines)
	if err != nil {
		return badRequest(ctx, "Invalid split lines", err)
	}

	query, err := queries.NewValidateSplitQuery(orderID, lines)
	if err != nil {
		return badRequest(ctx, "Invalid split request", err)
	}

	result, err := s.handlers.ValidateSplit.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, "Failed to validate split", err)
	}

	messages := result.Errors
	if messages == nil {
		messages = []string{}
	}
	return ctx.JSON(http.StatusOK, servers.ValidationResult{Valid: result.Valid, Errors: messages})
}

// CreateSplitShipment handles POST /api/v1/orders/{orderId}/splits.
func (s *Server) CreateSplitShipment(ctx echo.Context, orderId servers.OrderId) error {
	var body servers.CreateSplitShipmentJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(ctx, err)
	}

	orderID, err := kernelID(orderId)
	if err != nil {
		return badRequest(ctx, "Invalid order id", err)
	}
	lines, err := splitLinesFromRequest(body.Lines)
	if err != nil {
		return badRequest(ctx, "Invalid split lines", err)
	}

	cmd, err := commands.NewCreateSplitShipmentCommand(orderID, lines, services.SplitMeta{
		User:    body.User,
		Carrier: deref(body.Carrier),
		Notes:   deref(body.Notes),
	})
	if err != nil {
		return badRequest(ctx, "Invalid split shipment data", err)
	}

	split, err := s.handlers.CreateSplitShipment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, "Failed to create split shipment", err)
	}

	return ctx.JSON(http.StatusCreated, splitShipmentToResponse(split))
}

// UpdateSplitShipmentStatus handles PATCH /api/v1/splits/{splitId}/status.
func (s *Server) UpdateSplitShipmentStatus(ctx echo.Context, splitId openapi_types.UUID) error {
	var body servers.UpdateSplitShipmentStatusJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(ctx, err)
	}

	splitID, err := kernelID(splitId)
	if err != nil {
		return badRequest(ctx, "Invalid split shipment id", err)
	}
	status, err := shipment.ParseStatus(string(body.Status))
	if err != nil {
		return badRequest(ctx, "Invalid status", err)
	}

	cmd, err := commands.NewUpdateSplitShipmentStatusCommand(splitID, status, services.StatusMeta{
		User:           body.User,
		Carrier:        deref(body.Carrier),
		TrackingNumber: deref(body.TrackingNumber),
		Notes:          deref(body.Notes),
	})
	if err != nil {
		return badRequest(ctx, "Invalid status change", err)
	}

	split, err := s.handlers.UpdateSplitShipmentStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, "Failed to update split shipment status", err)
	}

	return ctx.JSON(http.StatusOK, splitShipmentToResponse(split))
}

// SaveCutoffRules handles PUT /api/v1/locations/{locationId}/cutoff-rules.
func (s *Server) SaveCutoffRules(ctx echo.Context, locationId string) error {
	var body servers.SaveCutoffRulesJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(ctx, err)
	}

	divisions := make([]commands.DivisionRuleInput, 0, len(body.Divisions))
	for _, d := range body.Divisions {
		var shipDays []int
		if d.ShipDays != nil {
			shipDays = *d.ShipDays
		}
		divisions = append(divisions, commands.DivisionRuleInput{
			Code:                 d.Code,
			Cutoff:               d.Cutoff,
			NextDayEnabled:       derefBool(d.NextDayEnabled),
			ShipDays:             shipDays,
			PickupSameDayEnabled: derefBool(d.PickupSameDayEnabled),
		})
	}

	var blackouts []commands.BlackoutInput
	if body.Blackouts != nil {
		for _, b := range *body.Blackouts {
			blackouts = append(blackouts, commands.BlackoutInput{
				Start:  b.Start.String(),
				End:    b.End.String(),
				Reason: deref(b.Reason),
			})
		}
	}

	cmd, err := commands.NewSaveCutoffRuleSetCommand(locationId, body.Timezone, divisions, blackouts)
	if err != nil {
		return badRequest(ctx, "Invalid cutoff rules", err)
	}

	if handleErr := s.handlers.SaveCutoffRuleSet.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return fail(ctx, "Failed to save cutoff rules", handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetIntegrityIssues handles GET /api/v1/integrity-issues.
func (s *Server) GetIntegrityIssues(ctx echo.Context) error {
	issues, err := s.handlers.FindIntegrityIssues.Handle(ctx.Request().Context(), queries.NewFindIntegrityIssuesQuery())
	if err != nil {
		return fail(ctx, "Failed to retrieve integrity issues", err)
	}

	response := make([]servers.IntegrityIssue, len(issues))
	for i, issue := range issues {
		response[i] = servers.IntegrityIssue{
			OrderId:     issue.OrderID.Bytes(),
			OrderNumber: issue.OrderNumber,
			Status:      issue.Status.String(),
			Problems:    issue.Problems,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}
