// Package servers holds the HTTP contract of the fulfillment API: the models,
// the ServerInterface an adapter implements, and the embedded OpenAPI
// document they are derived from. It follows oapi-codegen's echo server
// layout so the adapter can be regenerated against a newer document.
package servers

import (
	_ "embed"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

//go:embed openapi.yaml
var swaggerSpec []byte

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Evaluate whether an order can ship on a requested date
	// (POST /api/v1/promise/evaluate)
	EvaluatePromise(ctx echo.Context) error
	// Register an order for fulfillment tracking
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// Get the fulfillment status of an order
	// (GET /api/v1/orders/{orderId}/fulfillment)
	GetOrderFulfillment(ctx echo.Context, orderId OrderId) error
	// Create a split shipment for part of an order
	// (POST /api/v1/orders/{orderId}/splits)
	CreateSplitShipment(ctx echo.Context, orderId OrderId) error
	// Check a proposed split without creating it
	// (POST /api/v1/orders/{orderId}/splits/validate)
	ValidateSplit(ctx echo.Context, orderId OrderId) error
	// Move a split shipment to its next status
	// (PATCH /api/v1/splits/{splitId}/status)
	UpdateSplitShipmentStatus(ctx echo.Context, splitId openapi_types.UUID) error
	// Replace the cutoff rules of a location
	// (PUT /api/v1/locations/{locationId}/cutoff-rules)
	SaveCutoffRules(ctx echo.Context, locationId string) error
	// List orders whose line quantities are inconsistent
	// (GET /api/v1/integrity-issues)
	GetIntegrityIssues(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// EvaluatePromise converts echo context to params.
func (w *ServerInterfaceWrapper) EvaluatePromise(ctx echo.Context) error {
	return w.Handler.EvaluatePromise(ctx)
}

// CreateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

// GetOrderFulfillment converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrderFulfillment(ctx echo.Context) error {
	orderId, err := bindUUIDParam(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.GetOrderFulfillment(ctx, orderId)
}

// CreateSplitShipment converts echo context to params.
func (w *ServerInterfaceWrapper) CreateSplitShipment(ctx echo.Context) error {
	orderId, err := bindUUIDParam(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.CreateSplitShipment(ctx, orderId)
}

// ValidateSplit converts echo context to params.
func (w *ServerInterfaceWrapper) ValidateSplit(ctx echo.Context) error {
	orderId, err := bindUUIDParam(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.ValidateSplit(ctx, orderId)
}

// UpdateSplitShipmentStatus converts echo context to params.
func (w *ServerInterfaceWrapper) UpdateSplitShipmentStatus(ctx echo.Context) error {
	splitId, err := bindUUIDParam(ctx, "splitId")
	if err != nil {
		return err
	}
	return w.Handler.UpdateSplitShipmentStatus(ctx, splitId)
}

// SaveCutoffRules converts echo context to params.
func (w *ServerInterfaceWrapper) SaveCutoffRules(ctx echo.Context) error {
	var locationId string

	err := runtime.BindStyledParameterWithOptions("simple", "locationId", ctx.Param("locationId"), &locationId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter locationId: %s", err))
	}

	return w.Handler.SaveCutoffRules(ctx, locationId)
}

// GetIntegrityIssues converts echo context to params.
func (w *ServerInterfaceWrapper) GetIntegrityIssues(ctx echo.Context) error {
	return w.Handler.GetIntegrityIssues(ctx)
}

func bindUUIDParam(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID

	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}

	return id, nil
}

// EchoRouter is the subset of echo routing used to register handlers.
// Both *echo.Echo and *echo.Group satisfy it.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the handlers, and prepends baseURL
// to the paths, so that the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/api/v1/promise/evaluate", wrapper.EvaluatePromise)
	router.POST(baseURL+"/api/v1/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/api/v1/orders/:orderId/fulfillment", wrapper.GetOrderFulfillment)
	router.POST(baseURL+"/api/v1/orders/:orderId/splits", wrapper.CreateSplitShipment)
	router.POST(baseURL+"/api/v1/orders/:orderId/splits/validate", wrapper.ValidateSplit)
	router.PATCH(baseURL+"/api/v1/splits/:splitId/status", wrapper.UpdateSplitShipmentStatus)
	router.PUT(baseURL+"/api/v1/locations/:locationId/cutoff-rules", wrapper.SaveCutoffRules)
	router.GET(baseURL+"/api/v1/integrity-issues", wrapper.GetIntegrityIssues)
}

// GetSwagger returns the OpenAPI document the server is built from.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	swagger, err := loader.LoadFromData(swaggerSpec)
	if err != nil {
		return nil, fmt.Errorf("error loading Swagger: %w", err)
	}
	return swagger, nil
}

// RawSpec returns the embedded OpenAPI document as written.
func RawSpec() []byte {
	return swaggerSpec
}
