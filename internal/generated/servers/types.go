package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Defines values for PromiseEvaluationStatus.
const (
	GREEN  PromiseEvaluationStatus = "GREEN"
	RED    PromiseEvaluationStatus = "RED"
	YELLOW PromiseEvaluationStatus = "YELLOW"
)

// Defines values for StatusChangeStatus.
const (
	StatusChangeStatusDELIVERED StatusChangeStatus = "DELIVERED"
	StatusChangeStatusDRAFT     StatusChangeStatus = "DRAFT"
	StatusChangeStatusEXCEPTION StatusChangeStatus = "EXCEPTION"
	StatusChangeStatusINTRANSIT StatusChangeStatus = "IN_TRANSIT"
	StatusChangeStatusPACKED    StatusChangeStatus = "PACKED"
	StatusChangeStatusREADY     StatusChangeStatus = "READY"
	StatusChangeStatusSHIPPED   StatusChangeStatus = "SHIPPED"
)

// Blackout defines model for Blackout.
type Blackout struct {
	End    openapi_types.Date `json:"end"`
	Reason *string            `json:"reason,omitempty"`
	Start  openapi_types.Date `json:"start"`
}

// CreatedOrder defines model for CreatedOrder.
type CreatedOrder struct {
	OrderId openapi_types.UUID `json:"orderId"`
}

// CutoffRuleSet defines model for CutoffRuleSet.
type CutoffRuleSet struct {
	Blackouts *[]Blackout    `json:"blackouts,omitempty"`
	Divisions []DivisionRule `json:"divisions"`
	Timezone  string         `json:"timezone"`
}

// DivisionRule defines model for DivisionRule.
type DivisionRule struct {
	Code                 string `json:"code"`
	Cutoff               string `json:"cutoff"`
	NextDayEnabled       *bool  `json:"nextDayEnabled,omitempty"`
	PickupSameDayEnabled *bool  `json:"pickupSameDayEnabled,omitempty"`
	ShipDays             *[]int `json:"shipDays,omitempty"`
}

// Document defines model for Document.
type Document struct {
	Status string `json:"status"`
	Type   string `json:"type"`
}

// DropTag defines model for DropTag.
type DropTag struct {
	LineId openapi_types.UUID `json:"lineId"`
	Number string             `json:"number"`
}

// Error defines model for Error.
type Error struct {
	Code    int       `json:"code"`
	Details *[]string `json:"details,omitempty"`
	Message string    `json:"message"`
}

// IntegrityIssue defines model for IntegrityIssue.
type IntegrityIssue struct {
	OrderId     openapi_types.UUID `json:"orderId"`
	OrderNumber string             `json:"orderNumber"`
	Problems    []string           `json:"problems"`
	Status      string             `json:"status"`
}

// ItemsSummary defines model for ItemsSummary.
type ItemsSummary struct {
	ProcessingStepsCount  *int              `json:"processingStepsCount,omitempty"`
	ProcessingStepsDetail *[]ProcessingStep `json:"processingStepsDetail,omitempty"`
	TotalQty              *int              `json:"totalQty,omitempty"`
	TotalWeight           *float64          `json:"totalWeight,omitempty"`
}

// LineFulfillment defines model for LineFulfillment.
type LineFulfillment struct {
	Description        *string            `json:"description,omitempty"`
	LineId             openapi_types.UUID `json:"lineId"`
	LineNumber         int                `json:"lineNumber"`
	QtyOrdered         int                `json:"qtyOrdered"`
	QtyRemaining       int                `json:"qtyRemaining"`
	QtyShipped         int                `json:"qtyShipped"`
	ShippedPct         float64            `json:"shippedPct"`
	Sku                string             `json:"sku"`
	Status             string             `json:"status"`
	TotalWeightOrdered float64            `json:"totalWeightOrdered"`
	TotalWeightShipped float64            `json:"totalWeightShipped"`
	WeightPerUnit      float64            `json:"weightPerUnit"`
}

// NewOrder defines model for NewOrder.
type NewOrder struct {
	Lines       []NewOrderLine `json:"lines"`
	OrderNumber string         `json:"orderNumber"`
}

// NewOrderLine defines model for NewOrderLine.
type NewOrderLine struct {
	Description   *string             `json:"description,omitempty"`
	LineId        *openapi_types.UUID `json:"lineId,omitempty"`
	LineNumber    int                 `json:"lineNumber"`
	QtyOrdered    int                 `json:"qtyOrdered"`
	Sku           string              `json:"sku"`
	WeightPerUnit float64             `json:"weightPerUnit"`
}

// NewSplitShipment defines model for NewSplitShipment.
type NewSplitShipment struct {
	Carrier *string     `json:"carrier,omitempty"`
	Lines   []SplitLine `json:"lines"`
	Notes   *string     `json:"notes,omitempty"`
	User    string      `json:"user"`
}

// OrderFulfillment defines model for OrderFulfillment.
type OrderFulfillment struct {
	Events               []SplitEvent       `json:"events"`
	Lines                []LineFulfillment  `json:"lines"`
	OrderId              openapi_types.UUID `json:"orderId"`
	OrderNumber          string             `json:"orderNumber"`
	OrderShippedPct      float64            `json:"orderShippedPct"`
	Shipments            []SplitShipment    `json:"shipments"`
	Status               string             `json:"status"`
	TotalQtyRemaining    int                `json:"totalQtyRemaining"`
	TotalWeightRemaining float64            `json:"totalWeightRemaining"`
	Version              int                `json:"version"`
}

// Package defines model for Package.
type Package struct {
	LineId openapi_types.UUID `json:"lineId"`
	Qty    int                `json:"qty"`
	Type   string             `json:"type"`
	Weight float64            `json:"weight"`
}

// ProcessingStep defines model for ProcessingStep.
type ProcessingStep struct {
	MinutesPerUnit *float64 `json:"minutesPerUnit,omitempty"`
	Name           string   `json:"name"`
	Quantity       *int     `json:"quantity,omitempty"`
	SetupMinutes   *float64 `json:"setupMinutes,omitempty"`
}

// PromiseEvaluation defines model for PromiseEvaluation.
type PromiseEvaluation struct {
	CapacityNote      *string                 `json:"capacityNote,omitempty"`
	CutoffLocal       *string                 `json:"cutoffLocal,omitempty"`
	CutoffMet         *bool                   `json:"cutoffMet,omitempty"`
	Division          string                  `json:"division"`
	DivisionDefaulted bool                    `json:"divisionDefaulted"`
	EarliestShipDate  *openapi_types.Date     `json:"earliestShipDate,omitempty"`
	EvaluatedAt       time.Time               `json:"evaluatedAt"`
	LocationId        string                  `json:"locationId"`
	Message           string                  `json:"message"`
	Reasons           []string                `json:"reasons"`
	RequestedShipDate *openapi_types.Date     `json:"requestedShipDate,omitempty"`
	Status            PromiseEvaluationStatus `json:"status"`
	SuggestedDates    []openapi_types.Date    `json:"suggestedDates"`
	Timezone          *string                 `json:"timezone,omitempty"`
}

// PromiseEvaluationStatus defines model for PromiseEvaluation.Status.
type PromiseEvaluationStatus string

// PromiseRequest defines model for PromiseRequest.
type PromiseRequest struct {
	AsOf              *time.Time          `json:"asOf,omitempty"`
	Division          *string             `json:"division,omitempty"`
	Items             *ItemsSummary       `json:"items,omitempty"`
	LocationId        string              `json:"locationId"`
	RequestedShipDate *openapi_types.Date `json:"requestedShipDate,omitempty"`
}

// ShipmentLine defines model for ShipmentLine.
type ShipmentLine struct {
	LineId     openapi_types.UUID `json:"lineId"`
	LineNumber int                `json:"lineNumber"`
	Qty        int                `json:"qty"`
	Weight     float64            `json:"weight"`
}

// SplitEvent defines model for SplitEvent.
type SplitEvent struct {
	Action          string                  `json:"action"`
	Details         *map[string]interface{} `json:"details,omitempty"`
	Id              openapi_types.UUID      `json:"id"`
	SplitShipmentId openapi_types.UUID      `json:"splitShipmentId"`
	Timestamp       time.Time               `json:"timestamp"`
	User            string                  `json:"user"`
}

// SplitLine defines model for SplitLine.
type SplitLine struct {
	LineId    openapi_types.UUID `json:"lineId"`
	QtyToShip int                `json:"qtyToShip"`
}

// SplitRequest defines model for SplitRequest.
type SplitRequest struct {
	Lines []SplitLine `json:"lines"`
}

// SplitShipment defines model for SplitShipment.
type SplitShipment struct {
	Carrier        *string            `json:"carrier,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
	CreatedBy      string             `json:"createdBy"`
	DeliveredAt    *time.Time         `json:"deliveredAt,omitempty"`
	Documents      []Document         `json:"documents"`
	DropTags       []DropTag          `json:"dropTags"`
	Id             openapi_types.UUID `json:"id"`
	Lines          []ShipmentLine     `json:"lines"`
	Notes          *string            `json:"notes,omitempty"`
	OrderId        openapi_types.UUID `json:"orderId"`
	Packages       []Package          `json:"packages"`
	ShippedAt      *time.Time         `json:"shippedAt,omitempty"`
	SplitGroupId   openapi_types.UUID `json:"splitGroupId"`
	SplitIndex     int                `json:"splitIndex"`
	Status         string             `json:"status"`
	TotalQty       int                `json:"totalQty"`
	TotalWeight    float64            `json:"totalWeight"`
	TrackingNumber *string            `json:"trackingNumber,omitempty"`
}

// StatusChange defines model for StatusChange.
type StatusChange struct {
	Carrier        *string            `json:"carrier,omitempty"`
	Notes          *string            `json:"notes,omitempty"`
	Status         StatusChangeStatus `json:"status"`
	TrackingNumber *string            `json:"trackingNumber,omitempty"`
	User           string             `json:"user"`
}

// StatusChangeStatus defines model for StatusChange.Status.
type StatusChangeStatus string

// ValidationResult defines model for ValidationResult.
type ValidationResult struct {
	Errors []string `json:"errors"`
	Valid  bool     `json:"valid"`
}

// OrderId defines model for OrderId.
type OrderId = openapi_types.UUID

// EvaluatePromiseJSONRequestBody defines body for EvaluatePromise for application/json ContentType.
type EvaluatePromiseJSONRequestBody = PromiseRequest

// CreateOrderJSONRequestBody defines body for CreateOrder for application/json ContentType.
type CreateOrderJSONRequestBody = NewOrder

// CreateSplitShipmentJSONRequestBody defines body for CreateSplitShipment for application/json ContentType.
type CreateSplitShipmentJSONRequestBody = NewSplitShipment

// ValidateSplitJSONRequestBody defines body for ValidateSplit for application/json ContentType.
type ValidateSplitJSONRequestBody = SplitRequest

// UpdateSplitShipmentStatusJSONRequestBody defines body for UpdateSplitShipmentStatus for application/json ContentType.
type UpdateSplitShipmentStatusJSONRequestBody = StatusChange

// SaveCutoffRulesJSONRequestBody defines body for SaveCutoffRules for application/json ContentType.
type SaveCutoffRulesJSONRequestBody = CutoffRuleSet
