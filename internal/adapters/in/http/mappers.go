package http

import (
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/application/usecases/queries"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/calendar"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/kernel"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/shipment"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/services"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/generated/servers"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

func kernelID(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefBool(b *bool) bool {
	return b != nil && *b
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func apiDate(d calendar.Date) openapi_types.Date {
	return openapi_types.Date{Time: d.Time()}
}

func optionalDate(d calendar.Date) *openapi_types.Date {
	if d.IsZero() {
		return nil
	}
	date := apiDate(d)
	return &date
}

func itemsSummaryFromRequest(items *servers.ItemsSummary) *services.ItemsSummary {
	if items == nil {
		return nil
	}

	summary := &services.ItemsSummary{
		TotalQty:             derefInt(items.TotalQty),
		TotalWeight:          derefFloat(items.TotalWeight),
		ProcessingStepsCount: derefInt(items.ProcessingStepsCount),
	}
	if items.ProcessingStepsDetail != nil {
		for _, step := range *items.ProcessingStepsDetail {
			summary.ProcessingStepsDetail = append(summary.ProcessingStepsDetail, services.ProcessingStep{
				Name:           step.Name,
				SetupMinutes:   derefFloat(step.SetupMinutes),
				MinutesPerUnit: derefFloat(step.MinutesPerUnit),
				Quantity:       derefInt(step.Quantity),
			})
		}
	}
	return summary
}

func splitLinesFromRequest(lines []servers.SplitLine) ([]services.SplitLine, error) {
	out := make([]services.SplitLine, 0, len(lines))
	for _, l := range lines {
		lineID, err := kernelID(l.LineId)
		if err != nil {
			return nil, err
		}
		out = append(out, services.SplitLine{LineID: lineID, QtyToShip: l.QtyToShip})
	}
	return out, nil
}

func promiseEvaluationToResponse(eval services.PromiseEvaluation) servers.PromiseEvaluation {
	reasons := make([]string, len(eval.Reasons))
	for i, r := range eval.Reasons {
		reasons[i] = string(r)
	}
	suggested := make([]openapi_types.Date, len(eval.SuggestedDates))
	for i, d := range eval.SuggestedDates {
		suggested[i] = apiDate(d)
	}

	response := servers.PromiseEvaluation{
		Status:            servers.PromiseEvaluationStatus(eval.Status),
		Message:           eval.Message,
		LocationId:        eval.LocationID,
		Division:          eval.Division,
		DivisionDefaulted: eval.DivisionDefaulted,
		Timezone:          optional(eval.Timezone),
		CutoffLocal:       optional(eval.CutoffLocal),
		RequestedShipDate: optionalDate(eval.RequestedShipDate),
		EarliestShipDate:  optionalDate(eval.EarliestShipDate),
		SuggestedDates:    suggested,
		Reasons:           reasons,
		CapacityNote:      optional(eval.CapacityNote),
		EvaluatedAt:       eval.EvaluatedAt,
	}
	if eval.CutoffLocal != "" {
		cutoffMet := eval.CutoffMet
		response.CutoffMet = &cutoffMet
	}
	return response
}

func splitShipmentToResponse(split *shipment.SplitShipment) servers.SplitShipment {
	snap := split.Snapshot()

	lines := make([]servers.ShipmentLine, len(snap.Lines))
	for i, l := range snap.Lines {
		lines[i] = servers.ShipmentLine{LineId: l.LineID.Bytes(), LineNumber: l.LineNumber, Qty: l.Qty, Weight: l.Weight}
	}
	packages := make([]servers.Package, len(snap.Packages))
	for i, p := range snap.Packages {
		packages[i] = servers.Package{LineId: p.LineID.Bytes(), Type: string(p.Type), Qty: p.Qty, Weight: p.Weight}
	}
	dropTags := make([]servers.DropTag, len(snap.DropTags))
	for i, t := range snap.DropTags {
		dropTags[i] = servers.DropTag{LineId: t.LineID.Bytes(), Number: t.Number}
	}
	documents := make([]servers.Document, len(snap.Documents))
	for i, d := range snap.Documents {
		documents[i] = servers.Document{Type: string(d.Type), Status: string(d.Status)}
	}

	return servers.SplitShipment{
		Id:             snap.ID.Bytes(),
		SplitGroupId:   snap.SplitGroupID.Bytes(),
		OrderId:        snap.OrderID.Bytes(),
		SplitIndex:     snap.SplitIndex,
		Status:         snap.Status.String(),
		Lines:          lines,
		Packages:       packages,
		DropTags:       dropTags,
		Documents:      documents,
		TotalQty:       split.TotalQty(),
		TotalWeight:    split.TotalWeight(),
		Carrier:        optional(snap.Carrier),
		TrackingNumber: optional(snap.TrackingNumber),
		Notes:          optional(snap.Notes),
		CreatedBy:      snap.CreatedBy,
		CreatedAt:      snap.CreatedAt,
		ShippedAt:      snap.ShippedAt,
		DeliveredAt:    snap.DeliveredAt,
	}
}

func splitEventToResponse(event *shipment.Event) servers.SplitEvent {
	response := servers.SplitEvent{
		Id:              event.ID().Bytes(),
		SplitShipmentId: event.SplitShipmentID().Bytes(),
		Action:          string(event.Action()),
		User:            event.User(),
		Timestamp:       event.Timestamp(),
	}
	if details := event.Details(); len(details) > 0 {
		response.Details = &details
	}
	return response
}

func orderFulfillmentToResponse(view queries.GetOrderFulfillmentQueryResponse) servers.OrderFulfillment {
	lines := make([]servers.LineFulfillment, len(view.Lines))
	for i, l := range view.Lines {
		lines[i] = servers.LineFulfillment{
			LineId:             l.LineID.Bytes(),
			LineNumber:         l.LineNumber,
			Sku:                l.SKU,
			Description:        optional(l.Description),
			QtyOrdered:         l.QtyOrdered,
			QtyShipped:         l.QtyShipped,
			QtyRemaining:       l.QtyRemaining,
			WeightPerUnit:      l.WeightPerUnit,
			TotalWeightOrdered: l.TotalWeightOrdered,
			TotalWeightShipped: l.TotalWeightShipped,
			Status:             l.Status.String(),
			ShippedPct:         l.ShippedPct,
		}
	}
	shipments := make([]servers.SplitShipment, len(view.Shipments))
	for i, s := range view.Shipments {
		shipments[i] = splitShipmentToResponse(s)
	}
	events := make([]servers.SplitEvent, len(view.Events))
	for i, e := range view.Events {
		events[i] = splitEventToResponse(e)
	}

	return servers.OrderFulfillment{
		OrderId:              view.OrderID.Bytes(),
		OrderNumber:          view.OrderNumber,
		Version:              view.Version,
		Status:               view.Status.String(),
		OrderShippedPct:      view.OrderShippedPct,
		TotalQtyRemaining:    view.Remaining.TotalQtyRemaining,
		TotalWeightRemaining: view.Remaining.TotalWeightRemaining,
		Lines:                lines,
		Shipments:            shipments,
		Events:               events,
	}
}
