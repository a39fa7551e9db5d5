package queries

import (
	"context"
	"errors"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/kernel"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/services"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/ports"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/guard"

	"go.opentelemetry.io/otel/attribute"
)

var ErrValidateSplitQueryIsNotConstructed = errors.New(
	"ValidateSplitQuery must be created via NewValidateSplitQuery constructor",
)

// ValidateSplitQuery checks a proposed split against the current order
// without changing anything. Callers run it before creating a split.
type ValidateSplitQuery struct {
	orderID kernel.UUID
	lines   []services.SplitLine

	guard guard.ConstructorGuard
}

func NewValidateSplitQuery(orderID kernel.UUID, lines []services.SplitLine) (ValidateSplitQuery, error) {
	if err := orderID.Validate(); err != nil {
		return ValidateSplitQuery{}, err
	}

	return ValidateSplitQuery{
		orderID: orderID,
		lines:   append([]services.SplitLine(nil), lines...),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q ValidateSplitQuery) Validate() error {
	return q.guard.Validate(ErrValidateSplitQueryIsNotConstructed)
}

type ValidateSplitQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	tracker    *services.FulfillmentTracker
}

func NewValidateSplitQueryHandler(
	uowFactory ports.UnitOfWorkFactory,
	tracker *services.FulfillmentTracker,
) ValidateSplitQueryHandler {
	return ValidateSplitQueryHandler{uowFactory: uowFactory, tracker: tracker}
}

// Handle returns every problem of the proposal. An unknown order is an error,
// not a validation message.
func (h ValidateSplitQueryHandler) Handle(
	ctx context.Context,
	query ValidateSplitQuery,
) (result services.ValidationResult, err error) {
	if err = query.Validate(); err != nil {
		return services.ValidationResult{}, err
	}

	ctx, span := tracer.Start(ctx, "ValidateSplit")
	span.SetAttributes(attribute.String("order.id", query.orderID.String()))
	defer func() { endSpan(span, err) }()

	o, err := h.uowFactory.Create().OrderRepository().Get(ctx, query.orderID)
	if err != nil {
		return services.ValidationResult{}, err
	}

	return h.tracker.ValidateSplit(o, query.lines), nil
}
