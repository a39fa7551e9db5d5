package commands

import (
	"context"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/order"

	"go.opentelemetry.io/otel/attribute"
)

// CreateOrderCommandHandler persists a new UNFULFILLED order with its lines.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	cmd, _ := NewCreateOrderCommand(orderID, "SO-10042", lines)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle builds the order aggregate from the command and stores it.
// Line validation errors from the domain are returned unchanged.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (err error) {
	if err = cmd.Validate(); err != nil {
		return err
	}

	ctx, span := tracer.Start(ctx, "CreateOrder")
	span.SetAttributes(attribute.String("order.number", cmd.OrderNumber()))
	defer func() { endSpan(span, err) }()

	lines := make([]*order.Line, 0, len(cmd.Lines()))
	for _, in := range cmd.Lines() {
		line, lineErr := order.NewLine(in.LineID, in.LineNumber, in.SKU, in.Description, in.QtyOrdered, in.WeightPerUnit)
		if lineErr != nil {
			return lineErr
		}
		lines = append(lines, line)
	}

	aggregate, err := order.NewOrder(cmd.OrderID(), cmd.OrderNumber(), lines)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
