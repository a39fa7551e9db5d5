package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/kernel"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/errs"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderNumberIsRequired = errors.New("order number is required")
	ErrOrderLinesAreRequired = errors.New("at least one order line is required")
)

// OrderLineInput is one line handed over by order intake.
type OrderLineInput struct {
	LineID        kernel.UUID
	LineNumber    int
	SKU           string
	Description   string
	QtyOrdered    int
	WeightPerUnit float64
}

// CreateOrderCommand registers an order received from order intake so that
// shipments can be split against it.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, "SO-10042", []OrderLineInput{
//	    {LineID: kernel.NewUUID(), LineNumber: 1, SKU: "HR-PLATE", QtyOrdered: 150, WeightPerUnit: 40},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	orderNumber string
	lines       []OrderLineInput

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the order id, order number and that at
// least one line is present. Line quantities are validated by the domain.
func NewCreateOrderCommand(orderID kernel.UUID, orderNumber string, lines []OrderLineInput) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setOrderNumber(orderNumber),
		orderCommand.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) OrderNumber() string {
	return c.orderNumber
}

// Lines returns a copy of the line inputs.
func (c CreateOrderCommand) Lines() []OrderLineInput {
	return append([]OrderLineInput(nil), c.lines...)
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setOrderNumber(orderNumber string) error {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return ErrOrderNumberIsRequired
	}

	c.orderNumber = orderNumber
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLineInput) error {
	if len(lines) == 0 {
		return ErrOrderLinesAreRequired
	}

	var err error
	for i, l := range lines {
		if vErr := l.LineID.Validate(); vErr != nil {
			err = errors.Join(err, errs.NewValueIsRequiredErrorWithCause(fmt.Sprintf("lines[%d].lineId", i), vErr))
		}
	}
	if err != nil {
		return err
	}

	c.lines = append([]OrderLineInput(nil), lines...)
	return nil
}
