package commands

import (
	"errors"
	"strings"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/kernel"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/services"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/guard"
)

var (
	ErrCreateSplitShipmentCommandIsNotConstructed = errors.New(
		"CreateSplitShipmentCommand must be created via NewCreateSplitShipmentCommand constructor",
	)
	ErrUserIsRequired = errors.New("user is required")
)

// CreateSplitShipmentCommand ships part of an order's remaining quantities as
// a new DRAFT split shipment.
//
// Line-level problems (unknown lines, quantities above the remaining quantity)
// are not checked here: they need the current order and are reported by the
// handler all at once.
type CreateSplitShipmentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	lines   []services.SplitLine
	meta    services.SplitMeta

	guard guard.ConstructorGuard
}

// NewCreateSplitShipmentCommand validates the order id and the user.
func NewCreateSplitShipmentCommand(
	orderID kernel.UUID,
	lines []services.SplitLine,
	meta services.SplitMeta,
) (CreateSplitShipmentCommand, error) {
	cmd := CreateSplitShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setMeta(meta),
	); err != nil {
		return CreateSplitShipmentCommand{}, err
	}
	cmd.lines = append([]services.SplitLine(nil), lines...)

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateSplitShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateSplitShipmentCommandIsNotConstructed)
}

func (c CreateSplitShipmentCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateSplitShipmentCommand) Lines() []services.SplitLine {
	return append([]services.SplitLine(nil), c.lines...)
}

func (c CreateSplitShipmentCommand) Meta() services.SplitMeta {
	return c.meta
}

func (c *CreateSplitShipmentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateSplitShipmentCommand) setMeta(meta services.SplitMeta) error {
	meta.User = strings.TrimSpace(meta.User)
	if meta.User == "" {
		return ErrUserIsRequired
	}

	c.meta = meta
	return nil
}
