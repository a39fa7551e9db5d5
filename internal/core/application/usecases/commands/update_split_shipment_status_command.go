package commands

import (
	"errors"
	"strings"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/kernel"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/shipment"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/services"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/guard"
)

var ErrUpdateSplitShipmentStatusCommandIsNotConstructed = errors.New(
	"UpdateSplitShipmentStatusCommand must be created via NewUpdateSplitShipmentStatusCommand constructor",
)

// UpdateSplitShipmentStatusCommand moves a split shipment along its state
// machine. Whether the move is allowed is decided by the split itself.
type UpdateSplitShipmentStatusCommand struct { //nolint:recvcheck //using for validation
	splitID   kernel.UUID
	newStatus shipment.Status
	meta      services.StatusMeta

	guard guard.ConstructorGuard
}

// NewUpdateSplitShipmentStatusCommand validates the split id, the target
// status and the user.
func NewUpdateSplitShipmentStatusCommand(
	splitID kernel.UUID,
	newStatus shipment.Status,
	meta services.StatusMeta,
) (UpdateSplitShipmentStatusCommand, error) {
	cmd := UpdateSplitShipmentStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSplitID(splitID),
		cmd.setNewStatus(newStatus),
		cmd.setMeta(meta),
	); err != nil {
		return UpdateSplitShipmentStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateSplitShipmentStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateSplitShipmentStatusCommandIsNotConstructed)
}

func (c UpdateSplitShipmentStatusCommand) SplitID() kernel.UUID {
	return c.splitID
}

func (c UpdateSplitShipmentStatusCommand) NewStatus() shipment.Status {
	return c.newStatus
}

func (c UpdateSplitShipmentStatusCommand) Meta() services.StatusMeta {
	return c.meta
}

func (c *UpdateSplitShipmentStatusCommand) setSplitID(splitID kernel.UUID) error {
	if err := splitID.Validate(); err != nil {
		return err
	}

	c.splitID = splitID
	return nil
}

func (c *UpdateSplitShipmentStatusCommand) setNewStatus(status shipment.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.newStatus = status
	return nil
}

func (c *UpdateSplitShipmentStatusCommand) setMeta(meta services.StatusMeta) error {
	meta.User = strings.TrimSpace(meta.User)
	if meta.User == "" {
		return ErrUserIsRequired
	}
	meta.Carrier = strings.TrimSpace(meta.Carrier)
	meta.TrackingNumber = strings.TrimSpace(meta.TrackingNumber)

	c.meta = meta
	return nil
}
