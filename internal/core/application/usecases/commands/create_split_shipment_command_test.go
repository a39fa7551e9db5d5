package commands_test

import (
	"testing"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/application/usecases/commands"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/kernel"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateSplitShipmentCommand(t *testing.T) {
	orderID := kernel.NewUUID()
	lines := []services.SplitLine{{LineID: kernel.NewUUID(), QtyToShip: 60}}

	t.Run("valid", func(t *testing.T) {
		cmd, err := commands.NewCreateSplitShipmentCommand(orderID, lines,
			services.SplitMeta{User: " dock-1 ", Carrier: "XPO"})

		require.NoError(t, err)
		assert.Equal(t, orderID, cmd.OrderID())
		assert.Equal(t, lines, cmd.Lines())
		assert.Equal(t, "dock-1", cmd.Meta().User)
		assert.Equal(t, "XPO", cmd.Meta().Carrier)
	})

	t.Run("empty lines are left to the handler", func(t *testing.T) {
		cmd, err := commands.NewCreateSplitShipmentCommand(orderID, nil, services.SplitMeta{User: "dock-1"})

		require.NoError(t, err)
		assert.Empty(t, cmd.Lines())
	})

	t.Run("missing order id and user", func(t *testing.T) {
		_, err := commands.NewCreateSplitShipmentCommand(kernel.UUID{}, lines, services.SplitMeta{})

		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		assert.ErrorIs(t, err, commands.ErrUserIsRequired)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		require.ErrorIs(t, commands.CreateSplitShipmentCommand{}.Validate(),
			commands.ErrCreateSplitShipmentCommandIsNotConstructed)
	})
}
