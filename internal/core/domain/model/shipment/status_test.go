package shipment_test

import (
	"fmt"
	"testing"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/shipment"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_TransitionTo(t *testing.T) {
	allowed := map[shipment.Status][]shipment.Status{
		shipment.Draft:     {shipment.Ready},
		shipment.Ready:     {shipment.Packed},
		shipment.Packed:    {shipment.Shipped},
		shipment.Shipped:   {shipment.InTransit},
		shipment.InTransit: {shipment.Delivered, shipment.Exception},
	}
	all := []shipment.Status{
		shipment.Draft, shipment.Ready, shipment.Packed, shipment.Shipped,
		shipment.InTransit, shipment.Delivered, shipment.Exception,
	}

	for _, from := range all {
		for _, to := range all {
			t.Run(fmt.Sprintf("%s to %s", from, to), func(t *testing.T) {
				got, err := from.TransitionTo(to)

				if contains(allowed[from], to) {
					require.NoError(t, err)
					assert.Equal(t, to, got)
					return
				}
				require.ErrorIs(t, err, errs.ErrValueIsInvalid)
				require.ErrorIs(t, err, shipment.ErrTransitionIsInvalid)
				assert.Contains(t, err.Error(), fmt.Sprintf("%s -> %s", from, to))
			})
		}
	}
}

func TestStatus_TransitionToUnknown(t *testing.T) {
	_, err := shipment.Draft.TransitionTo(shipment.Unknown)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_Classification(t *testing.T) {
	assert.True(t, shipment.Draft.IsPreDispatch())
	assert.True(t, shipment.Packed.IsPreDispatch())
	assert.False(t, shipment.Shipped.IsPreDispatch())
	assert.True(t, shipment.Delivered.IsTerminal())
	assert.True(t, shipment.Exception.IsTerminal())
	assert.False(t, shipment.InTransit.IsTerminal())
}

func TestParseStatus(t *testing.T) {
	got, err := shipment.ParseStatus("IN_TRANSIT")
	require.NoError(t, err)
	assert.Equal(t, shipment.InTransit, got)

	_, err = shipment.ParseStatus("LOST")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	_, err = shipment.ParseStatus("UNKNOWN")
	require.Error(t, err)
}

func contains(list []shipment.Status, s shipment.Status) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
