package telemetry_test

import (
	"context"
	"testing"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/telemetry"

	"github.com/stretchr/testify/require"
)

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	shutdown, err := telemetry.Setup(context.Background(), "fulfillment-test", "")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, shutdown(ctx))
}

func TestSetup_CreatesProviderWhenEndpointSet(t *testing.T) {
	// Non-routable address: nothing is exported before shutdown.
	shutdown, err := telemetry.Setup(context.Background(), "fulfillment-test", "http://192.0.2.1:4318")
	require.NoError(t, err)

	require.NoError(t, shutdown(context.Background()))
}
