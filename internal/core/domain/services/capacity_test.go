package services_test

import (
	"testing"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateProcessingMinutes(t *testing.T) {
	minutes, err := services.EstimateProcessingMinutes([]services.ProcessingStep{
		{Name: "shear", SetupMinutes: 15, MinutesPerUnit: 2, Quantity: 10},
		{Name: "pack", SetupMinutes: 5},
	})

	require.NoError(t, err)
	assert.InDelta(t, 40.0, minutes, 1e-9)

	_, err = services.EstimateProcessingMinutes(nil)
	require.ErrorIs(t, err, services.ErrNoProcessingDetail)

	_, err = services.EstimateProcessingMinutes([]services.ProcessingStep{{Name: "saw", SetupMinutes: -1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "saw")
}

func TestProcessingTimeEstimator_Bands(t *testing.T) {
	estimator := services.NewProcessingTimeEstimator()
	items := func(minutes float64) services.ItemsSummary {
		return services.ItemsSummary{ProcessingStepsDetail: []services.ProcessingStep{{Name: "laser", SetupMinutes: minutes}}}
	}

	low, err := estimator.Estimate(items(239))
	require.NoError(t, err)
	assert.False(t, low.AtRisk)

	medium, err := estimator.Estimate(items(240))
	require.NoError(t, err)
	assert.True(t, medium.AtRisk)
	assert.Contains(t, medium.Note, "4.0 h (medium load)")

	high, err := estimator.Estimate(items(540))
	require.NoError(t, err)
	assert.Contains(t, high.Note, "9.0 h (high load)")
}

func TestThresholdCapacityEstimator_Limits(t *testing.T) {
	estimator := services.NewThresholdCapacityEstimator()

	atLimit, err := estimator.Estimate(services.ItemsSummary{ProcessingStepsCount: 3, TotalQty: 500, TotalWeight: 20000})
	require.NoError(t, err)
	assert.False(t, atLimit.AtRisk)

	over, err := estimator.Estimate(services.ItemsSummary{ProcessingStepsCount: 4})
	require.NoError(t, err)
	assert.True(t, over.AtRisk)
	assert.Equal(t, "Capacity risk: 4 processing steps (limit 3)", over.Note)
}
