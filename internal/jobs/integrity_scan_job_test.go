package jobs_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/application/usecases/queries"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/kernel"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/order"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/jobs"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockIntegrityIssueFinder struct {
	mock.Mock
}

func (m *MockIntegrityIssueFinder) Handle(
	ctx context.Context,
	query queries.FindIntegrityIssuesQuery,
) ([]queries.IntegrityIssue, error) {
	args := m.Called(ctx, query)
	issues, _ := args.Get(0).([]queries.IntegrityIssue)
	return issues, args.Error(1)
}

func newScanJob(t *testing.T, finder jobs.IntegrityIssueFinder, schedule string) (*jobs.IntegrityScanJob, *bytes.Buffer, *prometheus.Registry) {
	t.Helper()

	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	registry := prometheus.NewRegistry()

	return jobs.NewIntegrityScanJob(finder, schedule, metrics.New(registry), logger), &logs, registry
}

func TestIntegrityScanJob_RunOnce(t *testing.T) {
	overshipped := queries.IntegrityIssue{
		OrderID:     kernel.NewUUID(),
		OrderNumber: "SO-10042",
		Status:      order.Overshipped,
		Problems:    []string{"line 1: remaining quantity -5 is negative"},
	}
	unbalanced := queries.IntegrityIssue{
		OrderID:     kernel.NewUUID(),
		OrderNumber: "SO-10043",
		Status:      order.PartiallyFulfilled,
		Problems:    []string{"line 2: ordered 100 != shipped 40 + remaining 50"},
	}

	t.Run("alarms on every broken order", func(t *testing.T) {
		finder := new(MockIntegrityIssueFinder)
		finder.On("Handle", mock.Anything, mock.AnythingOfType("queries.FindIntegrityIssuesQuery")).
			Return([]queries.IntegrityIssue{overshipped, unbalanced}, nil)
		job, logs, registry := newScanJob(t, finder, "")

		issues, err := job.RunOnce(context.Background())

		require.NoError(t, err)
		assert.Len(t, issues, 2)
		assert.Contains(t, logs.String(), "Data integrity alarm: order is overshipped")
		assert.Contains(t, logs.String(), `"order_number":"SO-10042"`)
		assert.Contains(t, logs.String(), "Data integrity alarm: order quantities are unbalanced")
		assert.Contains(t, logs.String(), `"order_number":"SO-10043"`)

		expected := `
# HELP fulfillment_orders_with_integrity_issues Orders found overshipped or unbalanced by the last integrity scan.
# TYPE fulfillment_orders_with_integrity_issues gauge
fulfillment_orders_with_integrity_issues 2
`
		assert.NoError(t, testutil.GatherAndCompare(registry, bytes.NewBufferString(expected),
			"fulfillment_orders_with_integrity_issues"))
		finder.AssertExpectations(t)
	})

	t.Run("clean store raises nothing", func(t *testing.T) {
		finder := new(MockIntegrityIssueFinder)
		finder.On("Handle", mock.Anything, mock.Anything).Return([]queries.IntegrityIssue{}, nil)
		job, logs, _ := newScanJob(t, finder, "")

		issues, err := job.RunOnce(context.Background())

		require.NoError(t, err)
		assert.Empty(t, issues)
		assert.NotContains(t, logs.String(), "Data integrity alarm")
	})

	t.Run("scan failure is logged and counted", func(t *testing.T) {
		storeErr := errors.New("connection refused")
		finder := new(MockIntegrityIssueFinder)
		finder.On("Handle", mock.Anything, mock.Anything).Return(nil, storeErr)
		job, logs, registry := newScanJob(t, finder, "")

		issues, err := job.RunOnce(context.Background())

		require.ErrorIs(t, err, storeErr)
		assert.Nil(t, issues)
		assert.Contains(t, logs.String(), "Integrity scan failed")

		expected := `
# HELP fulfillment_integrity_scans_total Integrity scans by outcome.
# TYPE fulfillment_integrity_scans_total counter
fulfillment_integrity_scans_total{outcome="error"} 1
`
		assert.NoError(t, testutil.GatherAndCompare(registry, bytes.NewBufferString(expected),
			"fulfillment_integrity_scans_total"))
	})
}

func TestIntegrityScanJob_StartStop(t *testing.T) {
	t.Run("invalid schedule", func(t *testing.T) {
		job, _, _ := newScanJob(t, new(MockIntegrityIssueFinder), "not a schedule")

		assert.Error(t, job.Start())
	})

	t.Run("valid schedule", func(t *testing.T) {
		job, logs, _ := newScanJob(t, new(MockIntegrityIssueFinder), "0 0 3 * * *")
		manager := jobs.NewJobManager(job)

		require.NoError(t, manager.StartAll())
		manager.StopAll()

		assert.Contains(t, logs.String(), "Integrity scan job started")
		assert.Contains(t, logs.String(), "Integrity scan job stopped")
	})
}
