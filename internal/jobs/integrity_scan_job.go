package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/application/usecases/queries"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/order"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// DefaultIntegrityScanSchedule runs the scan every five minutes. The
// expression has a leading seconds field.
const DefaultIntegrityScanSchedule = "0 */5 * * * *"

const integrityScanTimeout = time.Minute

// IntegrityIssueFinder lists orders whose line quantities are broken.
type IntegrityIssueFinder interface {
	Handle(ctx context.Context, query queries.FindIntegrityIssuesQuery) ([]queries.IntegrityIssue, error)
}

// IntegrityScanJob periodically looks for orders the split workflow could not
// have produced (negative remaining quantities, ordered != shipped +
// remaining) and raises an alarm for each of them. Overshipped orders are
// alarmed separately so they can be paged on.
type IntegrityScanJob struct {
	finder   IntegrityIssueFinder
	schedule string
	metrics  *metrics.Metrics
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewIntegrityScanJob creates the job. An empty schedule selects
// DefaultIntegrityScanSchedule.
func NewIntegrityScanJob(
	finder IntegrityIssueFinder,
	schedule string,
	m *metrics.Metrics,
	logger *slog.Logger,
) *IntegrityScanJob {
	if schedule == "" {
		schedule = DefaultIntegrityScanSchedule
	}
	return &IntegrityScanJob{
		finder:   finder,
		schedule: schedule,
		metrics:  m,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "integrity_scan_job"),
	}
}

// Start schedules the scan. An invalid schedule is returned as an error and
// nothing is started.
func (j *IntegrityScanJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), integrityScanTimeout)
		defer cancel()

		_, _ = j.RunOnce(ctx)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Integrity scan job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running scan to finish.
func (j *IntegrityScanJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Integrity scan job stopped")
}

// RunOnce performs a single scan and returns the issues it alarmed on.
func (j *IntegrityScanJob) RunOnce(ctx context.Context) ([]queries.IntegrityIssue, error) {
	issues, err := j.finder.Handle(ctx, queries.NewFindIntegrityIssuesQuery())
	j.metrics.IntegrityScanned(len(issues), err)
	if err != nil {
		j.logger.ErrorContext(ctx, "Integrity scan failed", "error", err)
		return nil, err
	}

	for _, issue := range issues {
		attrs := []any{
			"order_id", issue.OrderID.String(),
			"order_number", issue.OrderNumber,
			"fulfillment_status", issue.Status.String(),
			"problems", issue.Problems,
		}
		if issue.Status == order.Overshipped {
			j.logger.ErrorContext(ctx, "Data integrity alarm: order is overshipped", attrs...)
			continue
		}
		j.logger.ErrorContext(ctx, "Data integrity alarm: order quantities are unbalanced", attrs...)
	}

	if len(issues) == 0 {
		j.logger.DebugContext(ctx, "Integrity scan found no issues")
	}
	return issues, nil
}
