package queries

import (
	"context"
	"errors"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/services"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/ports"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/errs"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/metrics"

	"go.opentelemetry.io/otel/attribute"
)

// EvaluatePromiseQueryHandler looks up the location's cutoff rules and runs
// the promise evaluator. A location without rules is not an error: the
// evaluation comes back YELLOW with the NO_RULES reason.
type EvaluatePromiseQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	evaluator  *services.PromiseEvaluator
	metrics    *metrics.Metrics
}

// NewEvaluatePromiseQueryHandler wires the handler. metrics may be nil.
func NewEvaluatePromiseQueryHandler(
	uowFactory ports.UnitOfWorkFactory,
	evaluator *services.PromiseEvaluator,
	m *metrics.Metrics,
) EvaluatePromiseQueryHandler {
	return EvaluatePromiseQueryHandler{
		uowFactory: uowFactory,
		evaluator:  evaluator,
		metrics:    m,
	}
}

func (h EvaluatePromiseQueryHandler) Handle(
	ctx context.Context,
	query EvaluatePromiseQuery,
) (eval services.PromiseEvaluation, err error) {
	if err = query.Validate(); err != nil {
		return services.PromiseEvaluation{}, err
	}

	ctx, span := tracer.Start(ctx, "EvaluatePromise")
	span.SetAttributes(attribute.String("location.id", query.LocationID()))
	defer func() { endSpan(span, err) }()

	ruleSet, err := h.uowFactory.Create().CutoffRuleRepository().Get(ctx, query.LocationID())
	if err != nil {
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return services.PromiseEvaluation{}, err
		}
		ruleSet = nil
	}

	eval, err = h.evaluator.Evaluate(ruleSet, query.request())
	if err != nil {
		return services.PromiseEvaluation{}, err
	}

	span.SetAttributes(attribute.String("promise.status", string(eval.Status)))
	h.metrics.PromiseEvaluated(string(eval.Status))

	return eval, nil
}
