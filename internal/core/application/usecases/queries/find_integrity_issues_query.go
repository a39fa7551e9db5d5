package queries

import (
	"context"
	"errors"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/kernel"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/order"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/ports"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/guard"
)

var ErrFindIntegrityIssuesQueryIsNotConstructed = errors.New(
	"FindIntegrityIssuesQuery must be created via NewFindIntegrityIssuesQuery constructor",
)

// FindIntegrityIssuesQuery lists orders whose line quantities are broken:
// a negative remaining quantity, or ordered != shipped + remaining. Such
// orders cannot come out of the split workflow and point at writes that
// bypassed it.
type FindIntegrityIssuesQuery struct {
	guard guard.ConstructorGuard
}

// NewFindIntegrityIssuesQuery is parameterless.
func NewFindIntegrityIssuesQuery() FindIntegrityIssuesQuery {
	return FindIntegrityIssuesQuery{guard: guard.NewConstructorGuard()}
}

func (q FindIntegrityIssuesQuery) Validate() error {
	return q.guard.Validate(ErrFindIntegrityIssuesQueryIsNotConstructed)
}

// IntegrityIssue describes one broken order.
type IntegrityIssue struct {
	OrderID     kernel.UUID
	OrderNumber string
	Status      order.FulfillmentStatus
	Problems    []string
}

type FindIntegrityIssuesQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewFindIntegrityIssuesQueryHandler(uowFactory ports.UnitOfWorkFactory) FindIntegrityIssuesQueryHandler {
	return FindIntegrityIssuesQueryHandler{uowFactory: uowFactory}
}

func (h FindIntegrityIssuesQueryHandler) Handle(
	ctx context.Context,
	query FindIntegrityIssuesQuery,
) (issues []IntegrityIssue, err error) {
	if err = query.Validate(); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "FindIntegrityIssues")
	defer func() { endSpan(span, err) }()

	orders, err := h.uowFactory.Create().OrderRepository().ListWithIntegrityIssues(ctx)
	if err != nil {
		return nil, err
	}

	issues = make([]IntegrityIssue, 0, len(orders))
	for _, o := range orders {
		problems := o.IntegrityIssues()
		if len(problems) == 0 {
			continue
		}
		issues = append(issues, IntegrityIssue{
			OrderID:     o.ID(),
			OrderNumber: o.OrderNumber(),
			Status:      o.FulfillmentStatus(),
			Problems:    problems,
		})
	}

	return issues, nil
}
