package queries

import (
	"errors"
	"strings"
	"time"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/services"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/errs"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/guard"
)

var ErrEvaluatePromiseQueryIsNotConstructed = errors.New(
	"EvaluatePromiseQuery must be created via NewEvaluatePromiseQuery constructor",
)

// EvaluatePromiseQuery asks whether an order can ship from a location on a
// requested date.
//
// Example:
//
//	query, err := NewEvaluatePromiseQuery("JACKSON", "METALS", "2024-01-16", nil)
//	if err != nil {
//	    return err
//	}
//
//	eval, err := handler.Handle(ctx, query)
//	if eval.Status == services.PromiseRed {
//	    fmt.Println(eval.Message, eval.EarliestShipDate)
//	}
type EvaluatePromiseQuery struct {
	locationID        string
	division          string
	requestedShipDate string
	items             *services.ItemsSummary
	now               time.Time

	guard guard.ConstructorGuard
}

// NewEvaluatePromiseQuery requires a location. An empty division resolves to
// the location's default rule; an empty date means tomorrow.
func NewEvaluatePromiseQuery(
	locationID string,
	division string,
	requestedShipDate string,
	items *services.ItemsSummary,
) (EvaluatePromiseQuery, error) {
	locationID = strings.TrimSpace(locationID)
	if locationID == "" {
		return EvaluatePromiseQuery{}, errs.NewValueIsRequiredError("locationId")
	}

	return EvaluatePromiseQuery{
		locationID:        locationID,
		division:          strings.TrimSpace(division),
		requestedShipDate: strings.TrimSpace(requestedShipDate),
		items:             items,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

// At pins the evaluation instant, for what-if evaluations and replays.
func (q EvaluatePromiseQuery) At(now time.Time) EvaluatePromiseQuery {
	q.now = now
	return q
}

// Validate ensures the query was created through the constructor.
func (q EvaluatePromiseQuery) Validate() error {
	return q.guard.Validate(ErrEvaluatePromiseQueryIsNotConstructed)
}

func (q EvaluatePromiseQuery) LocationID() string {
	return q.locationID
}

func (q EvaluatePromiseQuery) request() services.PromiseRequest {
	return services.PromiseRequest{
		LocationID:        q.locationID,
		Division:          q.division,
		RequestedShipDate: q.requestedShipDate,
		Items:             q.items,
		Now:               q.now,
	}
}
