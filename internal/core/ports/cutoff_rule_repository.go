package ports

import (
	"context"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/rules"
)

// CutoffRuleRepository stores one cutoff rule set per location.
type CutoffRuleRepository interface {
	// Get returns errs.ObjectNotFoundError when the location has no rules.
	Get(ctx context.Context, locationID string) (*rules.CutoffRuleSet, error)

	// Save creates or replaces the rule set of its location.
	Save(ctx context.Context, ruleSet *rules.CutoffRuleSet) error
}
