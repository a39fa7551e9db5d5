package postgres

import (
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/adapters/out/postgres/orderrepo"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/adapters/out/postgres/rulesrepo"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/adapters/out/postgres/shipmentrepo"

	"gorm.io/gorm"
)

// Tables lists every table owned by the adapter, children after parents.
var Tables = []string{
	"orders", "order_lines",
	"split_shipments", "split_events",
	"cutoff_rule_sets", "division_cutoff_rules", "blackout_windows",
}

// Migrate creates or updates the schema of all repositories.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.LineDTO{},
		&shipmentrepo.SplitShipmentDTO{},
		&shipmentrepo.SplitEventDTO{},
		&rulesrepo.CutoffRuleSetDTO{},
		&rulesrepo.DivisionRuleDTO{},
		&rulesrepo.BlackoutDTO{},
	)
}
