// Package rulesrepo persists cutoff rule sets: one row per location with its
// division rules and blackout windows in child tables.
package rulesrepo

import (
	"time"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/calendar"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/rules"

	"github.com/lib/pq"
)

// CutoffRuleSetDTO is the location row of a rule set.
type CutoffRuleSetDTO struct {
	LocationID string            `gorm:"type:varchar(64);primaryKey"`
	Timezone   string            `gorm:"type:varchar(64);not null"`
	Divisions  []DivisionRuleDTO `gorm:"foreignKey:LocationID;constraint:OnDelete:CASCADE"`
	Blackouts  []BlackoutDTO     `gorm:"foreignKey:LocationID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for rule sets.
func (CutoffRuleSetDTO) TableName() string {
	return "cutoff_rule_sets"
}

// DivisionRuleDTO stores one division's cutoff policy. ShipDays holds
// time.Weekday numbers (0 = Sunday).
type DivisionRuleDTO struct {
	LocationID           string        `gorm:"type:varchar(64);primaryKey"`
	Code                 string        `gorm:"type:varchar(32);primaryKey"`
	Cutoff               string        `gorm:"type:varchar(5);not null"`
	NextDayEnabled       bool          `gorm:"not null"`
	ShipDays             pq.Int32Array `gorm:"type:integer[];not null"`
	PickupSameDayEnabled bool          `gorm:"not null"`
}

// TableName specifies the database table name for division rules.
func (DivisionRuleDTO) TableName() string {
	return "division_cutoff_rules"
}

// BlackoutDTO stores one inclusive blackout window. Position keeps the order
// in which windows were configured.
type BlackoutDTO struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	LocationID string    `gorm:"type:varchar(64);not null;index"`
	Position   int       `gorm:"not null"`
	StartDate  time.Time `gorm:"type:date;not null"`
	EndDate    time.Time `gorm:"type:date;not null"`
	Reason     string
}

// TableName specifies the database table name for blackout windows.
func (BlackoutDTO) TableName() string {
	return "blackout_windows"
}

func fromDomain(ruleSet *rules.CutoffRuleSet) CutoffRuleSetDTO {
	dto := CutoffRuleSetDTO{
		LocationID: ruleSet.LocationID(),
		Timezone:   ruleSet.Timezone(),
	}

	for code, rule := range ruleSet.DivisionRules() {
		days := make(pq.Int32Array, 0, 7)
		for _, d := range rule.ShipDays().Days() {
			days = append(days, int32(d))
		}
		dto.Divisions = append(dto.Divisions, DivisionRuleDTO{
			LocationID:           dto.LocationID,
			Code:                 code,
			Cutoff:               rule.Cutoff().String(),
			NextDayEnabled:       rule.NextDayEnabled(),
			ShipDays:             days,
			PickupSameDayEnabled: rule.PickupSameDayEnabled(),
		})
	}

	for i, w := range ruleSet.Blackouts() {
		dto.Blackouts = append(dto.Blackouts, BlackoutDTO{
			LocationID: dto.LocationID,
			Position:   i,
			StartDate:  w.Start().Time(),
			EndDate:    w.End().Time(),
			Reason:     w.Reason(),
		})
	}

	return dto
}

// toDomain re-runs the domain constructors, so a row edited into an invalid
// state fails to load instead of producing wrong promises.
func toDomain(dto CutoffRuleSetDTO) (*rules.CutoffRuleSet, error) {
	divisions := make(map[string]rules.DivisionRule, len(dto.Divisions))
	for _, d := range dto.Divisions {
		cutoff, err := calendar.ParseClockTime(d.Cutoff)
		if err != nil {
			return nil, err
		}
		days := make([]int, 0, len(d.ShipDays))
		for _, day := range d.ShipDays {
			days = append(days, int(day))
		}
		shipDays, err := calendar.NewWeekdaySet(days...)
		if err != nil {
			return nil, err
		}
		rule, err := rules.NewDivisionRule(cutoff, d.NextDayEnabled, shipDays, d.PickupSameDayEnabled)
		if err != nil {
			return nil, err
		}
		divisions[d.Code] = rule
	}

	blackouts := make([]calendar.BlackoutWindow, 0, len(dto.Blackouts))
	for _, b := range dto.Blackouts {
		w, err := calendar.NewBlackoutWindow(calendar.DateOf(b.StartDate), calendar.DateOf(b.EndDate), b.Reason)
		if err != nil {
			return nil, err
		}
		blackouts = append(blackouts, w)
	}

	return rules.NewCutoffRuleSet(dto.LocationID, dto.Timezone, divisions, blackouts)
}
