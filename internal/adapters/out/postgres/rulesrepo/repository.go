package rulesrepo

import (
	"context"
	"errors"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/rules"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCutoffRuleRepository implements CutoffRuleRepository using GORM.
type GormCutoffRuleRepository struct {
	db *gorm.DB
}

// NewGormCutoffRuleRepository creates a new GORM cutoff rule repository.
func NewGormCutoffRuleRepository(db *gorm.DB) *GormCutoffRuleRepository {
	return &GormCutoffRuleRepository{db: db}
}

// Get retrieves the rule set of a location.
func (r *GormCutoffRuleRepository) Get(ctx context.Context, locationID string) (*rules.CutoffRuleSet, error) {
	var dto CutoffRuleSetDTO
	err := r.db.WithContext(ctx).
		Preload("Divisions").
		Preload("Blackouts", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&dto, "location_id = ?", locationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("locationId", locationID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// Save replaces the rule set of its location. Child rows are deleted and
// written again, so Save must run inside a transaction to be atomic.
func (r *GormCutoffRuleRepository) Save(ctx context.Context, ruleSet *rules.CutoffRuleSet) error {
	if err := ruleSet.Validate(); err != nil {
		return err
	}

	dto := fromDomain(ruleSet)
	db := r.db.WithContext(ctx)

	if err := db.Where("location_id = ?", dto.LocationID).Delete(&DivisionRuleDTO{}).Error; err != nil {
		return err
	}
	if err := db.Where("location_id = ?", dto.LocationID).Delete(&BlackoutDTO{}).Error; err != nil {
		return err
	}

	location := CutoffRuleSetDTO{LocationID: dto.LocationID, Timezone: dto.Timezone}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "location_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"timezone"}),
	}).Create(&location).Error; err != nil {
		return err
	}

	if len(dto.Divisions) > 0 {
		if err := db.Create(&dto.Divisions).Error; err != nil {
			return err
		}
	}
	if len(dto.Blackouts) > 0 {
		if err := db.Create(&dto.Blackouts).Error; err != nil {
			return err
		}
	}

	return nil
}
