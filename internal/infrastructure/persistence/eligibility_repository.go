package persistence

import (
	"context"

	"github.com/clinova/billing-service/internal/domain/billing"
	"github.com/clinova/billing-service/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormEligibilityRepository implements billing.EligibilityRepository using GORM
type GormEligibilityRepository struct {
	db *gorm.DB
}

// NewGormEligibilityRepository creates a new GormEligibilityRepository
func NewGormEligibilityRepository(db *gorm.DB) *GormEligibilityRepository {
	return &GormEligibilityRepository{db: db}
}

// Append inserts a new eligibility check row into the append-only log
func (r *GormEligibilityRepository) Append(ctx context.Context, check *billing.EligibilityCheck) error {
	model := models.EligibilityCheckModelFromDomain(check)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return mapError(err)
	}
	check.ID = model.ID
	return nil
}

// History returns eligibility checks matching the filter, most recent first
func (r *GormEligibilityRepository) History(ctx context.Context, filter billing.EligibilityFilter) ([]billing.EligibilityCheck, error) {
	query := r.db.WithContext(ctx).Model(&models.EligibilityCheckModel{})
	if filter.PatientID != nil {
		query = query.Where("patient_id = ?", *filter.PatientID)
	}
	if filter.InsuranceID != nil {
		query = query.Where("insurance_id = ?", *filter.InsuranceID)
	}

	var checkModels []models.EligibilityCheckModel
	if err := query.Order("checked_at DESC").Limit(filter.Limit).Find(&checkModels).Error; err != nil {
		return nil, mapError(err)
	}

	checks := make([]billing.EligibilityCheck, 0, len(checkModels))
	for i := range checkModels {
		checks = append(checks, checkModels[i].ToDomain())
	}
	return checks, nil
}
