package persistence

import (
	"context"

	"github.com/clinova/billing-service/internal/domain/billing"
	"github.com/clinova/billing-service/internal/domain/shared"
	"github.com/clinova/billing-service/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormClaimRepository implements billing.ClaimRepository using GORM
type GormClaimRepository struct {
	db *gorm.DB
}

// NewGormClaimRepository creates a new GormClaimRepository
func NewGormClaimRepository(db *gorm.DB) *GormClaimRepository {
	return &GormClaimRepository{db: db}
}

// Create inserts the claim and all of its items within a single transaction.
// A primary-key collision on the generated claim ID surfaces as
// shared.ErrAlreadyExists; nothing is persisted in that case.
func (r *GormClaimRepository) Create(ctx context.Context, claim *billing.Claim) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(models.ClaimModelFromDomain(claim)).Error; err != nil {
			return err
		}
		for i := range claim.Items {
			item := models.ClaimItemModelFromDomain(claim.Items[i])
			if err := tx.Create(item).Error; err != nil {
				return err
			}
			claim.Items[i].ID = item.ID
		}
		return nil
	})
	return mapError(err)
}

// FindByID loads a claim together with its line items
func (r *GormClaimRepository) FindByID(ctx context.Context, id string) (*billing.Claim, error) {
	var model models.ClaimModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, mapError(err)
	}

	claim := model.ToDomain()
	items, err := r.findItems(ctx, id)
	if err != nil {
		return nil, err
	}
	claim.Items = items
	return claim, nil
}

// FindAll lists claims matching the filter, ordered by primary key
func (r *GormClaimRepository) FindAll(ctx context.Context, filter billing.ClaimFilter) ([]billing.Claim, error) {
	query := r.db.WithContext(ctx).Model(&models.ClaimModel{})
	if filter.PatientID != nil {
		query = query.Where("patient_id = ?", *filter.PatientID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var claimModels []models.ClaimModel
	if err := query.Order("id").Offset(filter.Skip).Limit(filter.Limit).Find(&claimModels).Error; err != nil {
		return nil, mapError(err)
	}

	claims := make([]billing.Claim, 0, len(claimModels))
	for i := range claimModels {
		claim := claimModels[i].ToDomain()
		items, err := r.findItems(ctx, claim.ID)
		if err != nil {
			return nil, err
		}
		claim.Items = items
		claims = append(claims, *claim)
	}
	return claims, nil
}

// Update persists the mutable fields of a claim. Items are immutable and
// never touched here.
func (r *GormClaimRepository) Update(ctx context.Context, claim *billing.Claim) error {
	result := r.db.WithContext(ctx).Model(&models.ClaimModel{}).
		Where("id = ?", claim.ID).
		Updates(map[string]any{
			"status":       claim.Status,
			"insurance_id": claim.InsuranceID,
			"updated_at":   claim.UpdatedAt,
		})
	if result.Error != nil {
		return mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormClaimRepository) findItems(ctx context.Context, claimID string) ([]billing.ClaimItem, error) {
	var itemModels []models.ClaimItemModel
	if err := r.db.WithContext(ctx).
		Where("claim_id = ?", claimID).
		Order("id").
		Find(&itemModels).Error; err != nil {
		return nil, mapError(err)
	}
	items := make([]billing.ClaimItem, 0, len(itemModels))
	for i := range itemModels {
		items = append(items, itemModels[i].ToDomain())
	}
	return items, nil
}
