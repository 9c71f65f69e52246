package persistence

import (
	"context"
	"time"

	"github.com/clinova/billing-service/internal/domain/billing"
	"github.com/clinova/billing-service/internal/domain/shared"
	"github.com/clinova/billing-service/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormInvoiceRepository implements billing.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// Create inserts a new invoice. A primary-key collision on the generated ID
// surfaces as shared.ErrAlreadyExists.
func (r *GormInvoiceRepository) Create(ctx context.Context, invoice *billing.Invoice) error {
	return mapError(r.db.WithContext(ctx).Create(models.InvoiceModelFromDomain(invoice)).Error)
}

// FindByID loads an invoice by its ID
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id string) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, mapError(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists invoices matching the filter, ordered by primary key
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter billing.InvoiceFilter) ([]billing.Invoice, error) {
	query := r.db.WithContext(ctx).Model(&models.InvoiceModel{})
	if filter.PatientID != nil {
		query = query.Where("patient_id = ?", *filter.PatientID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var invoiceModels []models.InvoiceModel
	if err := query.Order("id").Offset(filter.Skip).Limit(filter.Limit).Find(&invoiceModels).Error; err != nil {
		return nil, mapError(err)
	}

	invoices := make([]billing.Invoice, 0, len(invoiceModels))
	for i := range invoiceModels {
		invoices = append(invoices, *invoiceModels[i].ToDomain())
	}
	return invoices, nil
}

// Settle performs the conditional settlement transition. The WHERE clause
// excludes already-settled rows, so under concurrent settle requests at most
// one caller observes the transition (and therefore publishes the event).
func (r *GormInvoiceRepository) Settle(ctx context.Context, id string, settledAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Where("id = ? AND status <> ?", id, billing.InvoiceStatusSettled).
		Updates(map[string]any{
			"status":     billing.InvoiceStatusSettled,
			"settled_at": settledAt,
			"updated_at": settledAt,
		})
	if result.Error != nil {
		return false, mapError(result.Error)
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	// No row transitioned: either the invoice is already settled or it does
	// not exist. Distinguish the two for the caller.
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Where("id = ?", id).Count(&count).Error; err != nil {
		return false, mapError(err)
	}
	if count == 0 {
		return false, shared.ErrNotFound
	}
	return false, nil
}

// Update overwrites mutable invoice fields without the settlement guard
func (r *GormInvoiceRepository) Update(ctx context.Context, invoice *billing.Invoice) error {
	result := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Where("id = ?", invoice.ID).
		Updates(map[string]any{
			"status":     invoice.Status,
			"updated_at": invoice.UpdatedAt,
		})
	if result.Error != nil {
		return mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
