package models

import (
	"time"

	"github.com/clinova/billing-service/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// ClaimModel is the persistence model for the Claim aggregate root
type ClaimModel struct {
	ID          string              `gorm:"type:varchar(50);primaryKey"`
	PatientID   string              `gorm:"type:varchar(50);not null;index"`
	InsuranceID *string             `gorm:"type:varchar(100);index"`
	Amount      decimal.Decimal     `gorm:"type:decimal(10,2);not null"`
	Currency    string              `gorm:"type:varchar(3);not null;default:'BRL'"`
	Status      billing.ClaimStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt   time.Time           `gorm:"not null"`
	UpdatedAt   time.Time           `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ClaimModel) TableName() string {
	return "claims"
}

// ToDomain converts the persistence model to a domain Claim (without items)
func (m *ClaimModel) ToDomain() *billing.Claim {
	return &billing.Claim{
		ID:          m.ID,
		PatientID:   m.PatientID,
		InsuranceID: m.InsuranceID,
		Amount:      m.Amount,
		Currency:    m.Currency,
		Status:      m.Status,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ClaimModelFromDomain converts a domain Claim to its persistence model
func ClaimModelFromDomain(c *billing.Claim) *ClaimModel {
	return &ClaimModel{
		ID:          c.ID,
		PatientID:   c.PatientID,
		InsuranceID: c.InsuranceID,
		Amount:      c.Amount,
		Currency:    c.Currency,
		Status:      c.Status,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ClaimItemModel is the persistence model for claim line items
type ClaimItemModel struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	ClaimID     string          `gorm:"type:varchar(50);not null;index"`
	Description string          `gorm:"type:varchar(255);not null"`
	Code        *string         `gorm:"type:varchar(50)"`
	Value       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity    int             `gorm:"not null;default:1"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ClaimItemModel) TableName() string {
	return "claim_items"
}

// ToDomain converts the persistence model to a domain ClaimItem
func (m *ClaimItemModel) ToDomain() billing.ClaimItem {
	return billing.ClaimItem{
		ID:          m.ID,
		ClaimID:     m.ClaimID,
		Description: m.Description,
		Code:        m.Code,
		Value:       m.Value,
		Quantity:    m.Quantity,
		CreatedAt:   m.CreatedAt,
	}
}

// ClaimItemModelFromDomain converts a domain ClaimItem to its persistence model
func ClaimItemModelFromDomain(item billing.ClaimItem) *ClaimItemModel {
	return &ClaimItemModel{
		ID:          item.ID,
		ClaimID:     item.ClaimID,
		Description: item.Description,
		Code:        item.Code,
		Value:       item.Value,
		Quantity:    item.Quantity,
		CreatedAt:   item.CreatedAt,
	}
}

// InvoiceModel is the persistence model for the Invoice aggregate root
type InvoiceModel struct {
	ID        string                `gorm:"type:varchar(50);primaryKey"`
	ClaimID   *string               `gorm:"type:varchar(50);index"`
	PatientID string                `gorm:"type:varchar(50);not null;index"`
	Amount    decimal.Decimal       `gorm:"type:decimal(10,2);not null"`
	Currency  string                `gorm:"type:varchar(3);not null;default:'BRL'"`
	Status    billing.InvoiceStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	SettledAt *time.Time
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	return &billing.Invoice{
		ID:        m.ID,
		ClaimID:   m.ClaimID,
		PatientID: m.PatientID,
		Amount:    m.Amount,
		Currency:  m.Currency,
		Status:    m.Status,
		SettledAt: m.SettledAt,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// InvoiceModelFromDomain converts a domain Invoice to its persistence model
func InvoiceModelFromDomain(i *billing.Invoice) *InvoiceModel {
	return &InvoiceModel{
		ID:        i.ID,
		ClaimID:   i.ClaimID,
		PatientID: i.PatientID,
		Amount:    i.Amount,
		Currency:  i.Currency,
		Status:    i.Status,
		SettledAt: i.SettledAt,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

// EligibilityCheckModel is the persistence model for the append-only
// eligibility check log
type EligibilityCheckModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	PatientID   string    `gorm:"type:varchar(50);not null;index"`
	InsuranceID string    `gorm:"type:varchar(100);not null;index"`
	IsEligible  bool      `gorm:"not null;default:false"`
	Message     *string   `gorm:"type:text"`
	CheckedAt   time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (EligibilityCheckModel) TableName() string {
	return "eligibility_checks"
}

// ToDomain converts the persistence model to a domain EligibilityCheck
func (m *EligibilityCheckModel) ToDomain() billing.EligibilityCheck {
	return billing.EligibilityCheck{
		ID:          m.ID,
		PatientID:   m.PatientID,
		InsuranceID: m.InsuranceID,
		IsEligible:  m.IsEligible,
		Message:     m.Message,
		CheckedAt:   m.CheckedAt,
	}
}

// EligibilityCheckModelFromDomain converts a domain check to its persistence model
func EligibilityCheckModelFromDomain(c *billing.EligibilityCheck) *EligibilityCheckModel {
	return &EligibilityCheckModel{
		ID:          c.ID,
		PatientID:   c.PatientID,
		InsuranceID: c.InsuranceID,
		IsEligible:  c.IsEligible,
		Message:     c.Message,
		CheckedAt:   c.CheckedAt,
	}
}
