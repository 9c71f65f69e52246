package billing

import (
	"time"

	"github.com/clinova/billing-service/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ClaimStatus represents the processing status of a claim
type ClaimStatus string

const (
	ClaimStatusPending    ClaimStatus = "pending"
	ClaimStatusApproved   ClaimStatus = "approved"
	ClaimStatusRejected   ClaimStatus = "rejected"
	ClaimStatusProcessing ClaimStatus = "processing"
)

// IsValid checks if the status is a valid ClaimStatus
func (s ClaimStatus) IsValid() bool {
	switch s {
	case ClaimStatusPending, ClaimStatusApproved, ClaimStatusRejected, ClaimStatusProcessing:
		return true
	}
	return false
}

// String returns the string representation of ClaimStatus
func (s ClaimStatus) String() string {
	return string(s)
}

// ClaimItem is a line item within a Claim. Items are immutable once the
// claim has been created.
type ClaimItem struct {
	ID          int64
	ClaimID     string
	Description string
	Code        *string
	Value       decimal.Decimal
	Quantity    int
	CreatedAt   time.Time
}

// Claim is the claim aggregate root. The ID is an opaque generated string
// (CLM + 6 uppercase hex chars) and is immutable after creation.
type Claim struct {
	ID          string
	PatientID   string
	InsuranceID *string
	Amount      decimal.Decimal
	Currency    string
	Status      ClaimStatus
	Items       []ClaimItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewClaim creates a pending claim with a freshly generated ID and validated
// line items. The persistence layer's primary-key constraint remains the
// authoritative guard against ID collisions.
func NewClaim(patientID string, insuranceID *string, amount decimal.Decimal, currency string, items []ClaimItem) (*Claim, error) {
	if patientID == "" {
		return nil, shared.NewDomainError("INVALID_PATIENT", "Patient ID is required")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be non-negative")
	}
	if len(currency) != 3 {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency must be a 3-letter code")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS", "At least one claim item is required")
	}

	id := NewClaimID()
	now := time.Now().UTC()

	claim := &Claim{
		ID:          id,
		PatientID:   patientID,
		InsuranceID: insuranceID,
		Amount:      amount.Round(2),
		Currency:    currency,
		Status:      ClaimStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	claim.Items = make([]ClaimItem, 0, len(items))
	for _, item := range items {
		if item.Description == "" {
			return nil, shared.NewDomainError("INVALID_ITEM", "Item description is required")
		}
		if item.Quantity < 1 {
			return nil, shared.NewDomainError("INVALID_ITEM", "Item quantity must be at least 1")
		}
		item.ClaimID = id
		item.Value = item.Value.Round(2)
		item.CreatedAt = now
		claim.Items = append(claim.Items, item)
	}

	return claim, nil
}

// ChangeStatus updates the claim status
func (c *Claim) ChangeStatus(status ClaimStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown claim status: "+status.String())
	}
	c.Status = status
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// AssignInsurance sets or replaces the insurance reference
func (c *Claim) AssignInsurance(insuranceID string) {
	c.InsuranceID = &insuranceID
	c.UpdatedAt = time.Now().UTC()
}
