package billing

import (
	"time"

	"github.com/clinova/billing-service/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the settlement status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusSettled   InvoiceStatus = "settled"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusSettled, InvoiceStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// Invoice is the invoice aggregate root. SettledAt is set if and only if
// Status is settled; settlement is a one-way transition.
type Invoice struct {
	ID        string
	ClaimID   *string
	PatientID string
	Amount    decimal.Decimal
	Currency  string
	Status    InvoiceStatus
	SettledAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewInvoice creates a pending invoice with a freshly generated ID.
// The claim reference is advisory and not enforced as a foreign key.
func NewInvoice(claimID *string, patientID string, amount decimal.Decimal, currency string) (*Invoice, error) {
	if patientID == "" {
		return nil, shared.NewDomainError("INVALID_PATIENT", "Patient ID is required")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be non-negative")
	}
	if len(currency) != 3 {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency must be a 3-letter code")
	}

	now := time.Now().UTC()
	return &Invoice{
		ID:        NewInvoiceID(),
		ClaimID:   claimID,
		PatientID: patientID,
		Amount:    amount.Round(2),
		Currency:  currency,
		Status:    InvoiceStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsSettled reports whether the invoice has already been settled
func (i *Invoice) IsSettled() bool {
	return i.Status == InvoiceStatusSettled
}

// ChangeStatus overwrites the invoice status directly. This is the
// administrative escape hatch used by PATCH updates; it does not maintain
// the settled_at timestamp and bypasses the settlement idempotency guard.
func (i *Invoice) ChangeStatus(status InvoiceStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown invoice status: "+status.String())
	}
	i.Status = status
	i.UpdatedAt = time.Now().UTC()
	return nil
}
