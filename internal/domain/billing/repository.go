package billing

import (
	"context"
	"time"
)

// ClaimFilter defines filtering and offset pagination for claim list queries.
// Filters are conjunctive; results are ordered by primary key for stable
// pagination.
type ClaimFilter struct {
	PatientID *string
	Status    *ClaimStatus
	Skip      int
	Limit     int
}

// ClaimRepository persists the Claim aggregate
type ClaimRepository interface {
	// Create inserts the claim and all of its items atomically
	Create(ctx context.Context, claim *Claim) error
	// FindByID loads a claim with its items; shared.ErrNotFound when absent
	FindByID(ctx context.Context, id string) (*Claim, error)
	// FindAll lists claims (with items) matching the filter
	FindAll(ctx context.Context, filter ClaimFilter) ([]Claim, error)
	// Update persists mutable claim fields (status, insurance reference)
	Update(ctx context.Context, claim *Claim) error
}

// InvoiceFilter defines filtering and offset pagination for invoice lists
type InvoiceFilter struct {
	PatientID *string
	Status    *InvoiceStatus
	Skip      int
	Limit     int
}

// InvoiceRepository persists the Invoice aggregate
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *Invoice) error
	FindByID(ctx context.Context, id string) (*Invoice, error)
	FindAll(ctx context.Context, filter InvoiceFilter) ([]Invoice, error)
	// Settle performs the conditional settlement update: status and
	// settled_at are written only when the current status is not already
	// settled. Returns true when this call performed the transition, false
	// when the invoice was already settled. shared.ErrNotFound when absent.
	Settle(ctx context.Context, id string, settledAt time.Time) (bool, error)
	// Update overwrites mutable invoice fields without the settlement guard
	Update(ctx context.Context, invoice *Invoice) error
}

// EligibilityFilter defines conjunctive filters for the eligibility log
type EligibilityFilter struct {
	PatientID   *string
	InsuranceID *string
	Limit       int
}

// EligibilityRepository persists the append-only eligibility check log
type EligibilityRepository interface {
	// Append inserts a new check row and fills in the generated row ID
	Append(ctx context.Context, check *EligibilityCheck) error
	// History returns checks matching the filter, most recent first
	History(ctx context.Context, filter EligibilityFilter) ([]EligibilityCheck, error)
}
