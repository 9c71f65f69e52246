package billing

import "time"

// Event type and resource names published to the billing events topic
const (
	EventTypeClaimSubmitted = "ClaimSubmitted"
	EventTypeInvoiceSettled = "InvoiceSettled"

	ResourceTypeClaim   = "Claim"
	ResourceTypeInvoice = "Invoice"
)

// Event payloads are the downstream consumer contract: field names are
// camelCase and deliberately distinct from the snake_case storage model.
// Amounts are serialized as floats and timestamps as ISO-8601 UTC with
// 6-digit microseconds and a trailing "Z".

// EventTimestamp formats a time for event payloads and envelopes
func EventTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000000") + "Z"
}

// ClaimItemPayload mirrors a claim line item in the ClaimSubmitted event
type ClaimItemPayload struct {
	Description string  `json:"description"`
	Code        *string `json:"code"`
	Value       float64 `json:"value"`
	Quantity    int     `json:"quantity"`
}

// ClaimSubmittedPayload is the data section of a ClaimSubmitted event
type ClaimSubmittedPayload struct {
	ID          string             `json:"id"`
	PatientID   string             `json:"patientId"`
	InsuranceID *string            `json:"insuranceId"`
	Amount      float64            `json:"amount"`
	Currency    string             `json:"currency"`
	Status      string             `json:"status"`
	Items       []ClaimItemPayload `json:"items"`
	CreatedAt   string             `json:"createdAt"`
}

// PartitionKey returns the routing key used when publishing the event
func (p ClaimSubmittedPayload) PartitionKey() string {
	return p.ID
}

// NewClaimSubmittedPayload builds the event payload from a claim aggregate
func NewClaimSubmittedPayload(c *Claim) ClaimSubmittedPayload {
	items := make([]ClaimItemPayload, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, ClaimItemPayload{
			Description: item.Description,
			Code:        item.Code,
			Value:       item.Value.InexactFloat64(),
			Quantity:    item.Quantity,
		})
	}
	return ClaimSubmittedPayload{
		ID:          c.ID,
		PatientID:   c.PatientID,
		InsuranceID: c.InsuranceID,
		Amount:      c.Amount.InexactFloat64(),
		Currency:    c.Currency,
		Status:      c.Status.String(),
		Items:       items,
		CreatedAt:   EventTimestamp(c.CreatedAt),
	}
}

// InvoiceSettledPayload is the data section of an InvoiceSettled event
type InvoiceSettledPayload struct {
	ID        string  `json:"id"`
	ClaimID   *string `json:"claimId"`
	PatientID string  `json:"patientId"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Status    string  `json:"status"`
	SettledAt *string `json:"settledAt"`
	CreatedAt string  `json:"createdAt"`
}

// PartitionKey returns the routing key used when publishing the event
func (p InvoiceSettledPayload) PartitionKey() string {
	return p.ID
}

// NewInvoiceSettledPayload builds the event payload from an invoice
func NewInvoiceSettledPayload(i *Invoice) InvoiceSettledPayload {
	var settledAt *string
	if i.SettledAt != nil {
		s := EventTimestamp(*i.SettledAt)
		settledAt = &s
	}
	return InvoiceSettledPayload{
		ID:        i.ID,
		ClaimID:   i.ClaimID,
		PatientID: i.PatientID,
		Amount:    i.Amount.InexactFloat64(),
		Currency:  i.Currency,
		Status:    i.Status.String(),
		SettledAt: settledAt,
		CreatedAt: EventTimestamp(i.CreatedAt),
	}
}
