package billing

import (
	"context"
	"time"

	"github.com/clinova/billing-service/internal/domain/billing"
	"github.com/clinova/billing-service/internal/infrastructure/event"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InvoiceService provides application-level invoice operations
type InvoiceService struct {
	invoiceRepo billing.InvoiceRepository
	publisher   event.Publisher
	logger      *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoiceRepo billing.InvoiceRepository, publisher event.Publisher, logger *zap.Logger) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		publisher:   publisher,
		logger:      logger.Named("invoices"),
	}
}

// CreateInvoiceRequest represents a request to create a new invoice
type CreateInvoiceRequest struct {
	ClaimID   *string         `json:"claim_id" binding:"omitempty,max=50"`
	PatientID string          `json:"patient_id" binding:"required,max=50"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Currency  string          `json:"currency" binding:"omitempty,len=3"`
}

// UpdateInvoiceRequest represents a direct status overwrite. This bypasses
// the settlement idempotency guard and exists for administrative correction.
type UpdateInvoiceRequest struct {
	Status *string `json:"status" binding:"omitempty,oneof=pending settled cancelled"`
}

// ListInvoicesFilter defines query parameters for invoice list requests
type ListInvoicesFilter struct {
	PatientID *string `form:"patient_id"`
	Status    *string `form:"status" binding:"omitempty,oneof=pending settled cancelled"`
	Skip      int     `form:"skip" binding:"omitempty,min=0"`
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=1000"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID        string     `json:"id"`
	ClaimID   *string    `json:"claim_id"`
	PatientID string     `json:"patient_id"`
	Amount    float64    `json:"amount"`
	Currency  string     `json:"currency"`
	Status    string     `json:"status"`
	SettledAt *time.Time `json:"settled_at"`
	CreatedAt time.Time  `json:"created_at"`
}

func toInvoiceResponse(i *billing.Invoice) *InvoiceResponse {
	return &InvoiceResponse{
		ID:        i.ID,
		ClaimID:   i.ClaimID,
		PatientID: i.PatientID,
		Amount:    i.Amount.InexactFloat64(),
		Currency:  i.Currency,
		Status:    i.Status.String(),
		SettledAt: i.SettledAt,
		CreatedAt: i.CreatedAt,
	}
}

// Create creates a pending invoice. No event is published on creation.
func (s *InvoiceService) Create(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	currency := req.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	invoice, err := billing.NewInvoice(req.ClaimID, req.PatientID, req.Amount, currency)
	if err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice), nil
}

// Get fetches an invoice by ID
func (s *InvoiceService) Get(ctx context.Context, id string) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice), nil
}

// List returns invoices matching the filter. Limit defaults to 100.
func (s *InvoiceService) List(ctx context.Context, filter ListInvoicesFilter) ([]InvoiceResponse, error) {
	limit := filter.Limit
	if limit == 0 {
		limit = 100
	}

	repoFilter := billing.InvoiceFilter{
		PatientID: filter.PatientID,
		Skip:      filter.Skip,
		Limit:     limit,
	}
	if filter.Status != nil {
		status := billing.InvoiceStatus(*filter.Status)
		repoFilter.Status = &status
	}

	invoices, err := s.invoiceRepo.FindAll(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		responses = append(responses, *toInvoiceResponse(&invoices[i]))
	}
	return responses, nil
}

// Settle transitions an invoice to settled and publishes an InvoiceSettled
// event. The transition is a conditional atomic update, so concurrent settle
// requests produce at most one event per invoice. Settling an already
// settled invoice returns the unchanged record without re-publishing.
func (s *InvoiceService) Settle(ctx context.Context, id string) (*InvoiceResponse, error) {
	transitioned, err := s.invoiceRepo.Settle(ctx, id, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if transitioned {
		payload := billing.NewInvoiceSettledPayload(invoice)
		if !s.publisher.Publish(ctx, billing.EventTypeInvoiceSettled, billing.ResourceTypeInvoice, payload) {
			s.logger.Warn("InvoiceSettled event not published", zap.String("invoice_id", invoice.ID))
		}
	}

	return toInvoiceResponse(invoice), nil
}

// Update overwrites the invoice status directly, bypassing the settlement
// guard. No event is published for updates.
func (s *InvoiceService) Update(ctx context.Context, id string, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		if err := invoice.ChangeStatus(billing.InvoiceStatus(*req.Status)); err != nil {
			return nil, err
		}
		if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
			return nil, err
		}
	}

	return toInvoiceResponse(invoice), nil
}
