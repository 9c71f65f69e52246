package billing

import (
	"context"
	"time"

	"github.com/clinova/billing-service/internal/domain/billing"
	"github.com/clinova/billing-service/internal/infrastructure/event"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultCurrency is applied when a create request omits the currency
const DefaultCurrency = "BRL"

// ClaimService provides application-level claim operations
type ClaimService struct {
	claimRepo billing.ClaimRepository
	publisher event.Publisher
	logger    *zap.Logger
}

// NewClaimService creates a new ClaimService
func NewClaimService(claimRepo billing.ClaimRepository, publisher event.Publisher, logger *zap.Logger) *ClaimService {
	return &ClaimService{
		claimRepo: claimRepo,
		publisher: publisher,
		logger:    logger.Named("claims"),
	}
}

// ClaimItemRequest represents one line item in a claim creation request
type ClaimItemRequest struct {
	Description string          `json:"description" binding:"required,max=255"`
	Code        *string         `json:"code" binding:"omitempty,max=50"`
	Value       decimal.Decimal `json:"value" binding:"required"`
	Quantity    int             `json:"quantity" binding:"required,min=1"`
}

// CreateClaimRequest represents a request to create a new claim
type CreateClaimRequest struct {
	PatientID   string             `json:"patient_id" binding:"required,max=50"`
	InsuranceID *string            `json:"insurance_id" binding:"omitempty,max=100"`
	Amount      decimal.Decimal    `json:"amount" binding:"required"`
	Currency    string             `json:"currency" binding:"omitempty,len=3"`
	Items       []ClaimItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateClaimRequest represents a partial claim update; only non-nil fields
// are applied
type UpdateClaimRequest struct {
	Status      *string `json:"status" binding:"omitempty,oneof=pending approved rejected processing"`
	InsuranceID *string `json:"insurance_id" binding:"omitempty,max=100"`
}

// ListClaimsFilter defines query parameters for claim list requests
type ListClaimsFilter struct {
	PatientID *string `form:"patient_id"`
	Status    *string `form:"status" binding:"omitempty,oneof=pending approved rejected processing"`
	Skip      int     `form:"skip" binding:"omitempty,min=0"`
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=1000"`
}

// ClaimItemResponse represents a claim line item in API responses
type ClaimItemResponse struct {
	Description string  `json:"description"`
	Code        *string `json:"code"`
	Value       float64 `json:"value"`
	Quantity    int     `json:"quantity"`
}

// ClaimResponse represents a claim in API responses
type ClaimResponse struct {
	ID          string              `json:"id"`
	PatientID   string              `json:"patient_id"`
	InsuranceID *string             `json:"insurance_id"`
	Amount      float64             `json:"amount"`
	Currency    string              `json:"currency"`
	Status      string              `json:"status"`
	Items       []ClaimItemResponse `json:"items"`
	CreatedAt   time.Time           `json:"created_at"`
}

func toClaimResponse(c *billing.Claim) *ClaimResponse {
	items := make([]ClaimItemResponse, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, ClaimItemResponse{
			Description: item.Description,
			Code:        item.Code,
			Value:       item.Value.InexactFloat64(),
			Quantity:    item.Quantity,
		})
	}
	return &ClaimResponse{
		ID:          c.ID,
		PatientID:   c.PatientID,
		InsuranceID: c.InsuranceID,
		Amount:      c.Amount.InexactFloat64(),
		Currency:    c.Currency,
		Status:      c.Status.String(),
		Items:       items,
		CreatedAt:   c.CreatedAt,
	}
}

// Create creates a claim with its items in one transaction and publishes a
// ClaimSubmitted event. Publication is best-effort: a broker failure is
// logged and the creation still succeeds.
func (s *ClaimService) Create(ctx context.Context, req CreateClaimRequest) (*ClaimResponse, error) {
	currency := req.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	items := make([]billing.ClaimItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, billing.ClaimItem{
			Description: item.Description,
			Code:        item.Code,
			Value:       item.Value,
			Quantity:    item.Quantity,
		})
	}

	claim, err := billing.NewClaim(req.PatientID, req.InsuranceID, req.Amount, currency, items)
	if err != nil {
		return nil, err
	}

	if err := s.claimRepo.Create(ctx, claim); err != nil {
		return nil, err
	}

	payload := billing.NewClaimSubmittedPayload(claim)
	if !s.publisher.Publish(ctx, billing.EventTypeClaimSubmitted, billing.ResourceTypeClaim, payload) {
		s.logger.Warn("ClaimSubmitted event not published", zap.String("claim_id", claim.ID))
	}

	return toClaimResponse(claim), nil
}

// Get fetches a claim by ID with its items
func (s *ClaimService) Get(ctx context.Context, id string) (*ClaimResponse, error) {
	claim, err := s.claimRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toClaimResponse(claim), nil
}

// List returns claims matching the filter. Limit defaults to 100.
func (s *ClaimService) List(ctx context.Context, filter ListClaimsFilter) ([]ClaimResponse, error) {
	limit := filter.Limit
	if limit == 0 {
		limit = 100
	}

	repoFilter := billing.ClaimFilter{
		PatientID: filter.PatientID,
		Skip:      filter.Skip,
		Limit:     limit,
	}
	if filter.Status != nil {
		status := billing.ClaimStatus(*filter.Status)
		repoFilter.Status = &status
	}

	claims, err := s.claimRepo.FindAll(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]ClaimResponse, 0, len(claims))
	for i := range claims {
		responses = append(responses, *toClaimResponse(&claims[i]))
	}
	return responses, nil
}

// Update applies a partial update to a claim. No event is published for
// updates.
func (s *ClaimService) Update(ctx context.Context, id string, req UpdateClaimRequest) (*ClaimResponse, error) {
	claim, err := s.claimRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		if err := claim.ChangeStatus(billing.ClaimStatus(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.InsuranceID != nil {
		claim.AssignInsurance(*req.InsuranceID)
	}

	if err := s.claimRepo.Update(ctx, claim); err != nil {
		return nil, err
	}
	return toClaimResponse(claim), nil
}
