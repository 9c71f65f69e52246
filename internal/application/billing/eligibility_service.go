package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/clinova/billing-service/internal/domain/billing"
	"github.com/clinova/billing-service/internal/infrastructure/cache"
	"go.uber.org/zap"
)

const (
	eligibilityCacheTTL = time.Hour

	// Bounds for the history query limit
	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
)

// DecisionFunc computes an eligibility decision for a (patient, insurance)
// pair. This is the seam for a future external eligibility authority; the
// default policy is unconditional.
type DecisionFunc func(patientID, insuranceID string) (bool, string)

// DefaultDecision always approves with a fixed message
func DefaultDecision(patientID, insuranceID string) (bool, string) {
	return true, "Patient eligible for the procedure"
}

// cachedDecision is the serialized form of a decision stored in the cache
type cachedDecision struct {
	IsEligible bool   `json:"is_eligible"`
	Message    string `json:"message"`
}

// EligibilityService orchestrates the cache-aside eligibility pipeline:
// cache lookup, decision, append-only persistence, cache population. The
// cache is strictly advisory; its absence or failure never surfaces to the
// caller.
type EligibilityService struct {
	eligibilityRepo billing.EligibilityRepository
	store           cache.Store
	decide          DecisionFunc
	logger          *zap.Logger
}

// NewEligibilityService creates a new EligibilityService with the default
// decision policy
func NewEligibilityService(eligibilityRepo billing.EligibilityRepository, store cache.Store, logger *zap.Logger) *EligibilityService {
	return &EligibilityService{
		eligibilityRepo: eligibilityRepo,
		store:           store,
		decide:          DefaultDecision,
		logger:          logger.Named("eligibility"),
	}
}

// WithDecision replaces the decision policy; used when wiring an external
// eligibility authority
func (s *EligibilityService) WithDecision(decide DecisionFunc) *EligibilityService {
	s.decide = decide
	return s
}

// CheckEligibilityRequest represents an eligibility check request
type CheckEligibilityRequest struct {
	PatientID   string `json:"patient_id" binding:"required,max=50"`
	InsuranceID string `json:"insurance_id" binding:"required,max=100"`
}

// EligibilityHistoryFilter defines query parameters for history requests.
// Filters are conjunctive and optional.
type EligibilityHistoryFilter struct {
	PatientID   *string `form:"patient_id"`
	InsuranceID *string `form:"insurance_id"`
	Limit       int     `form:"limit" binding:"omitempty,min=1,max=100"`
}

// EligibilityResponse represents an eligibility decision in API responses
type EligibilityResponse struct {
	PatientID   string    `json:"patient_id"`
	InsuranceID string    `json:"insurance_id"`
	IsEligible  bool      `json:"is_eligible"`
	Message     *string   `json:"message"`
	CheckedAt   time.Time `json:"checked_at"`
}

func toEligibilityResponse(c *billing.EligibilityCheck) *EligibilityResponse {
	return &EligibilityResponse{
		PatientID:   c.PatientID,
		InsuranceID: c.InsuranceID,
		IsEligible:  c.IsEligible,
		Message:     c.Message,
		CheckedAt:   c.CheckedAt,
	}
}

func cacheKey(patientID, insuranceID string) string {
	return fmt.Sprintf("eligibility:%s:%s", patientID, insuranceID)
}

// Check runs the cache-aside eligibility check. A cache hit is returned
// immediately stamped with the current time and is NOT appended to the log;
// a miss computes a fresh decision, appends it to the log and populates the
// cache with a one-hour TTL.
func (s *EligibilityService) Check(ctx context.Context, req CheckEligibilityRequest) (*EligibilityResponse, error) {
	key := cacheKey(req.PatientID, req.InsuranceID)

	if raw, ok := s.store.Get(ctx, key); ok {
		var cached cachedDecision
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			s.logger.Info("Eligibility served from cache", zap.String("patient_id", req.PatientID))
			check := billing.NewEligibilityCheck(req.PatientID, req.InsuranceID, cached.IsEligible, cached.Message)
			return toEligibilityResponse(check), nil
		}
		s.logger.Warn("Discarding malformed cache entry", zap.String("key", key))
	}

	isEligible, message := s.decide(req.PatientID, req.InsuranceID)

	check := billing.NewEligibilityCheck(req.PatientID, req.InsuranceID, isEligible, message)
	if err := s.eligibilityRepo.Append(ctx, check); err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(cachedDecision{IsEligible: isEligible, Message: message}); err == nil {
		if !s.store.Set(ctx, key, string(raw), eligibilityCacheTTL) {
			s.logger.Warn("Eligibility decision not cached", zap.String("key", key))
		}
	}

	return toEligibilityResponse(check), nil
}

// History returns past eligibility checks, most recent first. The limit is
// clamped to 1..100 and defaults to 10.
func (s *EligibilityService) History(ctx context.Context, filter EligibilityHistoryFilter) ([]EligibilityResponse, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	checks, err := s.eligibilityRepo.History(ctx, billing.EligibilityFilter{
		PatientID:   filter.PatientID,
		InsuranceID: filter.InsuranceID,
		Limit:       limit,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]EligibilityResponse, 0, len(checks))
	for i := range checks {
		responses = append(responses, *toEligibilityResponse(&checks[i]))
	}
	return responses, nil
}
