package billing

import (
	"time"
)

// EligibilityCheck is a single entry in the append-only eligibility log.
// Rows are never updated after insertion; the cache holds only the most
// recent decision per (patient, insurance) pair.
type EligibilityCheck struct {
	ID          int64
	PatientID   string
	InsuranceID string
	IsEligible  bool
	Message     *string
	CheckedAt   time.Time
}

// NewEligibilityCheck creates a fresh eligibility log entry stamped now
func NewEligibilityCheck(patientID, insuranceID string, isEligible bool, message string) *EligibilityCheck {
	var msg *string
	if message != "" {
		msg = &message
	}
	return &EligibilityCheck{
		PatientID:   patientID,
		InsuranceID: insuranceID,
		IsEligible:  isEligible,
		Message:     msg,
		CheckedAt:   time.Now().UTC(),
	}
}
