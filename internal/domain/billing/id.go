package billing

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// NewClaimID generates a claim identifier in the form CLM + 6 uppercase hex
// characters. The 24-bit random space is deliberately small; the database
// primary-key constraint is the authoritative collision guard and a
// violation surfaces as a creation failure.
func NewClaimID() string {
	return "CLM" + randomHex6()
}

// NewInvoiceID generates an invoice identifier in the form INV + 6 uppercase
// hex characters
func NewInvoiceID() string {
	return "INV" + randomHex6()
}

func randomHex6() string {
	u := uuid.New()
	return strings.ToUpper(hex.EncodeToString(u[:3]))
}
