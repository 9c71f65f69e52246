package billing

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClaimSubmittedPayload(t *testing.T) {
	insurance := "INS-42"
	claim, err := NewClaim("PAT-009", &insurance, decimal.NewFromFloat(225.50), "BRL", []ClaimItem{
		{Description: "MRI scan", Value: decimal.NewFromFloat(225.50), Quantity: 1},
	})
	require.NoError(t, err)
	claim.CreatedAt = time.Date(2026, 3, 14, 9, 26, 53, 589000000, time.UTC)

	payload := NewClaimSubmittedPayload(claim)

	assert.Equal(t, claim.ID, payload.ID)
	assert.Equal(t, claim.ID, payload.PartitionKey())
	assert.Equal(t, 225.50, payload.Amount)
	assert.Equal(t, "pending", payload.Status)
	assert.Equal(t, "2026-03-14T09:26:53.589000Z", payload.CreatedAt)
	require.Len(t, payload.Items, 1)
	assert.Equal(t, 225.50, payload.Items[0].Value)

	// The consumer contract is camelCase
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"patientId"`)
	assert.Contains(t, string(raw), `"insuranceId"`)
	assert.Contains(t, string(raw), `"createdAt"`)
	assert.NotContains(t, string(raw), `"patient_id"`)
}

func TestEventTimestamp(t *testing.T) {
	// Fractional seconds are always padded to 6 digits
	assert.Equal(t, "2026-03-14T09:26:53.589000Z",
		EventTimestamp(time.Date(2026, 3, 14, 9, 26, 53, 589000000, time.UTC)))
	assert.Equal(t, "2026-03-14T10:00:00.000000Z",
		EventTimestamp(time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2026-03-14T07:00:00.000001Z",
		EventTimestamp(time.Date(2026, 3, 14, 10, 0, 0, 1000, time.FixedZone("BRT", 3*3600))))
}

func TestNewInvoiceSettledPayload(t *testing.T) {
	invoice, err := NewInvoice(nil, "PAT-009", decimal.NewFromFloat(99.90), "BRL")
	require.NoError(t, err)

	t.Run("pending invoice has no settledAt", func(t *testing.T) {
		payload := NewInvoiceSettledPayload(invoice)
		assert.Nil(t, payload.SettledAt)
		assert.Equal(t, invoice.ID, payload.PartitionKey())
	})

	t.Run("settled invoice carries Z-suffixed timestamp", func(t *testing.T) {
		settled := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
		invoice.Status = InvoiceStatusSettled
		invoice.SettledAt = &settled

		payload := NewInvoiceSettledPayload(invoice)
		require.NotNil(t, payload.SettledAt)
		assert.Equal(t, "2026-03-14T10:00:00.000000Z", *payload.SettledAt)
		assert.Equal(t, "settled", payload.Status)
	})
}
