package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/clinova/billing-service/internal/domain/billing"
	"github.com/clinova/billing-service/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInvoice(t *testing.T, patientID string) *billing.Invoice {
	t.Helper()
	invoice, err := billing.NewInvoice(nil, patientID, decimal.NewFromFloat(250.00), "BRL")
	require.NoError(t, err)
	return invoice
}

func TestGormInvoiceRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	claimID := "CLM1A2B3C"
	invoice, err := billing.NewInvoice(&claimID, "PAT-001", decimal.NewFromFloat(250.00), "BRL")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, invoice))

	found, err := repo.FindByID(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, invoice.ID, found.ID)
	assert.Equal(t, billing.InvoiceStatusPending, found.Status)
	assert.Nil(t, found.SettledAt)
	require.NotNil(t, found.ClaimID)
	assert.Equal(t, claimID, *found.ClaimID)
}

func TestGormInvoiceRepository_CreateDuplicateID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	invoice := newTestInvoice(t, "PAT-001")
	require.NoError(t, repo.Create(ctx, invoice))

	duplicate := newTestInvoice(t, "PAT-002")
	duplicate.ID = invoice.ID
	assert.ErrorIs(t, repo.Create(ctx, duplicate), shared.ErrAlreadyExists)
}

func TestGormInvoiceRepository_Settle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	invoice := newTestInvoice(t, "PAT-001")
	require.NoError(t, repo.Create(ctx, invoice))

	settledAt := time.Now().UTC().Truncate(time.Second)

	t.Run("first settle performs the transition", func(t *testing.T) {
		transitioned, err := repo.Settle(ctx, invoice.ID, settledAt)
		require.NoError(t, err)
		assert.True(t, transitioned)

		found, err := repo.FindByID(ctx, invoice.ID)
		require.NoError(t, err)
		assert.Equal(t, billing.InvoiceStatusSettled, found.Status)
		require.NotNil(t, found.SettledAt)
		assert.True(t, found.SettledAt.Equal(settledAt))
	})

	t.Run("second settle is a no-op", func(t *testing.T) {
		transitioned, err := repo.Settle(ctx, invoice.ID, settledAt.Add(time.Hour))
		require.NoError(t, err)
		assert.False(t, transitioned)

		// The original settlement timestamp is preserved
		found, err := repo.FindByID(ctx, invoice.ID)
		require.NoError(t, err)
		require.NotNil(t, found.SettledAt)
		assert.True(t, found.SettledAt.Equal(settledAt))
	})

	t.Run("unknown invoice", func(t *testing.T) {
		_, err := repo.Settle(ctx, "INV000000", settledAt)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("cancelled invoice still settles", func(t *testing.T) {
		cancelled := newTestInvoice(t, "PAT-002")
		require.NoError(t, repo.Create(ctx, cancelled))
		require.NoError(t, cancelled.ChangeStatus(billing.InvoiceStatusCancelled))
		require.NoError(t, repo.Update(ctx, cancelled))

		transitioned, err := repo.Settle(ctx, cancelled.ID, settledAt)
		require.NoError(t, err)
		assert.True(t, transitioned)
	})
}

func TestGormInvoiceRepository_FindAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	for _, patient := range []string{"PAT-001", "PAT-001", "PAT-002"} {
		require.NoError(t, repo.Create(ctx, newTestInvoice(t, patient)))
	}
	settled := newTestInvoice(t, "PAT-003")
	require.NoError(t, repo.Create(ctx, settled))
	_, err := repo.Settle(ctx, settled.ID, time.Now().UTC())
	require.NoError(t, err)

	t.Run("filter by patient", func(t *testing.T) {
		patient := "PAT-001"
		invoices, err := repo.FindAll(ctx, billing.InvoiceFilter{PatientID: &patient, Limit: 100})
		require.NoError(t, err)
		assert.Len(t, invoices, 2)
	})

	t.Run("filter by status", func(t *testing.T) {
		status := billing.InvoiceStatusSettled
		invoices, err := repo.FindAll(ctx, billing.InvoiceFilter{Status: &status, Limit: 100})
		require.NoError(t, err)
		require.Len(t, invoices, 1)
		assert.Equal(t, settled.ID, invoices[0].ID)
	})

	t.Run("pagination", func(t *testing.T) {
		page, err := repo.FindAll(ctx, billing.InvoiceFilter{Skip: 2, Limit: 100})
		require.NoError(t, err)
		assert.Len(t, page, 2)
	})
}

func TestGormInvoiceRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	invoice := newTestInvoice(t, "PAT-001")
	require.NoError(t, repo.Create(ctx, invoice))

	require.NoError(t, invoice.ChangeStatus(billing.InvoiceStatusCancelled))
	require.NoError(t, repo.Update(ctx, invoice))

	found, err := repo.FindByID(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, billing.InvoiceStatusCancelled, found.Status)

	t.Run("not found", func(t *testing.T) {
		missing := newTestInvoice(t, "PAT-009")
		assert.ErrorIs(t, repo.Update(ctx, missing), shared.ErrNotFound)
	})
}
