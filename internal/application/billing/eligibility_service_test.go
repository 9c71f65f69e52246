package billing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEligibilityServiceCheck(t *testing.T) {
	ctx := context.Background()
	req := CheckEligibilityRequest{PatientID: "PAT-001", InsuranceID: "INS-001"}

	t.Run("miss computes, persists and caches the decision", func(t *testing.T) {
		_, _, eligibilityRepo := newRepos(t)
		store := newMapStore()
		service := NewEligibilityService(eligibilityRepo, store, zap.NewNop())

		resp, err := service.Check(ctx, req)
		require.NoError(t, err)
		assert.True(t, resp.IsEligible)
		require.NotNil(t, resp.Message)
		assert.Equal(t, "Patient eligible for the procedure", *resp.Message)

		cached, ok := store.Get(ctx, "eligibility:PAT-001:INS-001")
		require.True(t, ok)
		assert.JSONEq(t, `{"is_eligible":true,"message":"Patient eligible for the procedure"}`, cached)

		history, err := service.History(ctx, EligibilityHistoryFilter{})
		require.NoError(t, err)
		assert.Len(t, history, 1)
	})

	t.Run("hit skips the decision and appends no log row", func(t *testing.T) {
		_, _, eligibilityRepo := newRepos(t)
		store := newMapStore()
		decisions := 0
		service := NewEligibilityService(eligibilityRepo, store, zap.NewNop()).
			WithDecision(func(patientID, insuranceID string) (bool, string) {
				decisions++
				return false, "denied by policy"
			})

		first, err := service.Check(ctx, req)
		require.NoError(t, err)
		assert.False(t, first.IsEligible)
		assert.Equal(t, 1, decisions)

		second, err := service.Check(ctx, req)
		require.NoError(t, err)
		assert.False(t, second.IsEligible)
		require.NotNil(t, second.Message)
		assert.Equal(t, "denied by policy", *second.Message)
		assert.Equal(t, 1, decisions)

		history, err := service.History(ctx, EligibilityHistoryFilter{})
		require.NoError(t, err)
		assert.Len(t, history, 1)
	})

	t.Run("distinct pairs are cached independently", func(t *testing.T) {
		_, _, eligibilityRepo := newRepos(t)
		store := newMapStore()
		service := NewEligibilityService(eligibilityRepo, store, zap.NewNop())

		_, err := service.Check(ctx, req)
		require.NoError(t, err)
		_, err = service.Check(ctx, CheckEligibilityRequest{PatientID: "PAT-001", InsuranceID: "INS-002"})
		require.NoError(t, err)

		history, err := service.History(ctx, EligibilityHistoryFilter{})
		require.NoError(t, err)
		assert.Len(t, history, 2)
	})

	t.Run("failed cache write still returns the decision", func(t *testing.T) {
		_, _, eligibilityRepo := newRepos(t)
		store := newMapStore()
		store.reject = true
		service := NewEligibilityService(eligibilityRepo, store, zap.NewNop())

		resp, err := service.Check(ctx, req)
		require.NoError(t, err)
		assert.True(t, resp.IsEligible)

		// Nothing cached: the next check recomputes and appends again
		_, err = service.Check(ctx, req)
		require.NoError(t, err)
		history, err := service.History(ctx, EligibilityHistoryFilter{})
		require.NoError(t, err)
		assert.Len(t, history, 2)
	})

	t.Run("malformed cache entry falls through to a fresh decision", func(t *testing.T) {
		_, _, eligibilityRepo := newRepos(t)
		store := newMapStore()
		store.data["eligibility:PAT-001:INS-001"] = "{not json"
		service := NewEligibilityService(eligibilityRepo, store, zap.NewNop())

		resp, err := service.Check(ctx, req)
		require.NoError(t, err)
		assert.True(t, resp.IsEligible)

		history, err := service.History(ctx, EligibilityHistoryFilter{})
		require.NoError(t, err)
		assert.Len(t, history, 1)
	})
}

func TestEligibilityServiceHistory(t *testing.T) {
	ctx := context.Background()
	_, _, eligibilityRepo := newRepos(t)
	service := NewEligibilityService(eligibilityRepo, newMapStore(), zap.NewNop())

	for i := range 15 {
		req := CheckEligibilityRequest{PatientID: "PAT-001", InsuranceID: string(rune('A' + i))}
		_, err := service.Check(ctx, req)
		require.NoError(t, err)
	}

	t.Run("limit defaults to 10", func(t *testing.T) {
		history, err := service.History(ctx, EligibilityHistoryFilter{})
		require.NoError(t, err)
		assert.Len(t, history, 10)
	})

	t.Run("explicit limit", func(t *testing.T) {
		history, err := service.History(ctx, EligibilityHistoryFilter{Limit: 3})
		require.NoError(t, err)
		assert.Len(t, history, 3)
	})

	t.Run("limit above the cap is clamped", func(t *testing.T) {
		history, err := service.History(ctx, EligibilityHistoryFilter{Limit: 500})
		require.NoError(t, err)
		assert.Len(t, history, 15)
	})

	t.Run("filter by insurance", func(t *testing.T) {
		insurance := "A"
		history, err := service.History(ctx, EligibilityHistoryFilter{InsuranceID: &insurance})
		require.NoError(t, err)
		assert.Len(t, history, 1)
	})
}
