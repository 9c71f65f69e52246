package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatastoreOutageReturns503(t *testing.T) {
	engine, _, db := setupEngineWithDB(t)

	created := decode(t, doJSON(t, engine, http.MethodPost, "/claims/", claimBody()))
	claimID := created["id"].(string)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	t.Run("claim read", func(t *testing.T) {
		w := doGet(t, engine, "/claims/"+claimID)
		require.Equal(t, http.StatusServiceUnavailable, w.Code)

		body := decode(t, w)
		assert.Equal(t, "UNAVAILABLE", body["error"])
		assert.Equal(t, "Datastore is unavailable", body["message"])
	})

	t.Run("invoice list", func(t *testing.T) {
		w := doGet(t, engine, "/invoices/")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("eligibility check", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodPost, "/eligibility/check", map[string]any{
			"patient_id":   "PAT-001",
			"insurance_id": "INS-001",
		})
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("claim create", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodPost, "/claims/", claimBody())
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
