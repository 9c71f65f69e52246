package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	billingapp "github.com/clinova/billing-service/internal/application/billing"
	"github.com/clinova/billing-service/internal/infrastructure/persistence"
	"github.com/clinova/billing-service/internal/infrastructure/persistence/models"
	"github.com/clinova/billing-service/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// spyPublisher records event types and acknowledges every publish
type spyPublisher struct {
	EventTypes []string
}

func (p *spyPublisher) Publish(ctx context.Context, eventType, resourceType string, payload any) bool {
	p.EventTypes = append(p.EventTypes, eventType)
	return true
}

// fakeStore is an always-miss cache
type fakeStore struct{}

func (fakeStore) Get(ctx context.Context, key string) (string, bool) {
	return "", false
}

func (fakeStore) Set(ctx context.Context, key, value string, ttl time.Duration) bool {
	return true
}

func setupEngine(t *testing.T) (*gin.Engine, *spyPublisher) {
	engine, publisher, _ := setupEngineWithDB(t)
	return engine, publisher
}

func setupEngineWithDB(t *testing.T) (*gin.Engine, *spyPublisher, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.ClaimModel{},
		&models.ClaimItemModel{},
		&models.InvoiceModel{},
		&models.EligibilityCheckModel{},
	))

	publisher := &spyPublisher{}
	log := zap.NewNop()

	claimService := billingapp.NewClaimService(persistence.NewGormClaimRepository(db), publisher, log)
	invoiceService := billingapp.NewInvoiceService(persistence.NewGormInvoiceRepository(db), publisher, log)
	eligibilityService := billingapp.NewEligibilityService(persistence.NewGormEligibilityRepository(db), fakeStore{}, log)

	engine := gin.New()
	router.NewRouter(engine).
		Register(NewClaimHandler(claimService)).
		Register(NewInvoiceHandler(invoiceService)).
		Register(NewEligibilityHandler(eligibilityService)).
		Setup()
	return engine, publisher, db
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func doGet(t *testing.T, engine *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var body []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
