package billing

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/clinova/billing-service/internal/infrastructure/persistence"
	"github.com/clinova/billing-service/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

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
	return db
}

func newRepos(t *testing.T) (*persistence.GormClaimRepository, *persistence.GormInvoiceRepository, *persistence.GormEligibilityRepository) {
	t.Helper()
	db := setupTestDB(t)
	return persistence.NewGormClaimRepository(db),
		persistence.NewGormInvoiceRepository(db),
		persistence.NewGormEligibilityRepository(db)
}

// publishedEvent records one call to the spy publisher
type publishedEvent struct {
	EventType    string
	ResourceType string
	Payload      any
}

// spyPublisher records published events; Ack controls the reported outcome
type spyPublisher struct {
	mu     sync.Mutex
	Ack    bool
	Events []publishedEvent
}

func newSpyPublisher() *spyPublisher {
	return &spyPublisher{Ack: true}
}

func (p *spyPublisher) Publish(ctx context.Context, eventType, resourceType string, payload any) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, publishedEvent{EventType: eventType, ResourceType: resourceType, Payload: payload})
	return p.Ack
}

func (p *spyPublisher) published() []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]publishedEvent(nil), p.Events...)
}

// mapStore is an in-process Store for exercising the cache-aside flow
type mapStore struct {
	mu     sync.Mutex
	data   map[string]string
	reject bool
}

func newMapStore() *mapStore {
	return &mapStore{data: make(map[string]string)}
}

func (s *mapStore) Get(ctx context.Context, key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.data[key]
	return value, ok
}

func (s *mapStore) Set(ctx context.Context, key, value string, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reject {
		return false
	}
	s.data[key] = value
	return true
}
