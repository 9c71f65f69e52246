package handler

import (
	"net/http"

	"github.com/clinova/billing-service/internal/infrastructure/persistence"
	"github.com/clinova/billing-service/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// SystemHandler handles liveness and readiness endpoints
type SystemHandler struct {
	BaseHandler
	serviceName string
	db          *persistence.Database
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(serviceName string, db *persistence.Database) *SystemHandler {
	return &SystemHandler{serviceName: serviceName, db: db}
}

// RegisterRoutes registers system routes on the root engine
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
	rg.GET("/ready", h.Ready)
}

// Health handles GET /health - process liveness only
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": h.serviceName,
	})
}

// Ready handles GET /ready - reports 503 when the datastore is unreachable.
// Cache and broker are deliberately excluded: their absence never degrades
// the service.
func (h *SystemHandler) Ready(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(
			"Service Unavailable",
			"Datastore is unreachable",
		))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
