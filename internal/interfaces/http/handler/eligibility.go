package handler

import (
	billingapp "github.com/clinova/billing-service/internal/application/billing"
	"github.com/gin-gonic/gin"
)

// EligibilityHandler handles eligibility API endpoints
type EligibilityHandler struct {
	BaseHandler
	eligibilityService *billingapp.EligibilityService
}

// NewEligibilityHandler creates a new EligibilityHandler
func NewEligibilityHandler(eligibilityService *billingapp.EligibilityService) *EligibilityHandler {
	return &EligibilityHandler{eligibilityService: eligibilityService}
}

// RegisterRoutes registers eligibility routes on the given router group
func (h *EligibilityHandler) RegisterRoutes(rg *gin.RouterGroup) {
	eligibility := rg.Group("/eligibility")
	{
		eligibility.POST("/check", h.Check)
		eligibility.GET("/history", h.History)
	}
}

// Check handles POST /eligibility/check
func (h *EligibilityHandler) Check(c *gin.Context) {
	var req billingapp.CheckEligibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	decision, err := h.eligibilityService.Check(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, decision)
}

// History handles GET /eligibility/history
func (h *EligibilityHandler) History(c *gin.Context) {
	var filter billingapp.EligibilityHistoryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	history, err := h.eligibilityService.History(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, history)
}
