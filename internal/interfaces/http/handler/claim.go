package handler

import (
	billingapp "github.com/clinova/billing-service/internal/application/billing"
	"github.com/gin-gonic/gin"
)

// ClaimHandler handles claim API endpoints
type ClaimHandler struct {
	BaseHandler
	claimService *billingapp.ClaimService
}

// NewClaimHandler creates a new ClaimHandler
func NewClaimHandler(claimService *billingapp.ClaimService) *ClaimHandler {
	return &ClaimHandler{claimService: claimService}
}

// RegisterRoutes registers claim routes on the given router group
func (h *ClaimHandler) RegisterRoutes(rg *gin.RouterGroup) {
	claims := rg.Group("/claims")
	{
		claims.POST("/", h.Create)
		claims.GET("/", h.List)
		claims.GET("/:id", h.Get)
		claims.PATCH("/:id", h.Update)
	}
}

// Create handles POST /claims/
func (h *ClaimHandler) Create(c *gin.Context) {
	var req billingapp.CreateClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	claim, err := h.claimService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, claim)
}

// Get handles GET /claims/:id
func (h *ClaimHandler) Get(c *gin.Context) {
	claim, err := h.claimService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, claim)
}

// List handles GET /claims/
func (h *ClaimHandler) List(c *gin.Context) {
	var filter billingapp.ListClaimsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	claims, err := h.claimService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, claims)
}

// Update handles PATCH /claims/:id
func (h *ClaimHandler) Update(c *gin.Context) {
	var req billingapp.UpdateClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	claim, err := h.claimService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, claim)
}
