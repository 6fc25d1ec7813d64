package handlers

import (
	"net/http"

	"basilisk-fund/internal/models"
	"basilisk-fund/internal/services"

	"github.com/gin-gonic/gin"
)

type PayoutHandler struct {
	payoutService *services.PayoutService
}

func NewPayoutHandler(payoutService *services.PayoutService) *PayoutHandler {
	return &PayoutHandler{payoutService: payoutService}
}

// GetPayouts returns all payouts, newest first
func (h *PayoutHandler) GetPayouts(c *gin.Context) {
	payouts, err := h.payoutService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, payouts)
}

// CreatePayout records a withdrawal after the balance check
func (h *PayoutHandler) CreatePayout(c *gin.Context) {
	var req models.CreatePayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payout, err := h.payoutService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, payout)
}
