package handlers

import (
	"net/http"

	"basilisk-fund/internal/models"
	"basilisk-fund/internal/services"

	"github.com/gin-gonic/gin"
)

type InvestmentHandler struct {
	investmentService *services.InvestmentService
}

func NewInvestmentHandler(investmentService *services.InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{investmentService: investmentService}
}

// GetInvestments returns all investments, newest first
func (h *InvestmentHandler) GetInvestments(c *gin.Context) {
	investments, err := h.investmentService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, investments)
}

// CreateInvestment records a capital contribution
func (h *InvestmentHandler) CreateInvestment(c *gin.Context) {
	var req models.CreateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	investment, err := h.investmentService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, investment)
}
