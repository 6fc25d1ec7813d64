package handlers

import (
	"net/http"

	"basilisk-fund/internal/models"
	"basilisk-fund/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BetHandler struct {
	betService *services.BetService
}

func NewBetHandler(betService *services.BetService) *BetHandler {
	return &BetHandler{betService: betService}
}

// GetBets returns all bets with aggregate stats
func (h *BetHandler) GetBets(c *gin.Context) {
	bets, stats, err := h.betService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bets":  bets,
		"stats": stats,
	})
}

// CreateBet records a new bet; an already-resolved bet is distributed once
func (h *BetHandler) CreateBet(c *gin.Context) {
	var req models.CreateBetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bet, err := h.betService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bet)
}

// UpdateBet edits a bet, reversing and re-applying its ledger effect
func (h *BetHandler) UpdateBet(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bet id"})
		return
	}

	var req models.UpdateBetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bet, err := h.betService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bet)
}

// DeleteBet removes a bet after reversing its ledger effect
func (h *BetHandler) DeleteBet(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bet id"})
		return
	}

	if err := h.betService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
