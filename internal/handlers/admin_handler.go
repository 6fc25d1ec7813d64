package handlers

import (
	"net/http"

	"basilisk-fund/internal/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	reconciliationService *services.ReconciliationService
}

func NewAdminHandler(reconciliationService *services.ReconciliationService) *AdminHandler {
	return &AdminHandler{reconciliationService: reconciliationService}
}

// Recalculate rebuilds every member's earnings from the full bet history
// and returns the audit report.
func (h *AdminHandler) Recalculate(c *gin.Context) {
	report, err := h.reconciliationService.Reconcile(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	if report.TotalFundSize.IsZero() {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "No investments found",
			"data":    report,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Earnings recalculated successfully",
		"data":    report,
	})
}

// ResetEarnings zeroes all member earnings unconditionally.
func (h *AdminHandler) ResetEarnings(c *gin.Context) {
	if err := h.reconciliationService.ResetEarnings(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "All earnings reset to zero",
	})
}
