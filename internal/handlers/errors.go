package handlers

import (
	"errors"
	"net/http"

	"basilisk-fund/internal/services"

	"github.com/gin-gonic/gin"
)

// respondError maps engine errors onto HTTP statuses. Validation failures
// and rejected payouts are client errors; everything unexpected is a 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrInsufficientBalance),
		errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrInvalidOutcome),
		errors.Is(err, services.ErrProfitLossMismatch):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
