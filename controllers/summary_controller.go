package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitor-paiva/comanda-live/services"
)

// OrderSummary handles GET /api/v1/summary - read-only revenue view over
// the ledger (order count, delivered count, delivered revenue)
func OrderSummary(ledger *services.OrderLedger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    ledger.Summary(),
		})
	}
}
