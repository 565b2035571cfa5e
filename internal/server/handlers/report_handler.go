package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/juiceshop/internal/domain/models"
)

// RunForecast recomputes predictions for every product.
func (h *ShopHandler) RunForecast(c *gin.Context) {
	predictions, err := h.svc.Forecast.Run(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(predictions))
}

// ListPredictions returns the latest forecast.
func (h *ShopHandler) ListPredictions(c *gin.Context) {
	c.JSON(http.StatusOK, nonNil(h.svc.Forecast.Predictions()))
}

// ListNotifications returns the outbound message log.
func (h *ShopHandler) ListNotifications(c *gin.Context) {
	entries := h.svc.Notifications.List()
	if entries == nil {
		entries = []models.NotificationLogEntry{}
	}
	c.JSON(http.StatusOK, entries)
}

// SendDailySummary sends today's summary to the owner immediately.
func (h *ShopHandler) SendDailySummary(c *gin.Context) {
	entry, err := h.svc.Reports.SendDailySummary(c.Request.Context())
	if err != nil {
		h.logger.Warn("daily summary delivery failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to send daily summary", "entry": entry})
		return
	}
	c.JSON(http.StatusAccepted, entry)
}

// GetDashboard returns the owner's dashboard.
func (h *ShopHandler) GetDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Reports.Dashboard())
}

func nonNil(predictions []models.Prediction) []models.Prediction {
	if predictions == nil {
		return []models.Prediction{}
	}
	return predictions
}
