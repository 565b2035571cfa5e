package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/juiceshop/internal/domain/models"
)

// GetMargin returns price, ingredient cost and margin of a product.
func (h *ShopHandler) GetMargin(c *gin.Context) {
	report, err := h.svc.Pricing.Margin(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

type setPriceRequest struct {
	Price *decimal.Decimal `json:"price"`
}

// SetPrice replaces a product's price.
func (h *ShopHandler) SetPrice(c *gin.Context) {
	var req setPriceRequest
	if !h.bind(c, &req) {
		return
	}
	if req.Price == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price is required"})
		return
	}

	product, err := h.svc.Pricing.SetPrice(c.Param("id"), *req.Price)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

type markupRequest struct {
	Percent *float64 `json:"percent"`
}

// ApplyMarkup reprices a product at ingredient cost plus a markup.
// An empty body applies the default markup.
func (h *ShopHandler) ApplyMarkup(c *gin.Context) {
	var req markupRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("invalid markup body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var product models.Product
	var err error
	if req.Percent != nil {
		product, err = h.svc.Pricing.ApplyMarkup(c.Param("id"), *req.Percent)
	} else {
		product, err = h.svc.Pricing.ApplyDefaultMarkup(c.Param("id"))
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// ListSuggestions returns the current advisories.
func (h *ShopHandler) ListSuggestions(c *gin.Context) {
	tips := h.svc.Pricing.Suggestions()
	if tips == nil {
		tips = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": tips})
}
