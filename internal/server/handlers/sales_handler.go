package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/mamadbah2/juiceshop/internal/domain/models"
)

// RecordSale books a sale and deducts its recipe from stock.
func (h *ShopHandler) RecordSale(c *gin.Context) {
	var req models.SaleRequest
	if !h.bind(c, &req) {
		return
	}

	sale, err := h.svc.Stock.RecordSale(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, sale)
}

// ListSales returns every sale in recording order.
func (h *ShopHandler) ListSales(c *gin.Context) {
	sales := h.svc.Sales.List()
	if sales == nil {
		sales = []models.Sale{}
	}
	c.JSON(http.StatusOK, sales)
}

type restockRequest struct {
	Qty      float64          `json:"qty"`
	UnitCost *decimal.Decimal `json:"unit_cost,omitempty"`
}

// Restock adds stock to an ingredient and optionally updates its unit cost.
func (h *ShopHandler) Restock(c *gin.Context) {
	var req restockRequest
	if !h.bind(c, &req) {
		return
	}

	item, err := h.svc.Stock.Restock(c.Param("id"), req.Qty, req.UnitCost)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

type recipeLineRequest struct {
	Qty float64 `json:"qty"`
}

// UpdateRecipeLine changes how much of an ingredient one unit of a product uses.
func (h *ShopHandler) UpdateRecipeLine(c *gin.Context) {
	var req recipeLineRequest
	if !h.bind(c, &req) {
		return
	}

	line, err := h.svc.Stock.UpdateRecipeLine(c.Param("productId"), c.Param("ingredientId"), req.Qty)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, line)
}
