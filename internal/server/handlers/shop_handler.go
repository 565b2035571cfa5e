package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/juiceshop/internal/domain/models"
	"github.com/mamadbah2/juiceshop/internal/service/catalog"
	"github.com/mamadbah2/juiceshop/internal/service/pricing"
)

// Catalog lists products, inventory, recipes and customers.
type Catalog interface {
	Products(query string) []catalog.ProductView
	Inventory() []models.InventoryItem
	Recipes(productID string) []models.RecipeLine
	Customers() []models.Customer
	AddCustomer(name, phone string) (models.Customer, error)
}

// StockLedger records sales and inventory movements.
type StockLedger interface {
	RecordSale(ctx context.Context, req models.SaleRequest) (models.Sale, error)
	Restock(ingredientID string, qtyDelta float64, newUnitCost *decimal.Decimal) (models.InventoryItem, error)
	UpdateRecipeLine(productID, ingredientID string, qty float64) (models.RecipeLine, error)
}

// SalesLedger lists recorded sales.
type SalesLedger interface {
	List() []models.Sale
}

// PricingAdvisor exposes margins, price changes and advisories.
type PricingAdvisor interface {
	Margin(productID string) (pricing.MarginReport, error)
	SetPrice(productID string, price decimal.Decimal) (models.Product, error)
	ApplyMarkup(productID string, percent float64) (models.Product, error)
	ApplyDefaultMarkup(productID string) (models.Product, error)
	Suggestions() []string
}

// Forecaster runs and lists demand predictions.
type Forecaster interface {
	Run(ctx context.Context) ([]models.Prediction, error)
	Predictions() []models.Prediction
}

// NotificationLog lists outbound messages.
type NotificationLog interface {
	List() []models.NotificationLogEntry
}

// Reports produces the daily summary and dashboard.
type Reports interface {
	SendDailySummary(ctx context.Context) (models.NotificationLogEntry, error)
	Dashboard() models.Dashboard
}

// Services groups the collaborators of ShopHandler.
type Services struct {
	Catalog       Catalog
	Stock         StockLedger
	Sales         SalesLedger
	Pricing       PricingAdvisor
	Forecast      Forecaster
	Notifications NotificationLog
	Reports       Reports
}

// ShopHandler adapts the shop services to HTTP.
type ShopHandler struct {
	svc    Services
	logger *zap.Logger
}

// NewShopHandler constructs the HTTP handler adapter.
func NewShopHandler(svc Services, logger *zap.Logger) *ShopHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShopHandler{svc: svc, logger: logger}
}

// ListProducts returns the menu with available units, filtered by ?q=.
func (h *ShopHandler) ListProducts(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Catalog.Products(c.Query("q")))
}

// ListInventory returns every inventory item.
func (h *ShopHandler) ListInventory(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Catalog.Inventory())
}

// ListRecipes returns recipe lines, filtered by ?product_id=.
func (h *ShopHandler) ListRecipes(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Catalog.Recipes(c.Query("product_id")))
}

// ListCustomers returns the customer directory.
func (h *ShopHandler) ListCustomers(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Catalog.Customers())
}

type addCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
}

// AddCustomer registers a customer.
func (h *ShopHandler) AddCustomer(c *gin.Context) {
	var req addCustomerRequest
	if !h.bind(c, &req) {
		return
	}

	customer, err := h.svc.Catalog.AddCustomer(req.Name, req.Phone)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *ShopHandler) bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.logger.Warn("invalid request body", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	return true
}

// fail maps domain errors to HTTP statuses.
func (h *ShopHandler) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrProductNotFound),
		errors.Is(err, models.ErrIngredientNotFound),
		errors.Is(err, models.ErrRecipeLineNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrInvalidQuantity),
		errors.Is(err, models.ErrInvalidPaymentMode),
		errors.Is(err, models.ErrInvalidCustomer):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrDuplicateID):
		status = http.StatusConflict
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	} else {
		h.logger.Debug("request rejected", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
