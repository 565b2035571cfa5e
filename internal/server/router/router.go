package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/juiceshop/internal/domain/models"
	"github.com/mamadbah2/juiceshop/internal/server/handlers"
)

// RoleHeader carries the caller's role. Missing or unknown values mean Salesperson.
const RoleHeader = "X-Role"

// New wires the Gin engine with required routes and middlewares.
func New(handler *handlers.ShopHandler, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/products", handler.ListProducts)
	r.GET("/products/:id/margin", handler.GetMargin)
	r.GET("/inventory", handler.ListInventory)
	r.GET("/recipes", handler.ListRecipes)
	r.GET("/customers", handler.ListCustomers)
	r.GET("/sales", handler.ListSales)
	r.POST("/sales", handler.RecordSale)
	r.GET("/suggestions", handler.ListSuggestions)
	r.POST("/forecast", handler.RunForecast)
	r.GET("/predictions", handler.ListPredictions)
	r.GET("/dashboard", handler.GetDashboard)

	owner := r.Group("/", requireOwner(logger))
	owner.POST("/customers", handler.AddCustomer)
	owner.POST("/inventory/:id/restock", handler.Restock)
	owner.PUT("/recipes/:productId/:ingredientId", handler.UpdateRecipeLine)
	owner.PUT("/products/:id/price", handler.SetPrice)
	owner.POST("/products/:id/markup", handler.ApplyMarkup)
	owner.GET("/notifications", handler.ListNotifications)
	owner.POST("/reports/daily-summary", handler.SendDailySummary)

	logger.Info("router initialized")
	return r
}

func requireOwner(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if models.ParseRole(c.GetHeader(RoleHeader)) != models.RoleOwner {
			logger.Warn("owner route refused", zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "owner role required"})
			return
		}
		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("role", string(models.ParseRole(c.GetHeader(RoleHeader)))))
	}
}
