package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// NoTopProduct is rendered when no sale happened in the period.
const NoTopProduct = "N/A"

// DailySummary aggregates the sales of one calendar day.
type DailySummary struct {
	Date        time.Time       `json:"date"`
	SalesCount  int             `json:"sales_count"`
	UnitsSold   int             `json:"units_sold"`
	SalesAmount decimal.Decimal `json:"sales_amount"`
	TopProduct  string          `json:"top_product"`
}

// Dashboard is the owner's at-a-glance view of the shop.
type Dashboard struct {
	Today          DailySummary    `json:"today"`
	LowStock       []InventoryItem `json:"low_stock"`
	LowPerformers  []string        `json:"low_performers"`
	Predictions    []Prediction    `json:"predictions"`
	MessagesLogged int             `json:"messages_logged"`
}
