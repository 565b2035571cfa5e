package pricing

import (
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/juiceshop/internal/domain/models"
	"github.com/mamadbah2/juiceshop/internal/repository/memory"
)

const (
	// DefaultMarkupPercent is applied by ApplyDefaultMarkup.
	DefaultMarkupPercent = 30.0

	lowMarginPercent  = 20.0
	highMarginPercent = 60.0
	minRestockTarget  = 20.0
)

var (
	hundred         = decimal.NewFromInt(100)
	suggestedMarkup = decimal.RequireFromString("1.3")
)

// Advisor derives ingredient cost and margins from recipes and suggests price
// and stock actions. Price changes are always explicit; nothing reprices on restock.
type Advisor struct {
	store    memory.Repository
	currency models.Currency
	logger   *zap.Logger
}

// NewAdvisor constructs a pricing advisor.
func NewAdvisor(store memory.Repository, currency models.Currency, logger *zap.Logger) *Advisor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Advisor{store: store, currency: currency, logger: logger}
}

// IngredientCost is the recipe cost of one unit of the product.
func (a *Advisor) IngredientCost(productID string) decimal.Decimal {
	var cost decimal.Decimal
	a.store.View(func(st *memory.State) {
		cost = IngredientCost(st, productID)
	})
	return cost
}

// MarginPercent is the markup of the product's price over its ingredient cost.
func (a *Advisor) MarginPercent(productID string) float64 {
	var margin float64
	a.store.View(func(st *memory.State) {
		margin = MarginPercent(st, productID)
	})
	return margin
}

// MarginReport is the cost breakdown of one product.
type MarginReport struct {
	ProductID      string          `json:"product_id"`
	Price          decimal.Decimal `json:"price"`
	IngredientCost decimal.Decimal `json:"ingredient_cost"`
	MarginPercent  float64         `json:"margin_percent"`
}

// Margin reports price, ingredient cost and margin of an existing product.
func (a *Advisor) Margin(productID string) (MarginReport, error) {
	var report MarginReport
	var found bool
	a.store.View(func(st *memory.State) {
		product, ok := st.Product(productID)
		if !ok {
			return
		}
		found = true
		cost := IngredientCost(st, productID)
		report = MarginReport{
			ProductID:      product.ID,
			Price:          product.Price,
			IngredientCost: cost,
			MarginPercent:  marginOf(product.Price, cost),
		}
	})
	if !found {
		return MarginReport{}, fmt.Errorf("margin %s: %w", productID, models.ErrProductNotFound)
	}
	return report, nil
}

// SetPrice replaces the product price. Negative prices become zero.
func (a *Advisor) SetPrice(productID string, price decimal.Decimal) (models.Product, error) {
	if price.IsNegative() {
		price = decimal.Zero
	}
	return a.updatePrice(productID, func(*memory.State) decimal.Decimal { return price })
}

// ApplyMarkup prices the product at its ingredient cost plus percent, rounded to cents.
func (a *Advisor) ApplyMarkup(productID string, percent float64) (models.Product, error) {
	return a.updatePrice(productID, func(st *memory.State) decimal.Decimal {
		return MarkupPrice(IngredientCost(st, productID), percent)
	})
}

// ApplyDefaultMarkup applies DefaultMarkupPercent.
func (a *Advisor) ApplyDefaultMarkup(productID string) (models.Product, error) {
	return a.ApplyMarkup(productID, DefaultMarkupPercent)
}

func (a *Advisor) updatePrice(productID string, priceFn func(st *memory.State) decimal.Decimal) (models.Product, error) {
	var updated models.Product
	var previous decimal.Decimal

	err := a.store.Update(func(st *memory.State) error {
		product, ok := st.Product(productID)
		if !ok {
			return fmt.Errorf("update price %s: %w", productID, models.ErrProductNotFound)
		}
		previous = product.Price
		product.Price = priceFn(st)
		updated = *product
		return nil
	})
	if err != nil {
		a.logger.Debug("price update skipped", zap.String("product_id", productID), zap.Error(err))
		return models.Product{}, err
	}

	a.logger.Info("price updated",
		zap.String("product_id", productID),
		zap.String("from", previous.StringFixed(2)),
		zap.String("to", updated.Price.StringFixed(2)))
	return updated, nil
}

// Suggestions recomputes the advisories for the current state.
func (a *Advisor) Suggestions() []string {
	var tips []string
	a.store.View(func(st *memory.State) {
		tips = Suggestions(st, a.currency)
	})
	return tips
}

// IngredientCost sums unitCost*qty over the product's recipe. Unknown
// products and ingredients contribute nothing.
func IngredientCost(st *memory.State, productID string) decimal.Decimal {
	cost := decimal.Zero
	for _, line := range st.RecipeFor(productID) {
		item, ok := st.InventoryItem(line.IngredientID)
		if !ok {
			continue
		}
		cost = cost.Add(item.UnitCost.Mul(decimal.NewFromFloat(line.Qty)))
	}
	return cost
}

// MarginPercent is (price-cost)/cost*100, or 0 when the cost is zero.
func MarginPercent(st *memory.State, productID string) float64 {
	product, ok := st.Product(productID)
	if !ok {
		return 0
	}
	return marginOf(product.Price, IngredientCost(st, productID))
}

func marginOf(price, cost decimal.Decimal) float64 {
	if !cost.IsPositive() {
		return 0
	}
	return price.Sub(cost).Div(cost).Mul(hundred).InexactFloat64()
}

// MarkupPrice is cost*(1+percent/100) rounded to 2 decimals, never negative.
func MarkupPrice(cost decimal.Decimal, percent float64) decimal.Decimal {
	factor := decimal.NewFromFloat(percent).Div(hundred).Add(decimal.NewFromInt(1))
	price := cost.Mul(factor).Round(2)
	if price.IsNegative() {
		return decimal.Zero
	}
	return price
}

// RestockTarget is the quantity an item flagged low should be brought up to.
func RestockTarget(item models.InventoryItem) float64 {
	return math.Max(item.Threshold()*2, minRestockTarget)
}

// Suggestions lists, in order: low-stock items, products with a low or high
// margin, then the highest and lowest forecast when predictions exist.
func Suggestions(st *memory.State, currency models.Currency) []string {
	var tips []string

	for _, item := range st.Inventory {
		if item.LowStock() {
			tips = append(tips, fmt.Sprintf("Low stock: %s. Consider restocking to %s.", item.Name, formatQty(RestockTarget(item))))
		}
	}

	for _, p := range st.Products {
		cost := IngredientCost(st, p.ID)
		margin := marginOf(p.Price, cost)
		switch {
		case margin < lowMarginPercent:
			tips = append(tips, fmt.Sprintf("%s margin low (%s%%). Consider raising price to %s.",
				p.Name, formatPercent(margin), currency.Format(cost.Mul(suggestedMarkup))))
		case margin > highMarginPercent:
			tips = append(tips, fmt.Sprintf("%s margin high (%s%%). You can run a promo.",
				p.Name, formatPercent(margin)))
		}
	}

	if len(st.Predictions) > 0 {
		top, low := st.Predictions[0], st.Predictions[0]
		for _, p := range st.Predictions[1:] {
			if p.PredictedQty > top.PredictedQty {
				top = p
			}
			if p.PredictedQty < low.PredictedQty {
				low = p
			}
		}
		tips = append(tips,
			fmt.Sprintf("Prepare more for %s: forecast %d cups.", top.ProductName, top.PredictedQty),
			fmt.Sprintf("Consider cross-selling %s: only %d cups predicted.", low.ProductName, low.PredictedQty))
	}

	return tips
}

// formatPercent rounds half away from zero, so 12.5 renders as 13.
func formatPercent(v float64) string {
	return decimal.NewFromFloat(v).Round(0).String()
}

func formatQty(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
