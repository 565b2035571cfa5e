package stock

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/juiceshop/internal/domain/models"
	"github.com/mamadbah2/juiceshop/internal/repository/memory"
)

// Notifier sends the customer bill after a sale.
type Notifier interface {
	Send(ctx context.Context, to, template, message string) (models.NotificationLogEntry, error)
}

// Ledger applies recipe-based stock movements: sales deduct, restocks add.
type Ledger struct {
	store    memory.Repository
	notifier Notifier
	currency models.Currency
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string
}

// NewLedger constructs a stock ledger. notifier may be nil, in which case no bills are sent.
func NewLedger(store memory.Repository, notifier Notifier, currency models.Currency, logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{
		store:    store,
		notifier: notifier,
		currency: currency,
		logger:   logger,
		now:      time.Now,
		newID:    func() string { return "S-" + uuid.NewString() },
	}
}

// AvailableUnits is how many units of the product the current stock can make.
func (l *Ledger) AvailableUnits(productID string) int {
	var units int
	l.store.View(func(st *memory.State) {
		units = AvailableUnits(st, productID)
	})
	return units
}

// AvailableUnits computes the producible quantity from a state snapshot: the
// minimum of floor(stock/perUnit) across the recipe, saturating at math.MaxInt.
// Products without a recipe, or with an ingredient missing from inventory,
// yield 0. Lines that consume nothing do not limit production.
func AvailableUnits(st *memory.State, productID string) int {
	lines := st.RecipeFor(productID)
	if len(lines) == 0 {
		return 0
	}

	limited := false
	units := math.Inf(1)
	for _, line := range lines {
		item, ok := st.InventoryItem(line.IngredientID)
		if !ok {
			return 0
		}
		if line.Qty <= 0 {
			continue
		}
		units = math.Min(units, math.Floor(item.Qty/line.Qty))
		limited = true
	}

	switch {
	case !limited || units <= 0:
		return 0
	case units >= math.MaxInt:
		return math.MaxInt
	default:
		return int(units)
	}
}

// RecordSale deducts the recipe of the product times qty from inventory,
// appends the sale, and sends a bill when requested. Stock is clamped at zero,
// so a sale larger than the stock still goes through.
func (l *Ledger) RecordSale(ctx context.Context, req models.SaleRequest) (models.Sale, error) {
	if req.Qty <= 0 {
		return models.Sale{}, models.ErrInvalidQuantity
	}
	if req.PaymentMode == "" {
		req.PaymentMode = models.PaymentCash
	}
	if !req.PaymentMode.Valid() {
		return models.Sale{}, fmt.Errorf("%s: %w", req.PaymentMode, models.ErrInvalidPaymentMode)
	}

	var sale models.Sale
	var oversold []string

	err := l.store.Update(func(st *memory.State) error {
		product, ok := st.Product(req.ProductID)
		if !ok {
			return fmt.Errorf("record sale %s: %w", req.ProductID, models.ErrProductNotFound)
		}

		for _, line := range st.RecipeFor(product.ID) {
			item, ok := st.InventoryItem(line.IngredientID)
			if !ok {
				continue
			}
			remaining := item.Qty - line.Qty*float64(req.Qty)
			if remaining < 0 {
				oversold = append(oversold, item.ID)
				remaining = 0
			}
			item.Qty = remaining
		}

		sale = models.Sale{
			ID:            l.newID(),
			Date:          l.now(),
			ProductID:     product.ID,
			Qty:           req.Qty,
			PaymentMode:   req.PaymentMode,
			Total:         product.Price.Mul(decimal.NewFromInt(int64(req.Qty))),
			CustomerPhone: req.CustomerPhone,
		}
		st.Sales = append(st.Sales, sale)
		return nil
	})
	if err != nil {
		l.logger.Debug("sale skipped", zap.String("product_id", req.ProductID), zap.Error(err))
		return models.Sale{}, err
	}

	l.logger.Info("sale recorded",
		zap.String("sale_id", sale.ID),
		zap.String("product_id", sale.ProductID),
		zap.Int("qty", sale.Qty),
		zap.String("total", sale.Total.StringFixed(2)),
		zap.String("payment_mode", string(sale.PaymentMode)))
	if len(oversold) > 0 {
		l.logger.Warn("sale exceeded stock, clamped to zero", zap.String("sale_id", sale.ID), zap.Strings("ingredients", oversold))
	}

	if req.WantsBill() && l.notifier != nil {
		message := fmt.Sprintf("Thanks for visiting! Your total: %s.", l.currency.Format(sale.Total))
		if _, err := l.notifier.Send(ctx, req.CustomerPhone, models.TemplateCustomerBill, message); err != nil {
			l.logger.Warn("bill not delivered", zap.String("sale_id", sale.ID), zap.Error(err))
		}
	}

	return sale, nil
}

// Restock adds qtyDelta to the ingredient, never below zero, and replaces
// its unit cost when newUnitCost is given (negative costs become zero).
func (l *Ledger) Restock(ingredientID string, qtyDelta float64, newUnitCost *decimal.Decimal) (models.InventoryItem, error) {
	var updated models.InventoryItem

	err := l.store.Update(func(st *memory.State) error {
		item, ok := st.InventoryItem(ingredientID)
		if !ok {
			return fmt.Errorf("restock %s: %w", ingredientID, models.ErrIngredientNotFound)
		}

		item.Qty = math.Max(0, item.Qty+qtyDelta)
		if newUnitCost != nil {
			cost := *newUnitCost
			if cost.IsNegative() {
				cost = decimal.Zero
			}
			item.UnitCost = cost
		}
		updated = *item
		return nil
	})
	if err != nil {
		l.logger.Debug("restock skipped", zap.String("ingredient_id", ingredientID), zap.Error(err))
		return models.InventoryItem{}, err
	}

	l.logger.Info("inventory restocked",
		zap.String("ingredient_id", updated.ID),
		zap.Float64("delta", qtyDelta),
		zap.Float64("qty", updated.Qty),
		zap.String("unit_cost", updated.UnitCost.String()))
	return updated, nil
}

// UpdateRecipeLine changes the per-unit quantity of an existing line.
func (l *Ledger) UpdateRecipeLine(productID, ingredientID string, qty float64) (models.RecipeLine, error) {
	var updated models.RecipeLine

	err := l.store.Update(func(st *memory.State) error {
		line, ok := st.RecipeLine(productID, ingredientID)
		if !ok {
			return fmt.Errorf("update recipe %s/%s: %w", productID, ingredientID, models.ErrRecipeLineNotFound)
		}
		line.Qty = math.Max(0, qty)
		updated = *line
		return nil
	})
	if err != nil {
		l.logger.Debug("recipe edit skipped", zap.String("product_id", productID), zap.String("ingredient_id", ingredientID), zap.Error(err))
		return models.RecipeLine{}, err
	}

	l.logger.Info("recipe line updated", zap.String("product_id", productID), zap.String("ingredient_id", ingredientID), zap.Float64("qty", updated.Qty))
	return updated, nil
}
