package models

import "github.com/shopspring/decimal"

// DefaultReorderLevel applies to inventory items created without an explicit threshold.
const DefaultReorderLevel = 5.0

// Product is a sellable menu item.
type Product struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Active bool            `json:"active"`
}

// InventoryItem is an ingredient or consumable tracked in units.
type InventoryItem struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Qty          float64         `json:"qty"`
	ReorderLevel *float64        `json:"reorder_level,omitempty"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
}

// Threshold returns the reorder level, falling back to DefaultReorderLevel.
func (i InventoryItem) Threshold() float64 {
	if i.ReorderLevel == nil {
		return DefaultReorderLevel
	}
	return *i.ReorderLevel
}

// LowStock reports whether the item sits at or below its reorder level.
func (i InventoryItem) LowStock() bool {
	return i.Qty <= i.Threshold()
}

// Copy returns the item with its own ReorderLevel.
func (i InventoryItem) Copy() InventoryItem {
	if i.ReorderLevel != nil {
		i.ReorderLevel = Level(*i.ReorderLevel)
	}
	return i
}

// RecipeLine is the quantity of one ingredient consumed per unit of one product.
// The pair (ProductID, IngredientID) is unique.
type RecipeLine struct {
	ProductID    string  `json:"product_id"`
	IngredientID string  `json:"ingredient_id"`
	Qty          float64 `json:"qty"`
}

// Customer is a known buyer reachable on Phone.
type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Level is a convenience for building a ReorderLevel pointer.
func Level(v float64) *float64 {
	return &v
}
