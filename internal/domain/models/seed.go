package models

import "github.com/shopspring/decimal"

// SeedProducts returns the opening menu.
func SeedProducts() []Product {
	return []Product{
		{ID: "P-MANGO", Name: "Mango Shake", Price: decimal.NewFromInt(120), Active: true},
		{ID: "P-ORANGE", Name: "Orange Juice", Price: decimal.NewFromInt(90), Active: true},
		{ID: "P-WATERMELON", Name: "Watermelon Juice", Price: decimal.NewFromInt(80), Active: true},
	}
}

// SeedInventory returns the opening stock.
func SeedInventory() []InventoryItem {
	return []InventoryItem{
		{ID: "I-MANGO", Name: "Mango Pulp (100g)", Qty: 50, ReorderLevel: Level(10), UnitCost: decimal.NewFromInt(15)},
		{ID: "I-ORANGE", Name: "Orange (1 pc)", Qty: 80, ReorderLevel: Level(15), UnitCost: decimal.NewFromInt(6)},
		{ID: "I-WATERMELON", Name: "Watermelon (100g)", Qty: 100, ReorderLevel: Level(20), UnitCost: decimal.NewFromInt(2)},
		{ID: "I-SUGAR", Name: "Sugar (10g)", Qty: 300, ReorderLevel: Level(60), UnitCost: decimal.RequireFromString("0.8")},
		{ID: "I-ICE", Name: "Ice (1 cube)", Qty: 500, ReorderLevel: Level(100), UnitCost: decimal.RequireFromString("0.05")},
		{ID: "I-CUP", Name: "Cup (1 pc)", Qty: 200, ReorderLevel: Level(50), UnitCost: decimal.NewFromInt(2)},
	}
}

// SeedRecipes returns the per-cup recipes of the opening menu.
func SeedRecipes() []RecipeLine {
	return []RecipeLine{
		{ProductID: "P-MANGO", IngredientID: "I-MANGO", Qty: 2},
		{ProductID: "P-MANGO", IngredientID: "I-SUGAR", Qty: 1},
		{ProductID: "P-MANGO", IngredientID: "I-ICE", Qty: 3},
		{ProductID: "P-MANGO", IngredientID: "I-CUP", Qty: 1},

		{ProductID: "P-ORANGE", IngredientID: "I-ORANGE", Qty: 3},
		{ProductID: "P-ORANGE", IngredientID: "I-SUGAR", Qty: 1},
		{ProductID: "P-ORANGE", IngredientID: "I-ICE", Qty: 3},
		{ProductID: "P-ORANGE", IngredientID: "I-CUP", Qty: 1},

		{ProductID: "P-WATERMELON", IngredientID: "I-WATERMELON", Qty: 3},
		{ProductID: "P-WATERMELON", IngredientID: "I-ICE", Qty: 3},
		{ProductID: "P-WATERMELON", IngredientID: "I-CUP", Qty: 1},
	}
}

// SeedCustomers returns the default walk-in customer.
func SeedCustomers() []Customer {
	return []Customer{{ID: "CUST-1", Name: "Walk-in", Phone: ""}}
}
