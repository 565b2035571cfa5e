package memory

import (
	"fmt"

	"github.com/mamadbah2/juiceshop/internal/domain/models"
)

// State is the complete in-memory data set of the shop. Collections keep
// insertion order, which is the order every listing and advisory follows.
type State struct {
	Products      []models.Product
	Inventory     []models.InventoryItem
	Recipes       []models.RecipeLine
	Customers     []models.Customer
	Sales         []models.Sale
	Predictions   []models.Prediction
	Notifications []models.NotificationLogEntry
}

// SeedState returns the opening catalog with empty ledgers.
func SeedState() State {
	return State{
		Products:  models.SeedProducts(),
		Inventory: models.SeedInventory(),
		Recipes:   models.SeedRecipes(),
		Customers: models.SeedCustomers(),
	}
}

// Clone returns a deep copy so callers can mutate it without touching the original.
func (s State) Clone() State {
	out := s.working()
	out.Sales = append([]models.Sale(nil), s.Sales...)
	out.Notifications = append([]models.NotificationLogEntry(nil), s.Notifications...)
	return out
}

// working returns the copy an Update mutates. Catalog collections are deep
// copied; the Sales and Notifications logs share their backing arrays with s.
// That is safe because the logs are only ever appended to and s never reads
// past its own length, so appends cost amortized O(1) instead of a full copy.
func (s State) working() State {
	out := State{
		Products:      append([]models.Product(nil), s.Products...),
		Inventory:     make([]models.InventoryItem, len(s.Inventory)),
		Recipes:       append([]models.RecipeLine(nil), s.Recipes...),
		Customers:     append([]models.Customer(nil), s.Customers...),
		Sales:         s.Sales,
		Predictions:   append([]models.Prediction(nil), s.Predictions...),
		Notifications: s.Notifications,
	}
	for i, item := range s.Inventory {
		out.Inventory[i] = item.Copy()
	}
	return out
}

// Validate checks identifier uniqueness and that every recipe line resolves.
func (s State) Validate() error {
	products := make(map[string]struct{}, len(s.Products))
	for _, p := range s.Products {
		if _, dup := products[p.ID]; dup {
			return fmt.Errorf("product %s: %w", p.ID, models.ErrDuplicateID)
		}
		products[p.ID] = struct{}{}
	}

	items := make(map[string]struct{}, len(s.Inventory))
	for _, i := range s.Inventory {
		if _, dup := items[i.ID]; dup {
			return fmt.Errorf("inventory item %s: %w", i.ID, models.ErrDuplicateID)
		}
		items[i.ID] = struct{}{}
	}

	pairs := make(map[[2]string]struct{}, len(s.Recipes))
	for _, line := range s.Recipes {
		if _, ok := products[line.ProductID]; !ok {
			return fmt.Errorf("recipe product %s: %w", line.ProductID, models.ErrUnknownReference)
		}
		if _, ok := items[line.IngredientID]; !ok {
			return fmt.Errorf("recipe ingredient %s: %w", line.IngredientID, models.ErrUnknownReference)
		}
		key := [2]string{line.ProductID, line.IngredientID}
		if _, dup := pairs[key]; dup {
			return fmt.Errorf("recipe line %s/%s: %w", line.ProductID, line.IngredientID, models.ErrDuplicateID)
		}
		pairs[key] = struct{}{}
	}

	return nil
}

// Product returns a pointer into Products so Update callbacks can mutate in place.
func (s *State) Product(id string) (*models.Product, bool) {
	for i := range s.Products {
		if s.Products[i].ID == id {
			return &s.Products[i], true
		}
	}
	return nil, false
}

// InventoryItem returns a pointer into Inventory.
func (s *State) InventoryItem(id string) (*models.InventoryItem, bool) {
	for i := range s.Inventory {
		if s.Inventory[i].ID == id {
			return &s.Inventory[i], true
		}
	}
	return nil, false
}

// RecipeLine returns a pointer to the line for the product/ingredient pair.
func (s *State) RecipeLine(productID, ingredientID string) (*models.RecipeLine, bool) {
	for i := range s.Recipes {
		if s.Recipes[i].ProductID == productID && s.Recipes[i].IngredientID == ingredientID {
			return &s.Recipes[i], true
		}
	}
	return nil, false
}

// RecipeFor lists the recipe lines of a product in insertion order.
func (s *State) RecipeFor(productID string) []models.RecipeLine {
	var lines []models.RecipeLine
	for _, line := range s.Recipes {
		if line.ProductID == productID {
			lines = append(lines, line)
		}
	}
	return lines
}

// AddProduct appends p, rejecting an id already in use.
func (s *State) AddProduct(p models.Product) error {
	if _, exists := s.Product(p.ID); exists {
		return fmt.Errorf("product %s: %w", p.ID, models.ErrDuplicateID)
	}
	s.Products = append(s.Products, p)
	return nil
}

// AddInventoryItem appends item, rejecting an id already in use.
func (s *State) AddInventoryItem(item models.InventoryItem) error {
	if _, exists := s.InventoryItem(item.ID); exists {
		return fmt.Errorf("inventory item %s: %w", item.ID, models.ErrDuplicateID)
	}
	s.Inventory = append(s.Inventory, item)
	return nil
}

// AddRecipeLine appends a line after checking both references and pair uniqueness.
func (s *State) AddRecipeLine(line models.RecipeLine) error {
	if _, ok := s.Product(line.ProductID); !ok {
		return fmt.Errorf("recipe product %s: %w", line.ProductID, models.ErrUnknownReference)
	}
	if _, ok := s.InventoryItem(line.IngredientID); !ok {
		return fmt.Errorf("recipe ingredient %s: %w", line.IngredientID, models.ErrUnknownReference)
	}
	if _, exists := s.RecipeLine(line.ProductID, line.IngredientID); exists {
		return fmt.Errorf("recipe line %s/%s: %w", line.ProductID, line.IngredientID, models.ErrDuplicateID)
	}
	s.Recipes = append(s.Recipes, line)
	return nil
}

// AddCustomer appends c, rejecting an id already in use.
func (s *State) AddCustomer(c models.Customer) error {
	for _, existing := range s.Customers {
		if existing.ID == c.ID {
			return fmt.Errorf("customer %s: %w", c.ID, models.ErrDuplicateID)
		}
	}
	s.Customers = append(s.Customers, c)
	return nil
}
