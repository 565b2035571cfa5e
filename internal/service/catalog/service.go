package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/juiceshop/internal/domain/models"
	"github.com/mamadbah2/juiceshop/internal/repository/memory"
	"github.com/mamadbah2/juiceshop/internal/service/stock"
)

const customerIDPrefix = "CUST-"

// ProductView is a product as shown at the counter, with how many cups the
// current stock can still make.
type ProductView struct {
	models.Product
	AvailableUnits int `json:"available_units"`
}

// Service serves read access to the catalog and customer directory.
type Service struct {
	store  memory.Repository
	logger *zap.Logger
}

// NewService constructs a catalog service.
func NewService(store memory.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// Products lists the menu in catalog order. A non-empty query keeps only
// products whose name contains it, ignoring case.
func (s *Service) Products(query string) []ProductView {
	needle := strings.ToLower(strings.TrimSpace(query))
	out := []ProductView{}
	s.store.View(func(st *memory.State) {
		for _, p := range st.Products {
			if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
				continue
			}
			out = append(out, ProductView{Product: p, AvailableUnits: stock.AvailableUnits(st, p.ID)})
		}
	})
	return out
}

// Inventory lists every inventory item.
func (s *Service) Inventory() []models.InventoryItem {
	out := []models.InventoryItem{}
	s.store.View(func(st *memory.State) {
		for _, item := range st.Inventory {
			out = append(out, item.Copy())
		}
	})
	return out
}

// Recipes lists every recipe line, optionally narrowed to one product.
func (s *Service) Recipes(productID string) []models.RecipeLine {
	out := []models.RecipeLine{}
	s.store.View(func(st *memory.State) {
		for _, line := range st.Recipes {
			if productID == "" || line.ProductID == productID {
				out = append(out, line)
			}
		}
	})
	return out
}

// Customers lists the customer directory.
func (s *Service) Customers() []models.Customer {
	out := []models.Customer{}
	s.store.View(func(st *memory.State) {
		out = append(out, st.Customers...)
	})
	return out
}

// AddCustomer registers a customer under the next free CUST-n id.
func (s *Service) AddCustomer(name, phone string) (models.Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Customer{}, models.ErrInvalidCustomer
	}

	var added models.Customer
	err := s.store.Update(func(st *memory.State) error {
		added = models.Customer{
			ID:    nextCustomerID(st.Customers),
			Name:  name,
			Phone: strings.TrimSpace(phone),
		}
		return st.AddCustomer(added)
	})
	if err != nil {
		return models.Customer{}, fmt.Errorf("add customer: %w", err)
	}

	s.logger.Info("customer added", zap.String("customer_id", added.ID), zap.String("name", added.Name))
	return added, nil
}

func nextCustomerID(existing []models.Customer) string {
	highest := 0
	for _, c := range existing {
		n, err := strconv.Atoi(strings.TrimPrefix(c.ID, customerIDPrefix))
		if err == nil && strings.HasPrefix(c.ID, customerIDPrefix) && n > highest {
			highest = n
		}
	}
	return customerIDPrefix + strconv.Itoa(highest+1)
}
