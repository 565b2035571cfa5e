package reporting

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/juiceshop/internal/domain/models"
	"github.com/mamadbah2/juiceshop/internal/repository/memory"
	"github.com/mamadbah2/juiceshop/internal/service/sales"
)

const (
	lowPerformerWindow = 7 * 24 * time.Hour
	lowPerformerLimit  = 3
)

// Notifier delivers the rendered summary.
type Notifier interface {
	Send(ctx context.Context, to, template, message string) (models.NotificationLogEntry, error)
}

// Service exposes daily summaries and the owner dashboard.
type Service struct {
	store    memory.Repository
	sales    *sales.Ledger
	notifier Notifier
	currency models.Currency
	owner    string
	logger   *zap.Logger
}

// NewService wires a new reporting service instance. owner is the reserved
// destination the daily summary is addressed to.
func NewService(store memory.Repository, ledger *sales.Ledger, notifier Notifier, currency models.Currency, owner string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		sales:    ledger,
		notifier: notifier,
		currency: currency,
		owner:    owner,
		logger:   logger,
	}
}

// SendDailySummary aggregates today's sales and sends them to the owner.
func (s *Service) SendDailySummary(ctx context.Context) (models.NotificationLogEntry, error) {
	summary := s.sales.Today()
	message := RenderDailySummary(summary, s.currency)

	entry, err := s.notifier.Send(ctx, s.owner, models.TemplateDailySummary, message)
	if err != nil {
		return entry, fmt.Errorf("send daily summary: %w", err)
	}

	s.logger.Info("daily summary sent",
		zap.Int("sales", summary.SalesCount),
		zap.String("amount", summary.SalesAmount.StringFixed(2)),
		zap.String("top_product", summary.TopProduct))
	return entry, nil
}

// RenderDailySummary formats the owner message.
func RenderDailySummary(summary models.DailySummary, currency models.Currency) string {
	return fmt.Sprintf("Today’s Sales: %s. Top Juice: %s.", currency.Format(summary.SalesAmount), summary.TopProduct)
}

// Dashboard collects today's figures, low stock, weak sellers and the latest
// forecast from a single consistent view of the state.
func (s *Service) Dashboard() models.Dashboard {
	now := s.sales.Now()
	cutoff := now.Add(-lowPerformerWindow)

	var dash models.Dashboard
	s.store.View(func(st *memory.State) {
		dash.Today = sales.DailySummary(st, now)
		dash.LowPerformers = sales.LowPerformers(st, cutoff, lowPerformerLimit)
		dash.LowStock = []models.InventoryItem{}
		for _, item := range st.Inventory {
			if item.LowStock() {
				dash.LowStock = append(dash.LowStock, item.Copy())
			}
		}
		dash.Predictions = append([]models.Prediction{}, st.Predictions...)
		dash.MessagesLogged = len(st.Notifications)
	})

	return dash
}
