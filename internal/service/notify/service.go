package notify

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/juiceshop/internal/domain/models"
	"github.com/mamadbah2/juiceshop/internal/repository/memory"
)

// Service keeps the append-only notification log and hands messages to a Sink.
type Service struct {
	store  memory.Repository
	sink   Sink
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new notification service. A nil sink falls back to LogSink.
func NewService(store memory.Repository, sink Sink, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sink == nil {
		sink = NewLogSink(logger)
	}
	return &Service{
		store:  store,
		sink:   sink,
		logger: logger,
		now:    time.Now,
	}
}

// Append records an entry without delivering anything. The destination is not validated.
func (s *Service) Append(to, template, message, status string) models.NotificationLogEntry {
	entry := models.NotificationLogEntry{
		Timestamp: s.now(),
		To:        to,
		Template:  template,
		Message:   message,
		Status:    status,
	}

	_ = s.store.Update(func(st *memory.State) error {
		st.Notifications = append(st.Notifications, entry)
		return nil
	})

	return entry
}

// Send delivers the message through the sink and logs the outcome. The entry is
// recorded even when delivery fails, with StatusFailed.
func (s *Service) Send(ctx context.Context, to, template, message string) (models.NotificationLogEntry, error) {
	err := s.sink.Deliver(ctx, models.OutboundMessageRequest{To: to, Template: template, Message: message})

	status := models.StatusSent
	if err != nil {
		status = models.StatusFailed
		s.logger.Error("notification delivery failed", zap.String("to", to), zap.String("template", template), zap.Error(err))
	}

	entry := s.Append(to, template, message, status)
	if err != nil {
		return entry, fmt.Errorf("deliver %s: %w", template, err)
	}
	return entry, nil
}

// List returns the log in append order.
func (s *Service) List() []models.NotificationLogEntry {
	var out []models.NotificationLogEntry
	s.store.View(func(st *memory.State) {
		out = append(out, st.Notifications...)
	})
	return out
}
