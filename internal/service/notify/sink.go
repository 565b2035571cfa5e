package notify

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/juiceshop/internal/domain/models"
	client "github.com/mamadbah2/juiceshop/pkg/clients/whatsapp"
)

// Sink delivers a rendered message to its destination.
type Sink interface {
	Deliver(ctx context.Context, req models.OutboundMessageRequest) error
}

// LogSink simulates delivery: it logs the message and always succeeds.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink builds the simulated sink.
func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{logger: logger}
}

// Deliver logs the outbound message.
func (s *LogSink) Deliver(_ context.Context, req models.OutboundMessageRequest) error {
	s.logger.Info("simulated message delivered",
		zap.String("to", req.To),
		zap.String("template", req.Template),
		zap.String("message", req.Message))
	return nil
}

// WhatsAppSink forwards messages to the WhatsApp Cloud API.
type WhatsAppSink struct {
	client client.Client
	owner  string
	logger *zap.Logger
}

// NewWhatsAppSink wraps a WhatsApp client. Messages addressed to owner are
// only logged since the reserved destination is not a phone number.
func NewWhatsAppSink(c client.Client, owner string, logger *zap.Logger) *WhatsAppSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WhatsAppSink{client: c, owner: owner, logger: logger}
}

// Deliver sends the message as a WhatsApp text.
func (s *WhatsAppSink) Deliver(ctx context.Context, req models.OutboundMessageRequest) error {
	if req.To == s.owner {
		s.logger.Info("owner message kept local", zap.String("template", req.Template))
		return nil
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	id, err := s.client.SendText(ctxWithTimeout, req.To, req.Message)
	if err != nil {
		return err
	}
	s.logger.Info("message delivered", zap.String("template", req.Template), zap.String("message_id", id))
	return nil
}
