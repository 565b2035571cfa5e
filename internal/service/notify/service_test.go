package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mamadbah2/juiceshop/internal/domain/models"
	"github.com/mamadbah2/juiceshop/internal/repository/memory"
	client "github.com/mamadbah2/juiceshop/pkg/clients/whatsapp"
)

type failingSink struct{}

func (failingSink) Deliver(context.Context, models.OutboundMessageRequest) error {
	return errors.New("network down")
}

type sentText struct {
	to   string
	body string
}

type recordingClient struct {
	sent []sentText
	err  error
}

func (c *recordingClient) SendText(_ context.Context, to, body string) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	c.sent = append(c.sent, sentText{to: to, body: body})
	return "wamid.test", nil
}

func TestSendThroughLogSink(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	store := memory.NewSeededStore(nil)
	svc := NewService(store, NewLogSink(zap.New(core)), nil)
	fixed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	entry, err := svc.Send(context.Background(), "+919876543210", models.TemplateCustomerBill, "Thanks for visiting! Your total: ₹90.00.")
	require.NoError(t, err)
	assert.Equal(t, models.StatusSent, entry.Status)
	assert.Equal(t, fixed, entry.Timestamp)

	require.Equal(t, 1, logs.FilterMessage("simulated message delivered").Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "+919876543210", fields["to"])
	assert.Equal(t, models.TemplateCustomerBill, fields["template"])

	list := svc.List()
	require.Len(t, list, 1)
	assert.Equal(t, entry, list[0])
}

func TestSendRecordsFailure(t *testing.T) {
	store := memory.NewSeededStore(nil)
	svc := NewService(store, failingSink{}, nil)

	entry, err := svc.Send(context.Background(), "+91", models.TemplateCustomerBill, "hi")
	require.Error(t, err)
	assert.Equal(t, models.StatusFailed, entry.Status)
	assert.Len(t, svc.List(), 1)
}

func TestAppendDoesNotValidateDestination(t *testing.T) {
	svc := NewService(memory.NewSeededStore(nil), nil, nil)

	svc.Append("", "Anything", "text", "QUEUED")
	svc.Append("not-a-phone", models.TemplateDailySummary, "text", models.StatusSent)

	list := svc.List()
	require.Len(t, list, 2)
	assert.Equal(t, "QUEUED", list[0].Status)
	assert.Equal(t, "not-a-phone", list[1].To)
}

func TestWhatsAppSinkKeepsOwnerLocal(t *testing.T) {
	c := &recordingClient{}
	sink := NewWhatsAppSink(c, "OWNER", nil)

	require.NoError(t, sink.Deliver(context.Background(), models.OutboundMessageRequest{To: "OWNER", Message: "summary"}))
	require.NoError(t, sink.Deliver(context.Background(), models.OutboundMessageRequest{To: "+9111", Message: "bill"}))

	require.Len(t, c.sent, 1)
	assert.Equal(t, "+9111", c.sent[0].to)
	assert.Equal(t, "bill", c.sent[0].body)
}

func TestWhatsAppSinkFailureIsLoggedAsFailed(t *testing.T) {
	c := &recordingClient{err: &client.APIError{Status: 400, Code: 131030, Message: "invalid recipient"}}
	svc := NewService(memory.NewSeededStore(nil), NewWhatsAppSink(c, "OWNER", nil), nil)

	entry, err := svc.Send(context.Background(), "+9111", models.TemplateCustomerBill, "bill")

	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, models.StatusFailed, entry.Status)
}
