package whatsapp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bwc/pos/internal/config"
	"github.com/bwc/pos/internal/domain/models"
	client "github.com/bwc/pos/pkg/clients/whatsapp"
)

type fakeClient struct {
	sent []client.SendTextMessageRequest
	err  error
}

func (f *fakeClient) SendTextMessage(_ context.Context, req client.SendTextMessageRequest) (*client.SendTextMessageResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, req)
	return &client.SendTextMessageResponse{}, nil
}

func TestNotifyManager(t *testing.T) {
	fc := &fakeClient{}
	svc := NewMetaWhatsAppService(config.WhatsAppConfig{ManagerID: "50255550000"}, fc, zap.NewNop())

	require.NoError(t, svc.NotifyManager(context.Background(), "Reporte diario"))
	require.Len(t, fc.sent, 1)
	assert.Equal(t, "50255550000", fc.sent[0].To)
	assert.Equal(t, "Reporte diario", fc.sent[0].Body)
}

func TestNotifyManager_NoRecipient(t *testing.T) {
	svc := NewMetaWhatsAppService(config.WhatsAppConfig{}, &fakeClient{}, nil)
	assert.ErrorIs(t, svc.NotifyManager(context.Background(), "x"), ErrNoRecipient)
}

func TestSendOutbound_PropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	svc := NewMetaWhatsAppService(config.WhatsAppConfig{}, &fakeClient{err: boom}, nil)

	err := svc.SendOutbound(context.Background(), models.OutboundMessageRequest{To: "1", Message: "x"})
	assert.ErrorIs(t, err, boom)
}
