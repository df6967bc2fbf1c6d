package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"bookline/models"
	"bookline/services/channel"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allBindings routes every chat of every bot to one business.
type allBindings struct{ businessID string }

func (b allBindings) Upsert(ctx context.Context, binding *models.ChannelBinding) error { return nil }

func (b allBindings) Resolve(ctx context.Context, botID string, chatID int64) (string, error) {
	return b.businessID, nil
}

// recordingSender captures outbound messages.
type recordingSender struct{ sent chan string }

func (s *recordingSender) Send(ctx context.Context, chatID int64, text string) error {
	s.sent <- text
	return nil
}

func webhookRouter(bizRepo *fakeBizRepo, sender channel.MessageSender, businessID string) *gin.Engine {
	adapter := &channel.TelegramAdapter{
		History:      newMemHistory(),
		Agent:        echoAgent{reply: "booked!"},
		Bindings:     allBindings{businessID: businessID},
		BusinessRepo: bizRepo,
		Sender:       sender,
	}
	h := NewTelegramWebhookHandler(adapter)
	r := gin.New()
	r.POST("/api/telegram/webhook/:botID", h.HandleWebhook)
	return r
}

func TestWebhookProcessesUpdate(t *testing.T) {
	sender := &recordingSender{sent: make(chan string, 1)}
	r := webhookRouter(newFakeBizRepo(handlerBusiness()), sender, "biz-1")

	w := doJSON(r, http.MethodPost, "/api/telegram/webhook/bot-1", gin.H{
		"message": gin.H{"text": "hi", "chat": gin.H{"id": 42}},
	})
	require.Equal(t, http.StatusOK, w.Code)

	select {
	case text := <-sender.sent:
		assert.Equal(t, "booked!", text)
	case <-time.After(2 * time.Second):
		t.Fatal("no outbound message within 2s")
	}
}

func TestWebhookAcksMalformedPayload(t *testing.T) {
	r := webhookRouter(newFakeBizRepo(handlerBusiness()), &recordingSender{sent: make(chan string, 1)}, "biz-1")

	w := doRaw(r, http.MethodPost, "/api/telegram/webhook/bot-1", "{not json")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestWebhookAcksUnboundBot(t *testing.T) {
	r := webhookRouter(newFakeBizRepo(handlerBusiness()), &recordingSender{sent: make(chan string, 1)}, "")

	w := doJSON(r, http.MethodPost, "/api/telegram/webhook/bot-9", gin.H{
		"message": gin.H{"text": "hi", "chat": gin.H{"id": 42}},
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWebhookAcksEmptyUpdate(t *testing.T) {
	r := webhookRouter(newFakeBizRepo(handlerBusiness()), &recordingSender{sent: make(chan string, 1)}, "biz-1")

	// Service updates without a message body are acked and dropped.
	w := doJSON(r, http.MethodPost, "/api/telegram/webhook/bot-1", gin.H{"update_id": 7})
	assert.Equal(t, http.StatusOK, w.Code)
}
