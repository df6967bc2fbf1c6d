package handlers

import (
	"net/http"

	"bookline/services/channel"
	"bookline/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TelegramWebhookHandler receives inbound Telegram updates. The platform
// retries any non-200 answer aggressively, so every outcome, including a
// malformed payload, is acknowledged with 200 and a plain body.
type TelegramWebhookHandler struct {
	Adapter *channel.TelegramAdapter
}

func NewTelegramWebhookHandler(adapter *channel.TelegramAdapter) *TelegramWebhookHandler {
	return &TelegramWebhookHandler{Adapter: adapter}
}

// HandleWebhook acknowledges immediately; the adapter schedules the agent
// work in the background.
func (h *TelegramWebhookHandler) HandleWebhook(c *gin.Context) {
	logger := utils.GetLogger()
	botID := c.Param("botID")

	var msg channel.InboundMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		logger.Warn("dropping malformed telegram payload", zap.String("botID", botID), zap.Error(err))
		c.String(http.StatusOK, "ok")
		return
	}

	if err := h.Adapter.HandleInbound(c.Request.Context(), botID, msg); err != nil {
		logger.Warn("dropping telegram update", zap.String("botID", botID), zap.Error(err))
	}
	c.String(http.StatusOK, "ok")
}
