package handlers

import (
	"fmt"
	"net/http"
	"strings"

	businessRepo "bookline/database/repository/business"
	"bookline/models"
	"bookline/services/agent"
	"bookline/services/channel"
	"bookline/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatHandler serves the web chat widget. Unlike the messaging webhook the
// widget holds its own HTTP connection open, so the agent runs synchronously
// and the reply goes straight back in the response.
type ChatHandler struct {
	Repo    businessRepo.BusinessRepository
	Agent   agent.BookingAgent
	History channel.HistoryStore
}

func NewChatHandler(repo businessRepo.BusinessRepository, bookingAgent agent.BookingAgent, history channel.HistoryStore) *ChatHandler {
	return &ChatHandler{Repo: repo, Agent: bookingAgent, History: history}
}

// HandleChatMessage runs one widget turn.
func (h *ChatHandler) HandleChatMessage(c *gin.Context) {
	logger := utils.GetLogger()
	businessID := c.Param("businessID")

	var input struct {
		ChatID  string `json:"chatId" binding:"required"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	biz, err := h.Repo.GetByID(c.Request.Context(), businessID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load business", err.Error())
		return
	}
	if biz == nil {
		utils.JSONError(c, http.StatusNotFound, "business not found", businessID)
		return
	}

	chatKey := fmt.Sprintf("web:%s:%s", businessID, input.ChatID)

	// Reset fast path: clear history, skip the model.
	if t := strings.ToLower(strings.TrimSpace(input.Message)); t == channel.ResetCommand || t == strings.TrimPrefix(channel.ResetCommand, "/") {
		if err := h.History.Clear(c.Request.Context(), chatKey); err != nil {
			logger.Warn("failed to clear conversation history", zap.String("chatKey", chatKey), zap.Error(err))
		}
		c.JSON(http.StatusOK, gin.H{"reply": channel.Greeting})
		return
	}

	conv, err := h.History.Get(c.Request.Context(), chatKey)
	if err != nil {
		logger.Warn("failed to load conversation history, starting fresh",
			zap.String("chatKey", chatKey), zap.Error(err))
		conv = &models.Conversation{}
	}
	conv.Append(models.RoleUser, input.Message)

	reply, err := h.Agent.ProcessTurn(c.Request.Context(), biz, conv)
	if err != nil {
		logger.Error("agent turn failed", zap.String("chatKey", chatKey), zap.Error(err))
		reply = agent.FallbackReply
	}

	conv.Append(models.RoleAssistant, reply)
	if err := h.History.Set(c.Request.Context(), chatKey, conv); err != nil {
		logger.Warn("failed to save conversation history",
			zap.String("chatKey", chatKey), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
