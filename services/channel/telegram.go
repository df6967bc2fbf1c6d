// File: services/channel/telegram.go
package channel

import (
	"context"
	"fmt"
	"strings"
	"time"

	businessRepo "bookline/database/repository/business"
	channelRepo "bookline/database/repository/channel"
	"bookline/models"
	"bookline/services/agent"
	"bookline/utils"

	tgbot "github.com/go-telegram/bot"
	"go.uber.org/zap"
)

// ResetCommand clears a chat's history without touching the model.
const ResetCommand = "/restart"

// Greeting is the canned reply after a reset.
const Greeting = "Hi! I'm the booking assistant. Ask me about our services or tell me when you'd like to come in."

// InboundMessage is the webhook payload shape the platform delivers.
type InboundMessage struct {
	Message struct {
		Text string `json:"text"`
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
	} `json:"message"`
}

// MessageSender pushes an outbound reply to the chat platform.
type MessageSender interface {
	Send(ctx context.Context, chatID int64, text string) error
}

// TelegramSender sends through the Telegram Bot API.
type TelegramSender struct {
	Bot *tgbot.Bot
}

func (s *TelegramSender) Send(ctx context.Context, chatID int64, text string) error {
	_, err := s.Bot.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	return err
}

// NoopSender drops outbound messages. It stands in when no bot token is
// configured, e.g. in local development or tests.
type NoopSender struct{}

func (NoopSender) Send(ctx context.Context, chatID int64, text string) error {
	return nil
}

// TelegramAdapter bridges the Telegram webhook to the booking agent. The
// platform expects an acknowledgment within roughly ten seconds; the model
// round-trip can take longer, so all agent work runs decoupled from the
// webhook response.
type TelegramAdapter struct {
	History      HistoryStore
	Agent        agent.BookingAgent
	Bindings     channelRepo.BindingRepository
	BusinessRepo businessRepo.BusinessRepository
	Sender       MessageSender
	// ProcessTimeout bounds one background turn; defaults to 90s.
	ProcessTimeout time.Duration
}

// HandleInbound validates, routes and schedules processing of one webhook
// delivery. It always returns quickly; the error return exists only for
// logging, the HTTP layer acknowledges 200 regardless.
func (a *TelegramAdapter) HandleInbound(ctx context.Context, botID string, msg InboundMessage) error {
	logger := utils.GetLogger()

	text := strings.TrimSpace(msg.Message.Text)
	chatID := msg.Message.Chat.ID
	if text == "" || chatID == 0 {
		return fmt.Errorf("channelError: empty text or missing chat id")
	}

	businessID, err := a.Bindings.Resolve(ctx, botID, chatID)
	if err != nil {
		return fmt.Errorf("channelError: failed to resolve binding: %w", err)
	}
	if businessID == "" {
		return fmt.Errorf("channelError: no business bound to bot %s", botID)
	}

	chatKey := chatKeyFor(botID, chatID)

	// Reset fast path: no history, no model, just the canned greeting.
	if isResetCommand(text) {
		if err := a.History.Clear(ctx, chatKey); err != nil {
			logger.Warn("failed to clear conversation history", zap.String("chatKey", chatKey), zap.Error(err))
		}
		go a.send(chatID, Greeting)
		return nil
	}

	go a.process(botID, chatID, businessID, text)
	return nil
}

// process runs one full agent turn in the background.
func (a *TelegramAdapter) process(botID string, chatID int64, businessID, text string) {
	logger := utils.GetLogger()

	timeout := a.ProcessTimeout
	if timeout == 0 {
		timeout = 90 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	biz, err := a.BusinessRepo.GetByID(ctx, businessID)
	if err != nil || biz == nil {
		logger.Error("failed to load business for chat",
			zap.String("businessID", businessID), zap.Error(err))
		a.send(chatID, agent.FallbackReply)
		return
	}

	chatKey := chatKeyFor(botID, chatID)
	conv, err := a.History.Get(ctx, chatKey)
	if err != nil {
		logger.Warn("failed to load conversation history, starting fresh",
			zap.String("chatKey", chatKey), zap.Error(err))
		conv = &models.Conversation{}
	}
	conv.Append(models.RoleUser, text)

	reply, err := a.Agent.ProcessTurn(ctx, biz, conv)
	if err != nil {
		logger.Error("agent turn failed", zap.String("chatKey", chatKey), zap.Error(err))
		reply = agent.FallbackReply
	}

	conv.Append(models.RoleAssistant, reply)
	if err := a.History.Set(ctx, chatKey, conv); err != nil {
		logger.Warn("failed to save conversation history",
			zap.String("chatKey", chatKey), zap.Error(err))
	}

	a.send(chatID, StripMarkdown(reply))
}

func (a *TelegramAdapter) send(chatID int64, text string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.Sender.Send(ctx, chatID, text); err != nil {
		utils.GetLogger().Error("failed to send telegram message",
			zap.Int64("chatID", chatID), zap.Error(err))
	}
}

func chatKeyFor(botID string, chatID int64) string {
	return fmt.Sprintf("%s:%d", botID, chatID)
}

func isResetCommand(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	return t == ResetCommand || t == strings.TrimPrefix(ResetCommand, "/")
}
