package channelRepo

import (
	"context"

	"bookline/models"
)

// BindingRepository maps external chat identities to businesses. A bot-level
// binding (ChatID zero) covers every chat of that bot; a chat-level binding
// overrides it.
type BindingRepository interface {
	Upsert(ctx context.Context, binding *models.ChannelBinding) error
	// Resolve returns the business id bound to the (botID, chatID) pair, or
	// the bot-level binding when no chat-level one exists. Empty string when
	// nothing is bound.
	Resolve(ctx context.Context, botID string, chatID int64) (string, error)
}
