package models

// Turn roles for conversation history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Turn is one message of a conversation.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation is the bounded working memory of the booking agent for one
// external chat identity. It is ephemeral, not an audit record.
type Conversation struct {
	Turns []Turn `json:"turns"`
}

// MaxConversationTurns caps history at the most recent turns.
const MaxConversationTurns = 20

// Append adds a turn and trims history to the cap, dropping the oldest.
func (c *Conversation) Append(role, content string) {
	c.Turns = append(c.Turns, Turn{Role: role, Content: content})
	if len(c.Turns) > MaxConversationTurns {
		c.Turns = c.Turns[len(c.Turns)-MaxConversationTurns:]
	}
}

// ChannelBinding routes one external chat identity to a business. Inbound
// webhook traffic is resolved through bindings, never by scanning for the
// first business with the channel enabled.
type ChannelBinding struct {
	BotID      string `bson:"botId" json:"botId"`
	ChatID     int64  `bson:"chatId" json:"chatId"`
	BusinessID string `bson:"businessId" json:"businessId"`
}
