// File: services/agent/interface.go
package agent

import (
	"context"

	"bookline/models"

	genai "github.com/google/generative-ai-go/genai"
)

// BookingAgent runs one conversational turn for a business: the model may
// call booking tools before it answers, and the reply is always non-empty
// natural language.
type BookingAgent interface {
	ProcessTurn(ctx context.Context, biz *models.Business, conv *models.Conversation) (string, error)
}

// modelClient is the slice of the Gemini API the agent needs. Tests swap in
// a scripted implementation.
type modelClient interface {
	Generate(ctx context.Context, system string, history []*genai.Content, parts ...genai.Part) (*genai.Content, error)
}
