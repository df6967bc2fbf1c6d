// File: services/agent/geminiClient.go
package agent

import (
	"context"
	"fmt"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient wraps the Gemini API behind the modelClient interface.
type GeminiClient struct {
	client    *genai.Client
	modelName string
}

func NewGeminiClient(apiKey, modelName string) *GeminiClient {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		panic(fmt.Sprintf("failed to create Gemini client: %v", err))
	}
	return &GeminiClient{client: client, modelName: modelName}
}

// Generate sends one turn to the model with the booking tools attached and
// returns the raw candidate content, which may hold text parts, function
// calls, or both.
func (g *GeminiClient) Generate(ctx context.Context, system string, history []*genai.Content, parts ...genai.Part) (*genai.Content, error) {
	model := g.client.GenerativeModel(g.modelName)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	model.Tools = []*genai.Tool{{FunctionDeclarations: toolDeclarations()}}

	session := model.StartChat()
	session.History = history

	resp, err := session.SendMessage(ctx, parts...)
	if err != nil {
		return nil, fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return &genai.Content{}, nil
	}
	return resp.Candidates[0].Content, nil
}
