// File: services/agent/agent.go
package agent

import (
	"context"
	"strings"
	"time"

	"bookline/models"
	"bookline/services/scheduling"
	"bookline/utils"

	genai "github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
)

// FallbackReply is returned whenever the two-phase loop ends without usable
// text. The user never sees an empty reply or a raw error.
const FallbackReply = "Sorry, I couldn't process that right now. Could you try rephrasing, or ask again in a moment?"

// phase tracks the two-phase execution contract. The model may answer with
// tool calls and no text at all; the loop below walks these states so that
// behavior is explicit and testable without a live model.
type phase int

const (
	phaseAwaitingText phase = iota
	phaseToolsPending
	phaseToolsExecuted
	phaseFinal
)

// DefaultBookingAgent is the production BookingAgent over a Gemini-backed
// model client.
type DefaultBookingAgent struct {
	Model     modelClient
	Scheduler scheduling.SchedulingService
	// Now is swappable in tests; defaults to time.Now.
	Now func() time.Time
}

func NewDefaultBookingAgent(apiKey, modelName string, scheduler scheduling.SchedulingService) *DefaultBookingAgent {
	return &DefaultBookingAgent{
		Model:     NewGeminiClient(apiKey, modelName),
		Scheduler: scheduler,
		Now:       time.Now,
	}
}

// ProcessTurn runs one conversational turn over the full history. The last
// user turn is the message under answer; everything before it is context.
func (a *DefaultBookingAgent) ProcessTurn(ctx context.Context, biz *models.Business, conv *models.Conversation) (string, error) {
	logger := utils.GetLogger()
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	system := buildSystemPrompt(biz, now())
	history, last := splitHistory(conv)

	var (
		text      string
		calls     []genai.FunctionCall
		content   *genai.Content
		responses []genai.Part
	)

	for st := phaseAwaitingText; st != phaseFinal; {
		switch st {
		case phaseAwaitingText:
			var err error
			content, err = a.Model.Generate(ctx, system, history, last...)
			if err != nil {
				return "", err
			}
			text, calls = splitContent(content)
			if len(calls) > 0 {
				st = phaseToolsPending
			} else {
				st = phaseFinal
			}

		case phaseToolsPending:
			responses = make([]genai.Part, 0, len(calls))
			for _, call := range calls {
				result := a.executeTool(ctx, biz, call)
				logger.Debug("agent tool executed",
					zap.String("tool", call.Name),
					zap.String("businessID", biz.ID))
				responses = append(responses, genai.FunctionResponse{
					Name:     call.Name,
					Response: result,
				})
			}
			st = phaseToolsExecuted

		case phaseToolsExecuted:
			// Second pass: feed every tool result back and explicitly ask
			// for a user-facing answer. The tool-use interface does not
			// guarantee text accompanies tool calls in the same turn.
			secondHistory := append(history,
				&genai.Content{Role: "user", Parts: last},
				content,
				&genai.Content{Role: "function", Parts: responses},
			)
			second, err := a.Model.Generate(ctx, system, secondHistory, genai.Text(answerNudge))
			if err != nil {
				return "", err
			}
			if secondText, _ := splitContent(second); strings.TrimSpace(secondText) != "" {
				text = secondText
			}
			st = phaseFinal
		}
	}

	if strings.TrimSpace(text) == "" {
		logger.Warn("agent produced no text, using fallback reply", zap.String("businessID", biz.ID))
		return FallbackReply, nil
	}
	return strings.TrimSpace(text), nil
}

// splitHistory converts conversation turns into model history plus the parts
// of the final user message.
func splitHistory(conv *models.Conversation) ([]*genai.Content, []genai.Part) {
	turns := conv.Turns
	lastIdx := -1
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role == models.RoleUser {
			lastIdx = i
			break
		}
	}
	if lastIdx == -1 {
		return nil, []genai.Part{genai.Text("")}
	}

	var history []*genai.Content
	for _, turn := range turns[:lastIdx] {
		role := "user"
		if turn.Role == models.RoleAssistant {
			role = "model"
		}
		history = append(history, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(turn.Content)},
		})
	}
	return history, []genai.Part{genai.Text(turns[lastIdx].Content)}
}

// splitContent separates a candidate's text from its function calls.
func splitContent(content *genai.Content) (string, []genai.FunctionCall) {
	if content == nil {
		return "", nil
	}
	var sb strings.Builder
	var calls []genai.FunctionCall
	for _, part := range content.Parts {
		switch p := part.(type) {
		case genai.Text:
			sb.WriteString(string(p))
		case genai.FunctionCall:
			calls = append(calls, p)
		}
	}
	return sb.String(), calls
}
