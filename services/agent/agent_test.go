// File: services/agent/agent_test.go
package agent

import (
	"context"
	"testing"
	"time"

	"bookline/models"
	"bookline/services/scheduling"

	genai "github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedModel returns canned contents in order and records every call.
type scriptedModel struct {
	replies []*genai.Content
	calls   [][]*genai.Content // history snapshot per call
	parts   [][]genai.Part
}

func (m *scriptedModel) Generate(ctx context.Context, system string, history []*genai.Content, parts ...genai.Part) (*genai.Content, error) {
	m.calls = append(m.calls, history)
	m.parts = append(m.parts, parts)
	if len(m.replies) == 0 {
		return &genai.Content{Role: "model"}, nil
	}
	next := m.replies[0]
	m.replies = m.replies[1:]
	return next, nil
}

// fakeScheduler serves a fixed catalog and records create calls.
type fakeScheduler struct {
	createErr error
	created   []scheduling.CreateAppointmentInput
}

func (f *fakeScheduler) ResolveSlots(ctx context.Context, businessID, date string) ([]models.Slot, models.Weekday, error) {
	return []models.Slot{
		{Start: "09:00", End: "12:00", IsBooked: true},
		{Start: "14:00", End: "18:00"},
	}, models.Monday, nil
}

func (f *fakeScheduler) CreateAppointment(ctx context.Context, in scheduling.CreateAppointmentInput) (*models.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, in)
	return &models.Appointment{ID: "appt-1", Status: models.StatusPending}, nil
}

func (f *fakeScheduler) ConfirmAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	return nil, nil
}

func (f *fakeScheduler) CancelAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	return nil, nil
}

func (f *fakeScheduler) GetServices(ctx context.Context, businessID string) ([]models.Service, error) {
	return []models.Service{{Name: "Haircut", DurationMinutes: 30, Price: 25}}, nil
}

func (f *fakeScheduler) ListAppointments(ctx context.Context, businessID, date string) ([]models.Appointment, error) {
	return nil, nil
}

func testAgent(model *scriptedModel, sched *fakeScheduler) *DefaultBookingAgent {
	return &DefaultBookingAgent{
		Model:     model,
		Scheduler: sched,
		Now:       func() time.Time { return time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC) },
	}
}

func userConv(messages ...string) *models.Conversation {
	conv := &models.Conversation{}
	for i, m := range messages {
		role := models.RoleUser
		if i%2 == 1 {
			role = models.RoleAssistant
		}
		conv.Append(role, m)
	}
	return conv
}

func TestProcessTurnPlainText(t *testing.T) {
	model := &scriptedModel{replies: []*genai.Content{
		{Role: "model", Parts: []genai.Part{genai.Text("We're open Monday to Friday!")}},
	}}
	agent := testAgent(model, &fakeScheduler{})

	reply, err := agent.ProcessTurn(context.Background(), &models.Business{ID: "biz-1"}, userConv("when are you open?"))
	require.NoError(t, err)
	assert.Equal(t, "We're open Monday to Friday!", reply)
	assert.Len(t, model.calls, 1)
}

func TestProcessTurnToolRound(t *testing.T) {
	// First pass: tool call only, no text. Second pass: the answer.
	model := &scriptedModel{replies: []*genai.Content{
		{Role: "model", Parts: []genai.Part{
			genai.FunctionCall{Name: toolGetAvailableSlots, Args: map[string]any{"date": "2026-08-31"}},
		}},
		{Role: "model", Parts: []genai.Part{genai.Text("Monday afternoon from 2pm is free.")}},
	}}
	agent := testAgent(model, &fakeScheduler{})

	reply, err := agent.ProcessTurn(context.Background(), &models.Business{ID: "biz-1"}, userConv("anything free on Monday?"))
	require.NoError(t, err)
	assert.Equal(t, "Monday afternoon from 2pm is free.", reply)
	require.Len(t, model.calls, 2)

	// The second pass carries the user turn, the model's tool call and the
	// function responses.
	second := model.calls[1]
	require.Len(t, second, 3)
	assert.Equal(t, "user", second[0].Role)
	assert.Equal(t, "model", second[1].Role)
	assert.Equal(t, "function", second[2].Role)
	fr, ok := second[2].Parts[0].(genai.FunctionResponse)
	require.True(t, ok)
	assert.Equal(t, toolGetAvailableSlots, fr.Name)
}

func TestProcessTurnBooksAppointment(t *testing.T) {
	sched := &fakeScheduler{}
	model := &scriptedModel{replies: []*genai.Content{
		{Role: "model", Parts: []genai.Part{
			genai.FunctionCall{Name: toolCreateAppointment, Args: map[string]any{
				"customerName":    "Ada Lovelace",
				"serviceName":     "Haircut",
				"appointmentTime": "2026-08-31T14:00",
			}},
		}},
		{Role: "model", Parts: []genai.Part{genai.Text("You're booked for Monday at 2pm, Ada!")}},
	}}
	agent := testAgent(model, sched)

	reply, err := agent.ProcessTurn(context.Background(), &models.Business{ID: "biz-1"}, userConv("book me Monday 2pm"))
	require.NoError(t, err)
	assert.Contains(t, reply, "booked")
	require.Len(t, sched.created, 1)
	assert.Equal(t, "Ada Lovelace", sched.created[0].Customer.Name)
	assert.Equal(t, "2026-08-31T14:00", sched.created[0].StartTime)
}

func TestProcessTurnConflictSurfacesToModel(t *testing.T) {
	sched := &fakeScheduler{createErr: scheduling.NewConflictError("slot already booked")}
	model := &scriptedModel{replies: []*genai.Content{
		{Role: "model", Parts: []genai.Part{
			genai.FunctionCall{Name: toolCreateAppointment, Args: map[string]any{
				"customerName":    "Ada",
				"serviceName":     "Haircut",
				"appointmentTime": "2026-08-31T14:00",
			}},
		}},
		{Role: "model", Parts: []genai.Part{genai.Text("That slot is taken, how about 3pm?")}},
	}}
	agent := testAgent(model, sched)

	reply, err := agent.ProcessTurn(context.Background(), &models.Business{ID: "biz-1"}, userConv("book me Monday 2pm"))
	require.NoError(t, err)
	assert.Equal(t, "That slot is taken, how about 3pm?", reply)

	fr := model.calls[1][2].Parts[0].(genai.FunctionResponse)
	assert.Equal(t, false, fr.Response["success"])
	assert.Equal(t, "conflict", fr.Response["kind"])
}

func TestProcessTurnFallbackWhenModelStaysSilent(t *testing.T) {
	// Tool call in the first pass, still no text in the second.
	model := &scriptedModel{replies: []*genai.Content{
		{Role: "model", Parts: []genai.Part{
			genai.FunctionCall{Name: toolGetServices},
		}},
		{Role: "model"},
	}}
	agent := testAgent(model, &fakeScheduler{})

	reply, err := agent.ProcessTurn(context.Background(), &models.Business{ID: "biz-1"}, userConv("hi"))
	require.NoError(t, err)
	assert.Equal(t, FallbackReply, reply)
}

func TestProcessTurnFallbackOnEmptyFirstPass(t *testing.T) {
	model := &scriptedModel{replies: []*genai.Content{{Role: "model"}}}
	agent := testAgent(model, &fakeScheduler{})

	reply, err := agent.ProcessTurn(context.Background(), &models.Business{ID: "biz-1"}, userConv("hi"))
	require.NoError(t, err)
	assert.Equal(t, FallbackReply, reply)
}

func TestSplitHistory(t *testing.T) {
	conv := userConv("hello", "hi there", "anything on Monday?")
	history, last := splitHistory(conv)

	require.Len(t, history, 2)
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, "model", history[1].Role)
	require.Len(t, last, 1)
	assert.Equal(t, genai.Text("anything on Monday?"), last[0])
}

func TestExecuteToolUnknownName(t *testing.T) {
	agent := testAgent(&scriptedModel{}, &fakeScheduler{})
	result := agent.executeTool(context.Background(), &models.Business{ID: "biz-1"},
		genai.FunctionCall{Name: "delete_everything"})
	assert.Contains(t, result["error"], "unknown tool")
}
