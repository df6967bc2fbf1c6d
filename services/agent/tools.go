// File: services/agent/tools.go
package agent

import (
	"context"
	"fmt"

	"bookline/models"
	"bookline/services/scheduling"

	genai "github.com/google/generative-ai-go/genai"
)

// Tool names exposed to the model.
const (
	toolGetServices       = "get_services"
	toolGetAvailableSlots = "get_available_slots"
	toolCreateAppointment = "create_appointment"
)

// toolDeclarations describes the three booking capabilities to the model.
func toolDeclarations() []*genai.FunctionDeclaration {
	return []*genai.FunctionDeclaration{
		{
			Name:        toolGetServices,
			Description: "Lists the services this business offers, with duration and price.",
		},
		{
			Name:        toolGetAvailableSlots,
			Description: "Lists the free time slots of the business for a specific date.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"date": {
						Type:        genai.TypeString,
						Description: "Date to check, format YYYY-MM-DD",
					},
				},
				Required: []string{"date"},
			},
		},
		{
			Name:        toolCreateAppointment,
			Description: "Books an appointment once the customer has confirmed name, service, date and time.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"customerName": {
						Type:        genai.TypeString,
						Description: "Full name of the customer",
					},
					"serviceName": {
						Type:        genai.TypeString,
						Description: "Exact name of the service from the catalog",
					},
					"appointmentTime": {
						Type:        genai.TypeString,
						Description: "Requested start, format YYYY-MM-DDTHH:mm",
					},
					"customerEmail": {
						Type:        genai.TypeString,
						Description: "Customer email, optional",
					},
					"customerPhone": {
						Type:        genai.TypeString,
						Description: "Customer phone, optional",
					},
					"notes": {
						Type:        genai.TypeString,
						Description: "Free-form notes, optional",
					},
				},
				Required: []string{"customerName", "serviceName", "appointmentTime"},
			},
		},
	}
}

func stringArg(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}

// executeTool dispatches one model-requested call to the scheduling service.
// Rejections come back as structured results for the model to phrase, never
// as raw errors.
func (a *DefaultBookingAgent) executeTool(ctx context.Context, biz *models.Business, call genai.FunctionCall) map[string]any {
	switch call.Name {
	case toolGetServices:
		services, err := a.Scheduler.GetServices(ctx, biz.ID)
		if err != nil {
			return map[string]any{"error": err.Error()}
		}
		list := make([]map[string]any, 0, len(services))
		for _, svc := range services {
			entry := map[string]any{
				"name":            svc.Name,
				"durationMinutes": svc.DurationMinutes,
			}
			if svc.Price > 0 {
				entry["price"] = svc.Price
			}
			list = append(list, entry)
		}
		return map[string]any{"services": list}

	case toolGetAvailableSlots:
		date := stringArg(call.Args, "date")
		slots, day, err := a.Scheduler.ResolveSlots(ctx, biz.ID, date)
		if err != nil {
			return map[string]any{"error": err.Error()}
		}
		free := make([]map[string]any, 0, len(slots))
		for _, slot := range slots {
			if slot.IsBooked {
				continue
			}
			free = append(free, map[string]any{"start": slot.Start, "end": slot.End})
		}
		return map[string]any{
			"date":    date,
			"weekday": string(day),
			"slots":   free,
		}

	case toolCreateAppointment:
		appt, err := a.Scheduler.CreateAppointment(ctx, scheduling.CreateAppointmentInput{
			BusinessID: biz.ID,
			Customer: models.Customer{
				Name:  stringArg(call.Args, "customerName"),
				Email: stringArg(call.Args, "customerEmail"),
				Phone: stringArg(call.Args, "customerPhone"),
			},
			StartTime:   stringArg(call.Args, "appointmentTime"),
			ServiceName: stringArg(call.Args, "serviceName"),
			Notes:       stringArg(call.Args, "notes"),
		})
		if err != nil {
			kind := "error"
			switch {
			case scheduling.IsConflict(err):
				kind = "conflict"
			case scheduling.IsValidation(err):
				kind = "validation"
			}
			return map[string]any{"success": false, "kind": kind, "error": err.Error()}
		}
		return map[string]any{"success": true, "appointmentId": appt.ID}

	default:
		return map[string]any{"error": fmt.Sprintf("unknown tool %q", call.Name)}
	}
}
