package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bookline/config"

	"github.com/hibiken/asynq"
)

// TypeCalendarSync is the asynq task type for outbox entries.
const TypeCalendarSync = "calendar:sync"

// Sync actions carried by outbox tasks.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// SyncTaskPayload is the outbox entry: which appointment, which transition.
type SyncTaskPayload struct {
	AppointmentID string `json:"appointmentId"`
	Action        string `json:"action"`
}

// Outbox enqueues calendar sync tasks on Redis. Making every appointment
// state change a queued task keeps retry, backoff and failure visibility in
// one place instead of fire-and-forget calls scattered through the guard.
type Outbox struct {
	client *asynq.Client
}

// NewOutbox builds the outbox on the configured sync queue database.
func NewOutbox() *Outbox {
	return &Outbox{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisSyncQueueDB,
		}),
	}
}

func (o *Outbox) enqueue(ctx context.Context, appointmentID, action string, opts ...asynq.Option) error {
	payload, err := json.Marshal(SyncTaskPayload{AppointmentID: appointmentID, Action: action})
	if err != nil {
		return fmt.Errorf("failed to marshal sync payload: %w", err)
	}
	task := asynq.NewTask(TypeCalendarSync, payload)
	if _, err := o.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue %s sync for appointment %s: %w", action, appointmentID, err)
	}
	return nil
}

// ScheduleCreate enqueues event creation. Creation never retries: a crashed
// create leaves an appointment without a calendar id, which is recoverable,
// while a blind retry could mirror the same appointment twice.
func (o *Outbox) ScheduleCreate(ctx context.Context, appointmentID string) error {
	return o.enqueue(ctx, appointmentID, ActionCreate, asynq.MaxRetry(0), asynq.Timeout(30*time.Second))
}

// ScheduleUpdate enqueues an idempotent event patch with bounded retries.
func (o *Outbox) ScheduleUpdate(ctx context.Context, appointmentID string) error {
	return o.enqueue(ctx, appointmentID, ActionUpdate, asynq.MaxRetry(5), asynq.Timeout(30*time.Second))
}

// ScheduleDelete enqueues an idempotent event removal with bounded retries.
func (o *Outbox) ScheduleDelete(ctx context.Context, appointmentID string) error {
	return o.enqueue(ctx, appointmentID, ActionDelete, asynq.MaxRetry(5), asynq.Timeout(30*time.Second))
}

// Close releases the underlying queue client.
func (o *Outbox) Close() error {
	return o.client.Close()
}
