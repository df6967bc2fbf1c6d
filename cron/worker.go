package cron

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"bookline/config"
	appointmentRepo "bookline/database/repository/appointment"
	businessRepo "bookline/database/repository/business"
	"bookline/models"
	"bookline/services/calendar"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitSyncWorker runs the calendar sync outbox worker in background.
func InitSyncWorker(
	bizRepo businessRepo.BusinessRepository,
	apptRepo appointmentRepo.AppointmentRepository,
	syncSvc calendar.SyncService,
) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSyncQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(calendar.TypeCalendarSync, handleSyncTask(bizRepo, apptRepo, syncSvc))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[SyncWorker] Starting calendar sync worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[SyncWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[SyncWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleSyncTask(
	bizRepo businessRepo.BusinessRepository,
	apptRepo appointmentRepo.AppointmentRepository,
	syncSvc calendar.SyncService,
) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p calendar.SyncTaskPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[SyncHandler] Invalid payload: %v", err)
			return err
		}

		appt, err := apptRepo.GetByID(ctx, p.AppointmentID)
		if err != nil {
			return err
		}
		if appt == nil {
			log.Printf("[SyncHandler] Appointment %s no longer exists, dropping %s task", p.AppointmentID, p.Action)
			return nil
		}

		biz, err := bizRepo.GetByID(ctx, appt.BusinessID)
		if err != nil {
			return err
		}
		if biz == nil || !biz.Calendar.Enabled {
			log.Printf("[SyncHandler] Calendar sync disabled for business of appointment %s, dropping task", p.AppointmentID)
			return nil
		}

		switch p.Action {
		case calendar.ActionCreate:
			return handleCreate(ctx, apptRepo, syncSvc, biz, appt)
		case calendar.ActionUpdate:
			if appt.ExternalCalendarEventID == "" {
				// Mirror never existed; a create task will cover it.
				return nil
			}
			if err := syncSvc.UpdateEvent(ctx, biz, appt); err != nil {
				log.Printf("[SyncHandler] Failed to update event for appointment %s: %v", appt.ID, err)
				return err
			}
			return nil
		case calendar.ActionDelete:
			if err := syncSvc.DeleteEvent(ctx, biz, appt); err != nil {
				log.Printf("[SyncHandler] Failed to delete event for appointment %s: %v", appt.ID, err)
				return err
			}
			return nil
		default:
			log.Printf("[SyncHandler] Unknown action %q, dropping task", p.Action)
			return nil
		}
	}
}

func handleCreate(
	ctx context.Context,
	apptRepo appointmentRepo.AppointmentRepository,
	syncSvc calendar.SyncService,
	biz *models.Business,
	appt *models.Appointment,
) error {
	if appt.Status != models.StatusConfirmed {
		log.Printf("[SyncHandler] Appointment %s is %s, not mirroring", appt.ID, appt.Status)
		return nil
	}
	if appt.ExternalCalendarEventID != "" {
		// Already mirrored; creating again would duplicate the event.
		return nil
	}

	eventID, err := syncSvc.CreateEvent(ctx, biz, appt)
	if err != nil {
		if errors.Is(err, calendar.ErrUserNotConnected) || errors.Is(err, calendar.ErrNoToken) {
			log.Printf("[SyncHandler] Owner of appointment %s has no calendar grant: %v", appt.ID, err)
			return nil
		}
		log.Printf("[SyncHandler] Failed to create event for appointment %s: %v", appt.ID, err)
		return err
	}

	if err := apptRepo.SetCalendarEventID(ctx, appt.ID, eventID); err != nil {
		// The event exists but the id was lost; the appointment stays valid
		// without a calendar id rather than risking a duplicate mirror.
		log.Printf("[SyncHandler] Failed to store event id for appointment %s: %v", appt.ID, err)
		return nil
	}
	return nil
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSyncQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[SyncWorker] Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
