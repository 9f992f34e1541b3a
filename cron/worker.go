package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"pristine/config"
	bookingRepo "pristine/database/repository/booking"
	"pristine/models"
	"pristine/services/notification"

	"github.com/hibiken/asynq"
)

const TypeReminderSend = "reminder:send"

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(notifSvc notification.NotificationService) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeReminderSend, handleReminderTask(notifSvc))

	// Start async worker with retry logic.
	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		data := map[string]string{"bookingId": p.BookingID}
		if err := notifSvc.NotifyUser(ctx, p.UserID, p.Title, p.Body, data); err != nil {
			log.Printf("[ReminderHandler] failed to record reminder: %v", err)
			return err
		}
		return nil
	}
}

// InitReminderScheduler enqueues a day-before reminder for every upcoming
// booking once an hour. Task IDs are derived from the booking, so re-runs of
// the sweep do not duplicate reminders.
func InitReminderScheduler(repo bookingRepo.BookingRepository) {
	client := asynq.NewClient(redisOpts())

	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()

		for {
			sweepReminders(client, repo)
			<-ticker.C
		}
	}()
}

func sweepReminders(client *asynq.Client, repo bookingRepo.BookingRepository) {
	now := time.Now()
	bookings, err := repo.ListUpcoming(now, now.Add(48*time.Hour))
	if err != nil {
		log.Printf("[ReminderScheduler] failed to load upcoming bookings: %v", err)
		return
	}

	for _, b := range bookings {
		fireAt := b.ScheduledAt.Add(-24 * time.Hour)
		if fireAt.Before(now) {
			continue
		}

		payload, err := json.Marshal(models.ReminderPayload{
			BookingID: b.ID,
			UserID:    b.CustomerID,
			Title:     "Upcoming cleaning",
			Body:      fmt.Sprintf("Your %s is scheduled for %s.", b.Service.Name, b.ScheduledAt.Format("Jan 2 at 15:04")),
		})
		if err != nil {
			continue
		}

		task := asynq.NewTask(TypeReminderSend, payload)
		_, err = client.Enqueue(task,
			asynq.ProcessAt(fireAt),
			asynq.TaskID("reminder:"+b.ID),
			asynq.Retention(24*time.Hour),
		)
		if err != nil && !errors.Is(err, asynq.ErrTaskIDConflict) {
			log.Printf("[ReminderScheduler] failed to enqueue reminder for %s: %v", b.ID, err)
		}
	}
}
