package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"garagehub/config"
	"garagehub/models"
	"garagehub/services/notification"
	"garagehub/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitMailWorker runs the async email worker in the background.
func InitMailWorker(notifSvc notification.NotificationService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisMailQueueDB,
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
	mux.HandleFunc(tasks.TypeAppointmentConfirmEmail, handleAppointmentEmailTask(notifSvc))

	// Start Redis health monitor
	go monitorRedisConnection()

	go func() {
		log.Println("[MailWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[MailWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[MailWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleAppointmentEmailTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.AppointmentEmailPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[MailWorker] invalid payload: %v", err)
			return err
		}

		if err := notifSvc.SendAppointmentConfirmationEmail(ctx, p); err != nil {
			log.Printf("[MailWorker] failed to send confirmation email for %s: %v", p.AppointmentID, err)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisMailQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[MailWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
