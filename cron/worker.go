package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"shearbook/config"
	holdRepo "shearbook/database/repository/hold"
	"shearbook/services/reservation"
	"shearbook/utils"
)

const TypeHoldRelease = "hold:release"

// HoldReleasePayload carries a queued compensation: a hold whose inline
// rollback failed and must be cancelled by the worker instead.
type HoldReleasePayload struct {
	HoldID string `json:"holdId"`
	Reason string `json:"reason"`
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// Enqueuer hands failed hold rollbacks to the asynq queue. It satisfies
// reservation.Compensator.
type Enqueuer struct {
	client *asynq.Client
}

func NewEnqueuer() *Enqueuer {
	return &Enqueuer{client: asynq.NewClient(redisOpts())}
}

func (e *Enqueuer) EnqueueHoldRelease(holdID, reason string) error {
	payload, err := json.Marshal(HoldReleasePayload{HoldID: holdID, Reason: reason})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeHoldRelease, payload)
	// Exhausted retries land in the archived set, which is the
	// dead-letter path an operator inspects for stuck slots.
	_, err = e.client.Enqueue(task,
		asynq.MaxRetry(10),
		asynq.Timeout(30*time.Second),
	)
	return err
}

// InitHoldWorker runs the asynq worker and the periodic orphan sweep in
// the background.
func InitHoldWorker(resSvc reservation.ReservationService, holds holdRepo.HoldRepository) {
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
	mux.HandleFunc(TypeHoldRelease, handleHoldRelease(resSvc))

	go sweepOrphans(holds)

	go func() {
		log.Println("[HoldWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[HoldWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)
				if attempts == maxAttempts {
					log.Fatal("[HoldWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleHoldRelease(resSvc reservation.ReservationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p HoldReleasePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[HoldRelease] invalid payload: %v", err)
			return err
		}

		if err := resSvc.ReleaseSlot(ctx, p.HoldID, p.Reason); err != nil {
			utils.GetLogger().Error("queued hold release failed",
				zap.String("holdId", p.HoldID), zap.Error(err))
			return err
		}
		utils.GetLogger().Info("queued hold release succeeded", zap.String("holdId", p.HoldID))
		return nil
	}
}

// sweepOrphans periodically cancels pending holds that made no forward
// progress, so a crashed client cannot block a slot forever.
func sweepOrphans(holds holdRepo.HoldRepository) {
	interval := time.Duration(config.AppConfig.HoldSweepMinutes) * time.Minute
	maxAge := time.Duration(config.AppConfig.HoldOrphanMinutes) * time.Minute

	for {
		time.Sleep(interval)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		n, err := holds.SweepOrphans(ctx, time.Now().Add(-maxAge))
		cancel()
		if err != nil {
			utils.GetLogger().Error("orphan hold sweep failed", zap.Error(err))
			continue
		}
		if n > 0 {
			utils.GetLogger().Info("orphan holds swept", zap.Int64("count", n))
		}
	}
}
