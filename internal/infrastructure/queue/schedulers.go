package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"kiosk-backend/internal/config"
	"kiosk-backend/internal/shared"
	"kiosk-backend/pkg/logger"
)

type Scheduler struct {
	scheduler   *asynq.Scheduler
	imageConfig config.ImageConfig
}

func NewScheduler(redisOpt asynq.RedisClientOpt, imageConfig config.ImageConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		redisOpt,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler:   scheduler,
		imageConfig: imageConfig,
	}
}

func (s *Scheduler) RegisterCleanupJobs() error {
	return s.registerSweepOrphanImagesJob()
}

// ================================================
// Sweep orphan images (IMAGE_SWEEP_CRON, hourly by default)
// ================================================
func (s *Scheduler) registerSweepOrphanImagesJob() error {
	payload, err := json.Marshal(shared.SweepOrphansPayload{
		RetentionSeconds: int64(s.imageConfig.OrphanRetention / time.Second),
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeSweepOrphanImages, payload)

	_, err = s.scheduler.Register(
		s.imageConfig.SweepCron,
		task,
		asynq.Queue(shared.QueueMaintenance),
		asynq.MaxRetry(2),
		asynq.Timeout(15*time.Minute),
		// hai lần chạy chồng nhau không có ích
		asynq.Unique(30*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register SweepOrphanImages job", err)
		return err
	}

	logger.Info("✓ Registered SweepOrphanImages", map[string]interface{}{
		"cron":      s.imageConfig.SweepCron,
		"retention": s.imageConfig.OrphanRetention.String(),
	})
	return nil
}

// Start begins enqueueing registered jobs; it does not block.
func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
