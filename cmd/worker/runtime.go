package main

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"kiosk-backend/internal/infrastructure/queue"
	"kiosk-backend/internal/shared"
	"kiosk-backend/pkg/container"
)

// queueWeights: maintenance chạy được cả khi notification dồn nhiều.
var queueWeights = map[string]int{
	shared.QueueDefault:     10,
	shared.QueueMaintenance: 5,
	shared.QueueLow:         3,
}

// workerRuntime owns the asynq task server and the periodic scheduler.
type workerRuntime struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	scheduler *queue.Scheduler
}

func newWorkerRuntime(c *container.Container, handlers *HandlerRegistry) (*workerRuntime, error) {
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	server := asynq.NewServer(c.RedisOpt, asynq.Config{
		Queues:      queueWeights,
		Concurrency: 10,
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			retried, _ := asynq.GetRetryCount(ctx)
			log.Error().
				Err(err).
				Str("type", task.Type()).
				Int("retried", retried).
				Msg("task failed")
		}),
	})

	scheduler := queue.NewScheduler(c.RedisOpt, c.Config.Image)
	if err := scheduler.RegisterCleanupJobs(); err != nil {
		return nil, fmt.Errorf("register periodic jobs: %w", err)
	}

	return &workerRuntime{
		server:    server,
		mux:       mux,
		scheduler: scheduler,
	}, nil
}

// Start launches both loops without blocking. Signals are handled by
// the caller.
func (w *workerRuntime) Start() error {
	if err := w.server.Start(w.mux); err != nil {
		return fmt.Errorf("task server: %w", err)
	}
	log.Info().Interface("queues", queueWeights).Msg("[Worker] processing tasks")

	if err := w.scheduler.Start(); err != nil {
		w.server.Shutdown()
		return fmt.Errorf("scheduler: %w", err)
	}
	log.Info().Msg("[Scheduler] running")
	return nil
}

// Stop halts the scheduler first so no new sweep is enqueued while
// in-flight tasks drain.
func (w *workerRuntime) Stop() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
	log.Info().Msg("[Worker] ✓ stopped")
}
