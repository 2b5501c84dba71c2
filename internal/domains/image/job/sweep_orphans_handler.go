package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	imageService "kiosk-backend/internal/domains/image/service"
	"kiosk-backend/internal/shared"
)

// SweepOrphansHandler runs the periodic orphan image sweep.
type SweepOrphansHandler struct {
	imageService     imageService.ServiceInterface
	defaultRetention time.Duration
}

func NewSweepOrphansHandler(imageService imageService.ServiceInterface, defaultRetention time.Duration) *SweepOrphansHandler {
	return &SweepOrphansHandler{
		imageService:     imageService,
		defaultRetention: defaultRetention,
	}
}

// ProcessTask returns the sweep error so asynq retries the task; a re-run
// only revisits what is still orphan and stale.
func (h *SweepOrphansHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.SweepOrphansPayload
	if len(task.Payload()) > 0 {
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			log.Error().Err(err).Msg("Failed to unmarshal SweepOrphans payload")
			return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
		}
	}

	retention := h.defaultRetention
	if payload.RetentionSeconds > 0 {
		retention = time.Duration(payload.RetentionSeconds) * time.Second
	}

	log.Info().Dur("retention", retention).Msg("Sweeping orphan images")

	result, err := h.imageService.SweepOrphans(ctx, retention)
	if err != nil {
		return fmt.Errorf("sweep orphans: %w", err)
	}

	log.Info().
		Int("scanned", result.Scanned).
		Int64("deleted", result.Deleted).
		Msg("Orphan images swept")
	return nil
}
