package main

import (
	"github.com/hibiken/asynq"

	imageJob "kiosk-backend/internal/domains/image/job"
	journalJob "kiosk-backend/internal/domains/journal/job"
	"kiosk-backend/internal/shared"
	"kiosk-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	// Maintenance
	sweepOrphans *imageJob.SweepOrphansHandler

	// Notifications
	memberAdded *journalJob.MemberAddedHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		sweepOrphans: imageJob.NewSweepOrphansHandler(c.ImageService, c.Config.Image.OrphanRetention),
		memberAdded:  journalJob.NewMemberAddedHandler(c.EmailService, c.Config.App.BaseURL),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeSweepOrphanImages, h.sweepOrphans.ProcessTask)
	mux.HandleFunc(shared.TypeJournalMemberAdded, h.memberAdded.ProcessTask)
}
