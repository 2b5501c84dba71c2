package job

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"kiosk-backend/internal/infrastructure/email"
	"kiosk-backend/internal/shared"
)

// MemberAddedHandler emails a user who was added to a journal.
type MemberAddedHandler struct {
	emailService email.EmailService
	baseURL      string
}

func NewMemberAddedHandler(emailService email.EmailService, baseURL string) *MemberAddedHandler {
	return &MemberAddedHandler{
		emailService: emailService,
		baseURL:      strings.TrimRight(baseURL, "/"),
	}
}

func (h *MemberAddedHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.MemberAddedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal MemberAdded payload")
		return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}
	if payload.Email == "" {
		return fmt.Errorf("member added payload has no email: %w", asynq.SkipRetry)
	}

	log.Info().
		Str("email", payload.Email).
		Str("journal_id", payload.JournalID).
		Msg("Processing member added email")

	data := email.MemberAddedData{
		Email:       payload.Email,
		Name:        payload.Name,
		JournalName: payload.JournalName,
		JournalURL:  fmt.Sprintf("%s/journals/%s", h.baseURL, payload.JournalSlug),
	}
	// lỗi SMTP trả về để asynq retry
	if err := h.emailService.SendMemberAddedEmail(ctx, data); err != nil {
		return fmt.Errorf("send member added email: %w", err)
	}

	log.Info().
		Str("email", payload.Email).
		Msg("Member added email sent")
	return nil
}
