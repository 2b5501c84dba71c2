package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kiosk-backend/internal/mocks"
	"kiosk-backend/internal/shared"
)

func newTask(t *testing.T, payload shared.MemberAddedPayload) *asynq.Task {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return asynq.NewTask(shared.TypeJournalMemberAdded, data)
}

func TestMemberAddedHandler_SendsEmail(t *testing.T) {
	emails := &mocks.MockEmailService{}
	h := NewMemberAddedHandler(emails, "https://kiosk.test/")

	err := h.ProcessTask(context.Background(), newTask(t, shared.MemberAddedPayload{
		JournalName: "Night Shift",
		JournalSlug: "night-shift",
		Email:       "bob@kiosk.test",
		Name:        "Bob",
	}))
	require.NoError(t, err)

	require.Len(t, emails.Sent, 1)
	assert.Equal(t, []string{"bob@kiosk.test"}, emails.Sent[0].To)
	assert.Contains(t, emails.Sent[0].Subject, "Night Shift")
	assert.Equal(t, "https://kiosk.test/journals/night-shift", emails.Sent[0].Body)
}

func TestMemberAddedHandler_BadPayloadSkipsRetry(t *testing.T) {
	h := NewMemberAddedHandler(&mocks.MockEmailService{}, "https://kiosk.test")

	err := h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeJournalMemberAdded, []byte("{not json")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	err = h.ProcessTask(context.Background(), newTask(t, shared.MemberAddedPayload{JournalSlug: "x"}))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestMemberAddedHandler_SMTPFailureRetries(t *testing.T) {
	emails := &mocks.MockEmailService{Err: errors.New("421 service not available")}
	h := NewMemberAddedHandler(emails, "https://kiosk.test")

	err := h.ProcessTask(context.Background(), newTask(t, shared.MemberAddedPayload{
		JournalSlug: "x",
		Email:       "bob@kiosk.test",
	}))
	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}
