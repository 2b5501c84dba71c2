package job

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kiosk-backend/internal/domains/image/model"
	imageService "kiosk-backend/internal/domains/image/service"
	"kiosk-backend/internal/mocks"
	"kiosk-backend/internal/shared"
)

func newHandler(t *testing.T) (*SweepOrphansHandler, *mocks.Store, *mocks.MockStorage) {
	t.Helper()
	store := mocks.NewStore()
	objects := mocks.NewMockStorage()
	svc := imageService.NewImageService(store.ImageRepo(), objects, &mocks.MockImageProcessor{}, imageService.Config{})
	return NewSweepOrphansHandler(svc, 24*time.Hour), store, objects
}

func seed(store *mocks.Store, objects *mocks.MockStorage, age time.Duration) *model.Image {
	id := uuid.New()
	img := &model.Image{
		ID:        id,
		URL:       "https://cdn.test/" + id.String(),
		Key:       "images/" + id.String(),
		OwnerID:   uuid.New(),
		CreatedAt: time.Now().Add(-age),
	}
	store.Images[id] = img
	objects.Objects[img.Key] = []byte("x")
	return img
}

func TestSweepOrphansHandler_DefaultRetention(t *testing.T) {
	h, store, objects := newHandler(t)
	old := seed(store, objects, 48*time.Hour)
	recent := seed(store, objects, 2*time.Hour)

	err := h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeSweepOrphanImages, nil))
	require.NoError(t, err)

	assert.NotContains(t, store.Images, old.ID)
	assert.NotContains(t, objects.Objects, old.Key)
	assert.Contains(t, store.Images, recent.ID)
}

func TestSweepOrphansHandler_PayloadOverridesRetention(t *testing.T) {
	h, store, objects := newHandler(t)
	recent := seed(store, objects, 2*time.Hour)

	payload, err := json.Marshal(shared.SweepOrphansPayload{RetentionSeconds: 3600})
	require.NoError(t, err)

	require.NoError(t, h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeSweepOrphanImages, payload)))
	assert.NotContains(t, store.Images, recent.ID)
}

func TestSweepOrphansHandler_Errors(t *testing.T) {
	h, store, objects := newHandler(t)

	err := h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeSweepOrphanImages, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	img := seed(store, objects, 48*time.Hour)
	objects.FailKeys[img.Key] = assert.AnError

	err = h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeSweepOrphanImages, nil))
	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
	assert.Contains(t, store.Images, img.ID)
}
