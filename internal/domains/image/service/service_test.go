package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kiosk-backend/internal/domains/image/model"
	"kiosk-backend/internal/mocks"
	"kiosk-backend/internal/shared/apperr"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, batchSize int) (*imageService, *mocks.Store, *mocks.MockStorage) {
	t.Helper()
	store := mocks.NewStore()
	store.Now = func() time.Time { return testNow }
	objects := mocks.NewMockStorage()

	svc := NewImageService(store.ImageRepo(), objects, &mocks.MockImageProcessor{}, Config{
		SweepBatchSize: batchSize,
		StorageTimeout: time.Second,
	}).(*imageService)
	svc.now = func() time.Time { return testNow }
	return svc, store, objects
}

func seedImage(store *mocks.Store, objects *mocks.MockStorage, owner uuid.UUID, url string, age time.Duration, articleID *uuid.UUID) *model.Image {
	id := uuid.New()
	img := &model.Image{
		ID:        id,
		URL:       url,
		Key:       "images/" + id.String(),
		OwnerID:   owner,
		ArticleID: articleID,
		CreatedAt: testNow.Add(-age),
	}
	store.Images[id] = img
	objects.Objects[img.Key] = []byte("x")
	return img
}

// =====================================================
// SWEEP
// =====================================================

func TestSweepOrphans_RetentionWindow(t *testing.T) {
	svc, store, objects := newTestService(t, 100)
	owner := uuid.New()
	articleID := uuid.New()

	stale := seedImage(store, objects, owner, "https://cdn.test/a.png", 2*time.Hour, nil)
	fresh := seedImage(store, objects, owner, "https://cdn.test/b.png", 30*time.Minute, nil)
	boundary := seedImage(store, objects, owner, "https://cdn.test/c.png", time.Hour, nil)
	linkedOld := seedImage(store, objects, owner, "https://cdn.test/d.png", 240*time.Hour, &articleID)

	result, err := svc.SweepOrphans(context.Background(), time.Hour)
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.Deleted)
	assert.NotContains(t, store.Images, stale.ID)
	assert.NotContains(t, objects.Objects, stale.Key)

	// now - created == retention is not older than the window
	assert.Contains(t, store.Images, boundary.ID)
	assert.Contains(t, store.Images, fresh.ID)
	assert.Contains(t, store.Images, linkedOld.ID)
	assert.Contains(t, objects.Objects, linkedOld.Key)
}

func TestSweepOrphans_PartialStorageFailureDeletesNothing(t *testing.T) {
	svc, store, objects := newTestService(t, 100)
	owner := uuid.New()

	var imgs []*model.Image
	for i := 0; i < 3; i++ {
		imgs = append(imgs, seedImage(store, objects, owner, fmt.Sprintf("https://cdn.test/%d.png", i), 48*time.Hour, nil))
	}
	objects.FailKeys[imgs[0].Key] = errors.New("access denied")
	objects.FailKeys[imgs[2].Key] = errors.New("slow down")

	result, err := svc.SweepOrphans(context.Background(), 24*time.Hour)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindUpstream))
	assert.Equal(t, int64(0), result.Deleted)

	for _, img := range imgs {
		assert.Contains(t, store.Images, img.ID, "record %s must survive", img.Key)
	}
}

func TestSweepOrphans_UnreportedKeyFailsClosed(t *testing.T) {
	svc, store, objects := newTestService(t, 100)
	owner := uuid.New()

	a := seedImage(store, objects, owner, "https://cdn.test/a.png", 48*time.Hour, nil)
	b := seedImage(store, objects, owner, "https://cdn.test/b.png", 48*time.Hour, nil)
	objects.Unreported[b.Key] = true

	_, err := svc.SweepOrphans(context.Background(), 24*time.Hour)
	require.Error(t, err)
	assert.Contains(t, store.Images, a.ID)
	assert.Contains(t, store.Images, b.ID)
}

func TestSweepOrphans_Batches(t *testing.T) {
	svc, store, objects := newTestService(t, 2)
	owner := uuid.New()
	for i := 0; i < 5; i++ {
		seedImage(store, objects, owner, fmt.Sprintf("https://cdn.test/%d.png", i), time.Duration(48+i)*time.Hour, nil)
	}

	result, err := svc.SweepOrphans(context.Background(), 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(5), result.Deleted)
	assert.Equal(t, 5, result.Scanned)
	assert.Equal(t, 3, result.Batches)
	assert.Empty(t, store.Images)
}

func TestSweepOrphans_LaterBatchFailureKeepsEarlierDeletes(t *testing.T) {
	svc, store, objects := newTestService(t, 2)
	owner := uuid.New()

	// oldest first: 0 and 1 go in the first batch
	var imgs []*model.Image
	for i := 0; i < 4; i++ {
		imgs = append(imgs, seedImage(store, objects, owner, fmt.Sprintf("https://cdn.test/%d.png", i), time.Duration(100-i)*time.Hour, nil))
	}
	objects.FailKeys[imgs[2].Key] = errors.New("boom")

	result, err := svc.SweepOrphans(context.Background(), 24*time.Hour)
	require.Error(t, err)
	assert.Equal(t, int64(2), result.Deleted)
	assert.NotContains(t, store.Images, imgs[0].ID)
	assert.NotContains(t, store.Images, imgs[1].ID)
	assert.Contains(t, store.Images, imgs[2].ID)
	assert.Contains(t, store.Images, imgs[3].ID)
}

func TestSweepOrphans_BatchCallError(t *testing.T) {
	svc, store, objects := newTestService(t, 10)
	img := seedImage(store, objects, uuid.New(), "https://cdn.test/a.png", 48*time.Hour, nil)
	objects.BatchErr = errors.New("connection reset")

	_, err := svc.SweepOrphans(context.Background(), 24*time.Hour)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindUpstream))
	assert.Contains(t, store.Images, img.ID)
}

func TestSweepOrphans_Rerun(t *testing.T) {
	svc, store, objects := newTestService(t, 10)
	seedImage(store, objects, uuid.New(), "https://cdn.test/a.png", 48*time.Hour, nil)

	first, err := svc.SweepOrphans(context.Background(), 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Deleted)

	second, err := svc.SweepOrphans(context.Background(), 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(0), second.Deleted)
	assert.Equal(t, 0, second.Batches)
}

func TestSweepOrphans_NegativeRetention(t *testing.T) {
	svc, _, _ := newTestService(t, 10)
	_, err := svc.SweepOrphans(context.Background(), -time.Second)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

// =====================================================
// LINKING
// =====================================================

func TestLinkToArticle_OnlyOwnOrphansWithMatchingURL(t *testing.T) {
	svc, store, objects := newTestService(t, 10)
	owner := uuid.New()
	other := uuid.New()
	oldArticle := uuid.New()
	newArticle := uuid.New()
	x := "https://cdn.test/x.png"

	a := seedImage(store, objects, owner, x, time.Minute, nil)
	b := seedImage(store, objects, owner, x, time.Hour, &oldArticle)
	c := seedImage(store, objects, other, x, time.Minute, nil)
	d := seedImage(store, objects, owner, "https://cdn.test/y.png", time.Minute, nil)

	linked, err := svc.LinkToArticle(context.Background(), []string{x}, owner, newArticle)
	require.NoError(t, err)
	assert.Equal(t, int64(1), linked)

	require.NotNil(t, store.Images[a.ID].ArticleID)
	assert.Equal(t, newArticle, *store.Images[a.ID].ArticleID)
	assert.Equal(t, oldArticle, *store.Images[b.ID].ArticleID)
	assert.Nil(t, store.Images[c.ID].ArticleID)
	assert.Nil(t, store.Images[d.ID].ArticleID)
}

func TestLinkToArticle_NoURLs(t *testing.T) {
	svc, store, _ := newTestService(t, 10)
	store.FailOn("image.LinkOrphans", errors.New("must not be called"))

	linked, err := svc.LinkToArticle(context.Background(), nil, uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.Zero(t, linked)
}

// =====================================================
// DELETE OWNED
// =====================================================

func TestDeleteOwned(t *testing.T) {
	owner := uuid.New()

	t.Run("not found", func(t *testing.T) {
		svc, _, _ := newTestService(t, 10)
		err := svc.DeleteOwned(context.Background(), "images/missing", owner)
		assert.ErrorIs(t, err, model.ErrImageNotFound)
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})

	t.Run("not owner", func(t *testing.T) {
		svc, store, objects := newTestService(t, 10)
		img := seedImage(store, objects, owner, "https://cdn.test/a.png", time.Minute, nil)

		err := svc.DeleteOwned(context.Background(), img.Key, uuid.New())
		assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
		assert.Empty(t, objects.DeleteCalls)
		assert.Contains(t, store.Images, img.ID)
	})

	t.Run("linked image", func(t *testing.T) {
		svc, store, objects := newTestService(t, 10)
		articleID := uuid.New()
		img := seedImage(store, objects, owner, "https://cdn.test/a.png", time.Minute, &articleID)

		err := svc.DeleteOwned(context.Background(), img.Key, owner)
		assert.ErrorIs(t, err, model.ErrAlreadyLinked)
		assert.Empty(t, objects.DeleteCalls)
	})

	t.Run("storage failure keeps record", func(t *testing.T) {
		svc, store, objects := newTestService(t, 10)
		img := seedImage(store, objects, owner, "https://cdn.test/a.png", time.Minute, nil)
		objects.FailKeys[img.Key] = errors.New("unavailable")

		err := svc.DeleteOwned(context.Background(), img.Key, owner)
		assert.True(t, apperr.IsKind(err, apperr.KindUpstream))
		assert.Contains(t, store.Images, img.ID)
	})

	t.Run("success", func(t *testing.T) {
		svc, store, objects := newTestService(t, 10)
		img := seedImage(store, objects, owner, "https://cdn.test/a.png", time.Minute, nil)

		require.NoError(t, svc.DeleteOwned(context.Background(), img.Key, owner))
		assert.NotContains(t, store.Images, img.ID)
		assert.NotContains(t, objects.Objects, img.Key)
		assert.Equal(t, []string{img.Key}, objects.DeleteCalls)
	})
}

// =====================================================
// UPLOAD
// =====================================================

func TestRecordUpload(t *testing.T) {
	svc, store, _ := newTestService(t, 10)
	owner := uuid.New()

	_, err := svc.RecordUpload(context.Background(), owner, model.RecordUploadRequest{Key: "images/a.png"})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.RecordUpload(context.Background(), owner, model.RecordUploadRequest{URL: "https://cdn.test/a.png"})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	res, err := svc.RecordUpload(context.Background(), owner, model.RecordUploadRequest{
		URL: "https://cdn.test/a.png",
		Key: "images/a.png",
	})
	require.NoError(t, err)
	assert.False(t, res.Linked)
	require.Contains(t, store.Images, res.ID)
	assert.True(t, store.Images[res.ID].IsOrphan())
	assert.Equal(t, owner, store.Images[res.ID].OwnerID)
}

func TestUpload_RemovesObjectWhenRecordFails(t *testing.T) {
	svc, store, objects := newTestService(t, 10)
	store.FailOn("image.Create", errors.New("db down"))

	_, err := svc.Upload(context.Background(), uuid.New(), []byte("png"))
	require.Error(t, err)
	assert.Empty(t, objects.Objects)
	assert.Len(t, objects.DeleteCalls, 1)
}

func TestUpload_InvalidImage(t *testing.T) {
	store := mocks.NewStore()
	svc := NewImageService(store.ImageRepo(), mocks.NewMockStorage(), &mocks.MockImageProcessor{Err: errors.New("unsupported format")}, Config{})

	_, err := svc.Upload(context.Background(), uuid.New(), []byte("nope"))
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}
