package model

import (
	"time"

	"github.com/google/uuid"
)

// Image is an uploaded object. It starts as an orphan (no article) and is
// linked at most once, when an article referencing its URL is published.
type Image struct {
	ID        uuid.UUID  `json:"id"`
	URL       string     `json:"url"`
	Key       string     `json:"key"`
	OwnerID   uuid.UUID  `json:"owner_id"`
	ArticleID *uuid.UUID `json:"article_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (i *Image) IsOrphan() bool {
	return i.ArticleID == nil
}

// SweepEligible reports an orphan strictly older than retention at now.
func (i *Image) SweepEligible(now time.Time, retention time.Duration) bool {
	return i.IsOrphan() && now.Sub(i.CreatedAt) > retention
}

// SweepCutoff is the created_at bound used by the sweep query.
func SweepCutoff(now time.Time, retention time.Duration) time.Time {
	return now.Add(-retention)
}

func (i *Image) ToResponse() *ImageResponse {
	return &ImageResponse{
		ID:        i.ID,
		URL:       i.URL,
		Key:       i.Key,
		Linked:    !i.IsOrphan(),
		CreatedAt: i.CreatedAt,
	}
}
