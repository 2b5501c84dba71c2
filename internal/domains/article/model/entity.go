package model

import (
	"time"

	"github.com/google/uuid"

	"kiosk-backend/internal/domains/content"
)

const (
	MinPrice       = 1
	MaxPrice       = 5
	MaxTitleLength = 200
	ExcerptLength  = 280
	FeedSize       = 20
)

// Article is immutable once published.
type Article struct {
	ID           uuid.UUID
	Title        string
	Content      *content.Node // stored as JSONB
	ThumbnailURL *string
	Price        *int // whole dollars, nil = free
	AuthorID     uuid.UUID
	JournalID    *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (a *Article) IsFree() bool {
	return a.Price == nil
}

// CanBeReadBy: free articles, the author, or a buyer.
func (a *Article) CanBeReadBy(viewerID *uuid.UUID, hasPurchased bool) bool {
	if a.IsFree() || hasPurchased {
		return true
	}
	return viewerID != nil && *viewerID == a.AuthorID
}

// ReferencedImageURLs is the union of content image srcs and the thumbnail.
func (a *Article) ReferencedImageURLs() []string {
	urls := content.ExtractImageURLs(a.Content)
	if a.ThumbnailURL == nil || *a.ThumbnailURL == "" {
		return urls
	}
	for _, u := range urls {
		if u == *a.ThumbnailURL {
			return urls
		}
	}
	return append(urls, *a.ThumbnailURL)
}

// ListFilter narrows article listings. Nil fields match everything.
type ListFilter struct {
	AuthorID  *uuid.UUID
	JournalID *uuid.UUID
	Page      int
	Limit     int
}
