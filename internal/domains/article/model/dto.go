package model

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"kiosk-backend/internal/domains/content"
)

// =====================================================
// PUBLISH
// =====================================================

type PublishRequest struct {
	Title        string          `json:"title"`
	Content      json.RawMessage `json:"content"`
	ThumbnailURL *string         `json:"thumbnail_url,omitempty"`
	// float so that 2.5 reaches validation instead of failing to bind
	Price     *float64   `json:"price,omitempty"`
	JournalID *uuid.UUID `json:"journal_id,omitempty"`
}

func (r PublishRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.By(notBlank),
			validation.RuneLength(1, MaxTitleLength),
		),
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
			validation.By(validDocument),
		),
		validation.Field(&r.ThumbnailURL, validation.NilOrNotEmpty, is.URL),
		validation.Field(&r.Price, validation.By(validPrice)),
	)
}

// ParsedContent is only meaningful after Validate succeeded.
func (r PublishRequest) ParsedContent() (*content.Node, error) {
	return content.Parse(r.Content)
}

// WholePrice converts a validated price.
func (r PublishRequest) WholePrice() *int {
	if r.Price == nil {
		return nil
	}
	p := int(*r.Price)
	return &p
}

func notBlank(value interface{}) error {
	if s, _ := value.(string); strings.TrimSpace(s) == "" {
		return validation.NewError("validation_blank", "must not be blank")
	}
	return nil
}

func validDocument(value interface{}) error {
	raw, _ := value.(json.RawMessage)
	if len(raw) == 0 {
		return nil // Required handles it
	}
	if string(raw) == "null" {
		return errors.New("content is required")
	}
	root, err := content.Parse(raw)
	if err != nil {
		return errors.New("must be a valid document")
	}
	if root.IsEmpty() {
		return errors.New("document has no type")
	}
	return nil
}

func validPrice(value interface{}) error {
	p, _ := value.(*float64)
	if p == nil {
		return nil
	}
	if *p != math.Trunc(*p) || *p < MinPrice || *p > MaxPrice {
		return errors.New("must be a whole number between 1 and 5")
	}
	return nil
}

// =====================================================
// RESPONSES
// =====================================================

type AuthorInfo struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Image *string   `json:"image,omitempty"`
}

type JournalInfo struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

type ArticleResponse struct {
	ID           uuid.UUID     `json:"id"`
	Title        string        `json:"title"`
	Content      *content.Node `json:"content,omitempty"`
	ThumbnailURL *string       `json:"thumbnail_url,omitempty"`
	Price        *int          `json:"price,omitempty"`
	AuthorID     uuid.UUID     `json:"author_id"`
	JournalID    *uuid.UUID    `json:"journal_id,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}

// ArticleSummary is a list row; the body is reduced to an excerpt.
type ArticleSummary struct {
	ID           uuid.UUID    `json:"id"`
	Title        string       `json:"title"`
	Excerpt      string       `json:"excerpt"`
	ThumbnailURL *string      `json:"thumbnail_url,omitempty"`
	Price        *int         `json:"price,omitempty"`
	Author       *AuthorInfo  `json:"author,omitempty"`
	Journal      *JournalInfo `json:"journal,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

// ArticleView is the read view. HTML is withheld when CanRead is false.
type ArticleView struct {
	ID           uuid.UUID    `json:"id"`
	Title        string       `json:"title"`
	ThumbnailURL *string      `json:"thumbnail_url,omitempty"`
	Price        *int         `json:"price,omitempty"`
	Author       *AuthorInfo  `json:"author,omitempty"`
	Journal      *JournalInfo `json:"journal,omitempty"`
	HasPurchased bool         `json:"has_purchased"`
	IsAuthor     bool         `json:"is_author"`
	CanRead      bool         `json:"can_read"`
	HTML         *string      `json:"html,omitempty"`
	Excerpt      string       `json:"excerpt"`
	CreatedAt    time.Time    `json:"created_at"`
}

func (a *Article) ToResponse() *ArticleResponse {
	return &ArticleResponse{
		ID:           a.ID,
		Title:        a.Title,
		Content:      a.Content,
		ThumbnailURL: a.ThumbnailURL,
		Price:        a.Price,
		AuthorID:     a.AuthorID,
		JournalID:    a.JournalID,
		CreatedAt:    a.CreatedAt,
	}
}

func (a *Article) Excerpt() string {
	return content.PlainText(a.Content, ExcerptLength)
}
