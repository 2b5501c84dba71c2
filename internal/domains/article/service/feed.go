package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/gorilla/feeds"

	"kiosk-backend/internal/domains/article/model"
)

// JournalFeed renders the journal's latest articles as RSS 2.0.
func (s *articleService) JournalFeed(ctx context.Context, slug string) (string, error) {
	journal, err := s.journals.FindBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		return "", err
	}

	articles, _, err := s.repo.List(ctx, model.ListFilter{
		JournalID: &journal.ID,
		Page:      1,
		Limit:     model.FeedSize,
	})
	if err != nil {
		return "", err
	}

	authors, err := s.authorsOf(ctx, articles)
	if err != nil {
		return "", err
	}

	journalURL := fmt.Sprintf("%s/journals/%s", s.cfg.BaseURL, journal.Slug)
	feed := &feeds.Feed{
		Title:   journal.Name,
		Link:    &feeds.Link{Href: journalURL},
		Created: journal.CreatedAt,
	}
	if journal.Description != nil {
		feed.Description = *journal.Description
	}
	if len(articles) > 0 {
		feed.Updated = articles[0].CreatedAt
	}

	feed.Items = make([]*feeds.Item, 0, len(articles))
	for _, a := range articles {
		articleURL := fmt.Sprintf("%s/articles/%s", s.cfg.BaseURL, a.ID)
		item := &feeds.Item{
			Title:       a.Title,
			Link:        &feeds.Link{Href: articleURL},
			Id:          articleURL,
			Description: a.Excerpt(),
			Created:     a.CreatedAt,
		}
		if author, ok := authors[a.AuthorID]; ok {
			item.Author = &feeds.Author{Name: author.Name}
		}
		feed.Items = append(feed.Items, item)
	}

	rss, err := feed.ToRss()
	if err != nil {
		return "", fmt.Errorf("failed to generate RSS: %w", err)
	}
	return rss, nil
}
