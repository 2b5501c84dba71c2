package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"kiosk-backend/internal/domains/article/model"
	"kiosk-backend/internal/domains/article/repository"
	"kiosk-backend/internal/domains/content"
	journalModel "kiosk-backend/internal/domains/journal/model"
	"kiosk-backend/internal/shared/apperr"
	"kiosk-backend/internal/shared/utils"
	"kiosk-backend/pkg/cache"
	"kiosk-backend/pkg/database"
)

type Config struct {
	CacheTTL time.Duration
	BaseURL  string
}

type articleService struct {
	repo      repository.RepositoryInterface
	tx        database.TxManager
	journals  JournalReader
	images    ImageLinker
	purchases PurchaseChecker
	users     UserReader
	cache     cache.Cache
	sanitizer *content.Sanitizer
	cfg       Config
}

func NewArticleService(
	repo repository.RepositoryInterface,
	tx database.TxManager,
	journals JournalReader,
	images ImageLinker,
	purchases PurchaseChecker,
	users UserReader,
	articleCache cache.Cache,
	cfg Config,
) ServiceInterface {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Hour
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &articleService{
		repo:      repo,
		tx:        tx,
		journals:  journals,
		images:    images,
		purchases: purchases,
		users:     users,
		cache:     articleCache,
		sanitizer: content.NewSanitizer(),
		cfg:       cfg,
	}
}

// =====================================================
// PUBLISH
// =====================================================

// Publish validates, checks journal membership, then creates the article
// and links the author's orphan images in one transaction.
func (s *articleService) Publish(ctx context.Context, authorID uuid.UUID, req model.PublishRequest) (*model.ArticleResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidInputError(err)
	}
	root, err := req.ParsedContent()
	if err != nil {
		return nil, model.NewInvalidInputError(err)
	}

	if req.JournalID != nil {
		if err := s.requirePublisher(ctx, *req.JournalID, authorID); err != nil {
			return nil, err
		}
	}

	article := &model.Article{
		ID:           uuid.New(),
		Title:        strings.TrimSpace(req.Title),
		Content:      root,
		ThumbnailURL: req.ThumbnailURL,
		Price:        req.WholePrice(),
		AuthorID:     authorID,
		JournalID:    req.JournalID,
	}

	var linked int64
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, article); err != nil {
			return err
		}
		var err error
		linked, err = s.images.LinkToArticle(ctx, article.ReferencedImageURLs(), authorID, article.ID)
		if err != nil {
			return model.NewImageLinkError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("article_id", article.ID.String()).
		Str("author_id", authorID.String()).
		Int64("images_linked", linked).
		Msg("article published")

	return article.ToResponse(), nil
}

func (s *articleService) requirePublisher(ctx context.Context, journalID, authorID uuid.UUID) error {
	member, err := s.journals.FindMember(ctx, journalID, authorID)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return model.ErrNotJournalMember
		}
		return err
	}
	if !member.Role.CanPublish() {
		return model.ErrNotJournalMember
	}
	return nil
}

// =====================================================
// READ
// =====================================================

func (s *articleService) GetForViewer(ctx context.Context, articleID uuid.UUID, viewerID *uuid.UUID) (*model.ArticleView, error) {
	article, err := s.repo.FindByID(ctx, articleID)
	if err != nil {
		return nil, err
	}

	var hasPurchased bool
	if viewerID != nil {
		hasPurchased, err = s.purchases.HasPurchased(ctx, *viewerID, articleID)
		if err != nil {
			return nil, err
		}
	}

	view := &model.ArticleView{
		ID:           article.ID,
		Title:        article.Title,
		ThumbnailURL: article.ThumbnailURL,
		Price:        article.Price,
		HasPurchased: hasPurchased,
		IsAuthor:     viewerID != nil && *viewerID == article.AuthorID,
		CanRead:      article.CanBeReadBy(viewerID, hasPurchased),
		Excerpt:      article.Excerpt(),
		CreatedAt:    article.CreatedAt,
	}

	authors, err := s.authorsOf(ctx, []*model.Article{article})
	if err != nil {
		return nil, err
	}
	view.Author = authors[article.AuthorID]

	if article.JournalID != nil {
		view.Journal = s.journalInfo(ctx, *article.JournalID)
	}

	if view.CanRead {
		html := s.renderHTML(ctx, article)
		view.HTML = &html
	}
	return view, nil
}

// renderHTML serves the sanitized body from cache when possible. Cache
// errors only cost a re-render.
func (s *articleService) renderHTML(ctx context.Context, article *model.Article) string {
	key := cacheKey(article.ID)

	var cached string
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("article cache read failed")
	}
	if hit {
		return cached
	}

	html := s.sanitizer.RenderSafe(article.Content)
	if err := s.cache.Set(ctx, key, html, s.cfg.CacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("article cache write failed")
	}
	return html
}

func cacheKey(articleID uuid.UUID) string {
	return "article:html:" + articleID.String()
}

func (s *articleService) List(ctx context.Context, filter model.ListFilter) ([]*model.ArticleSummary, int, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	articles, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	authors, err := s.authorsOf(ctx, articles)
	if err != nil {
		return nil, 0, err
	}

	journals := make(map[uuid.UUID]*model.JournalInfo)
	summaries := make([]*model.ArticleSummary, 0, len(articles))
	for _, a := range articles {
		summary := &model.ArticleSummary{
			ID:           a.ID,
			Title:        a.Title,
			Excerpt:      a.Excerpt(),
			ThumbnailURL: a.ThumbnailURL,
			Price:        a.Price,
			Author:       authors[a.AuthorID],
			CreatedAt:    a.CreatedAt,
		}
		if a.JournalID != nil {
			info, ok := journals[*a.JournalID]
			if !ok {
				info = s.journalInfo(ctx, *a.JournalID)
				journals[*a.JournalID] = info
			}
			summary.Journal = info
		}
		summaries = append(summaries, summary)
	}
	return summaries, total, nil
}

// =====================================================
// HELPERS
// =====================================================

func (s *articleService) authorsOf(ctx context.Context, articles []*model.Article) (map[uuid.UUID]*model.AuthorInfo, error) {
	ids := make([]uuid.UUID, 0, len(articles))
	for _, a := range articles {
		ids = append(ids, a.AuthorID)
	}
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load authors: %w", err)
	}

	authors := make(map[uuid.UUID]*model.AuthorInfo, len(users))
	for id, u := range users {
		authors[id] = &model.AuthorInfo{ID: u.ID, Name: u.Name, Image: u.Image}
	}
	return authors, nil
}

// journalInfo returns nil when the journal is gone.
func (s *articleService) journalInfo(ctx context.Context, journalID uuid.UUID) *model.JournalInfo {
	j, err := s.journals.FindByID(ctx, journalID)
	if err != nil {
		if !errors.Is(err, journalModel.ErrJournalNotFound) {
			log.Warn().Err(err).Str("journal_id", journalID.String()).Msg("failed to load journal")
		}
		return nil
	}
	return &model.JournalInfo{ID: j.ID, Name: j.Name, Slug: j.Slug}
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = utils.DefaultPageSize
	}
	if limit > utils.MaxPageSize {
		limit = utils.MaxPageSize
	}
	return page, limit
}
