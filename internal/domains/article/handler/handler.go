package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"kiosk-backend/internal/domains/article/model"
	"kiosk-backend/internal/domains/article/service"
	"kiosk-backend/internal/shared/middleware"
	"kiosk-backend/internal/shared/response"
	"kiosk-backend/internal/shared/utils"
)

type ArticleHandler struct {
	articleService service.ServiceInterface
}

func NewArticleHandler(articleService service.ServiceInterface) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

// Publish
// POST /api/v1/articles
func (h *ArticleHandler) Publish(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req model.PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	article, err := h.articleService.Publish(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, article)
}

// List supports ?author_id=&journal_id=&page=&limit=
// GET /api/v1/articles
func (h *ArticleHandler) List(c *gin.Context) {
	page, limit := utils.NormalizePage(c.Query("page"), c.Query("limit"))
	filter := model.ListFilter{Page: page, Limit: limit}

	if raw := c.Query("author_id"); raw != "" {
		id := utils.ParseStringToUUID(raw)
		if id == uuid.Nil {
			response.BadRequest(c, "invalid author_id")
			return
		}
		filter.AuthorID = &id
	}
	if raw := c.Query("journal_id"); raw != "" {
		id := utils.ParseStringToUUID(raw)
		if id == uuid.Nil {
			response.BadRequest(c, "invalid journal_id")
			return
		}
		filter.JournalID = &id
	}

	articles, total, err := h.articleService.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, articles, &response.Meta{
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

// Get is the read view; anonymous viewers see paid articles as excerpts.
// GET /api/v1/articles/:id
func (h *ArticleHandler) Get(c *gin.Context) {
	articleID := utils.ParseStringToUUID(c.Param("id"))
	if articleID == uuid.Nil {
		response.BadRequest(c, "invalid article id")
		return
	}

	view, err := h.articleService.GetForViewer(c.Request.Context(), articleID, middleware.OptionalUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, view)
}

// JournalFeed
// GET /api/v1/journals/by-slug/:slug/feed.xml
func (h *ArticleHandler) JournalFeed(c *gin.Context) {
	rss, err := h.articleService.JournalFeed(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
}
