package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"kiosk-backend/internal/domains/journal/model"
	"kiosk-backend/internal/domains/journal/service"
	"kiosk-backend/internal/shared/middleware"
	"kiosk-backend/internal/shared/response"
	"kiosk-backend/internal/shared/utils"
)

type JournalHandler struct {
	journalService service.ServiceInterface
}

func NewJournalHandler(journalService service.ServiceInterface) *JournalHandler {
	return &JournalHandler{journalService: journalService}
}

// Create
// POST /api/v1/journals
func (h *JournalHandler) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req model.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	journal, err := h.journalService.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, journal)
}

// ListMine returns the journals the caller belongs to.
// GET /api/v1/journals
func (h *JournalHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	journals, err := h.journalService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, journals)
}

// GetBySlug
// GET /api/v1/journals/by-slug/:slug
func (h *JournalHandler) GetBySlug(c *gin.Context) {
	journal, err := h.journalService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, journal)
}

// ListMembers
// GET /api/v1/journals/:id/members
func (h *JournalHandler) ListMembers(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}
	journalID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	members, err := h.journalService.ListMembers(c.Request.Context(), journalID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, members)
}

// AddMember
// POST /api/v1/journals/:id/members
func (h *JournalHandler) AddMember(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}
	journalID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req model.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	member, err := h.journalService.AddMember(c.Request.Context(), journalID, userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, member)
}

// RemoveMember
// DELETE /api/v1/journals/:id/members/:memberId
func (h *JournalHandler) RemoveMember(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}
	journalID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	memberID, ok := pathUUID(c, "memberId")
	if !ok {
		return
	}

	if err := h.journalService.RemoveMember(c.Request.Context(), journalID, memberID, userID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ChangeRole
// PATCH /api/v1/journals/:id/members/:memberId
func (h *JournalHandler) ChangeRole(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}
	journalID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	memberID, ok := pathUUID(c, "memberId")
	if !ok {
		return
	}

	var req model.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	result, err := h.journalService.ChangeRole(c.Request.Context(), journalID, memberID, userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id := utils.ParseStringToUUID(c.Param(name))
	if id == uuid.Nil {
		response.BadRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
