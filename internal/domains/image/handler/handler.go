package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"kiosk-backend/internal/domains/image/model"
	"kiosk-backend/internal/domains/image/service"
	"kiosk-backend/internal/shared/middleware"
	"kiosk-backend/internal/shared/response"
)

// =====================================================
// IMAGE HANDLER
// =====================================================

type ImageHandler struct {
	imageService    service.ServiceInterface
	maxUploadBytes  int64
	orphanRetention time.Duration
}

func NewImageHandler(imageService service.ServiceInterface, maxUploadBytes int64, orphanRetention time.Duration) *ImageHandler {
	return &ImageHandler{
		imageService:    imageService,
		maxUploadBytes:  maxUploadBytes,
		orphanRetention: orphanRetention,
	}
}

// RecordUpload registers an object the client uploaded to storage itself.
// POST /api/v1/images
func (h *ImageHandler) RecordUpload(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req model.RecordUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	img, err := h.imageService.RecordUpload(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, img)
}

// Upload accepts a multipart "file" field.
// POST /api/v1/images/upload
func (h *ImageHandler) Upload(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+1<<20)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}
	if fileHeader.Size > h.maxUploadBytes {
		response.ErrorResponse(c, http.StatusRequestEntityTooLarge, model.ErrCodeInvalidImage, "file too large")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "cannot read file")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxUploadBytes+1))
	if err != nil {
		response.BadRequest(c, "cannot read file")
		return
	}

	img, err := h.imageService.Upload(c.Request.Context(), userID, data)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, img)
}

// Delete removes one of the caller's orphan images. Keys contain slashes,
// hence the wildcard.
// DELETE /api/v1/images/*key
func (h *ImageHandler) Delete(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	key := strings.TrimPrefix(c.Param("key"), "/")
	if err := h.imageService.DeleteOwned(c.Request.Context(), key, userID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CleanupOrphans is the externally scheduled sweep trigger. Guarded by
// middleware.CronSecret.
// POST /api/v1/cron/cleanup-images
func (h *ImageHandler) CleanupOrphans(c *gin.Context) {
	result, err := h.imageService.SweepOrphans(c.Request.Context(), h.orphanRetention)
	if err != nil {
		if errors.Is(err, c.Request.Context().Err()) {
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}
