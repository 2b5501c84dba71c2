package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"kiosk-backend/internal/domains/purchase/service"
	"kiosk-backend/internal/shared/middleware"
	"kiosk-backend/internal/shared/response"
	"kiosk-backend/internal/shared/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type PurchaseHandler struct {
	purchaseService service.ServiceInterface
}

func NewPurchaseHandler(purchaseService service.ServiceInterface) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// Purchase records the article's current price. No payment is collected.
// POST /api/v1/articles/:id/purchase
func (h *PurchaseHandler) Purchase(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}
	articleID := utils.ParseStringToUUID(c.Param("id"))
	if articleID == uuid.Nil {
		response.BadRequest(c, "invalid article id")
		return
	}

	purchase, err := h.purchaseService.PurchaseArticle(c.Request.Context(), userID, articleID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, purchase)
}

// ListMine
// GET /api/v1/purchases/me
func (h *PurchaseHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	purchases, err := h.purchaseService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, purchases)
}

// ExportSales downloads the caller's sales as .xlsx
// GET /api/v1/purchases/sales/export
func (h *PurchaseHandler) ExportSales(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	data, err := h.purchaseService.ExportSales(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("sales-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
