package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kiosk-backend/internal/shared/apperr"
)

func TestError_MapsKindToStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", apperr.Validation("ART_001", "title is required"), http.StatusBadRequest, "ART_001"},
		{"forbidden", apperr.Forbidden("JRN_003", "admin only"), http.StatusForbidden, "JRN_003"},
		{"not found wrapped", fmt.Errorf("load: %w", apperr.NotFound("IMG_001", "image not found")), http.StatusNotFound, "IMG_001"},
		{"conflict", apperr.Conflict("PUR_002", "already purchased"), http.StatusConflict, "PUR_002"},
		{"upstream", apperr.Upstream("IMG_005", "storage failed", errors.New("x")), http.StatusBadGateway, "IMG_005"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

			Error(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var body Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}
