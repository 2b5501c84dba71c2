package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"kiosk-backend/internal/shared/response"
)

const CronSecretHeader = "X-Cron-Secret"

// CronSecret guards maintenance endpoints called by an external scheduler.
// An empty secret rejects every request.
func CronSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader(CronSecretHeader)
		if secret == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			log.Warn().
				Str("path", c.Request.URL.Path).
				Str("ip", c.ClientIP()).
				Msg("rejected cron request")
			response.Unauthorized(c, "invalid cron secret")
			c.Abort()
			return
		}
		c.Next()
	}
}
