package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"kiosk-backend/internal/shared/response"
)

// Recovery turns a handler panic into a 500 envelope. Nothing is written
// when the handler already started the response.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			log.Error().
				Str("request_id", c.GetString(requestIDKey)).
				Str("route", routeOf(c)).
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("handler panicked")

			if !c.Writer.Written() {
				response.ErrorResponse(c, http.StatusInternalServerError, "SYS_001", "Internal server error")
			}
			c.Abort()
		}()

		c.Next()
	}
}
