package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"kiosk-backend/internal/shared/response"
	"kiosk-backend/pkg/jwt"
)

const userIDKey = "userID"

// AuthMiddleware - Middleware xác thực JWT token, bắt buộc phải có
func AuthMiddleware(m *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authenticate(c, m)
		if !ok {
			response.Unauthorized(c, "missing or invalid access token")
			c.Abort()
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// OptionalAuth sets the user when a valid token is present and lets
// anonymous requests through otherwise.
func OptionalAuth(m *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := authenticate(c, m); ok {
			c.Set(userIDKey, userID)
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, m *jwt.Manager) (uuid.UUID, bool) {
	authHeader := c.GetHeader("Authorization")
	token, found := strings.CutPrefix(authHeader, "Bearer ")
	if !found || token == "" {
		return uuid.Nil, false
	}

	claims, err := m.ValidateAccessToken(token)
	if err != nil {
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, false
	}
	return userID, true
}

// CurrentUserID returns the authenticated user set by the auth middlewares.
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// OptionalUserID is CurrentUserID as a pointer, nil for anonymous viewers.
func OptionalUserID(c *gin.Context) *uuid.UUID {
	id, ok := CurrentUserID(c)
	if !ok {
		return nil
	}
	return &id
}
