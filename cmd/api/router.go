package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"kiosk-backend/internal/shared/middleware"
	"kiosk-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupImageRoutes(v1, c)
		setupArticleRoutes(v1, c)
		setupPurchaseRoutes(v1, c)
		setupJournalRoutes(v1, c)
		setupCronRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH & USER ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
	}
}

func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	users.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		users.GET("/me", c.UserHandler.GetProfile)
		users.GET("/search", c.UserHandler.Search)
	}
}

// ========================================
// IMAGE ROUTES
// ========================================
func setupImageRoutes(v1 *gin.RouterGroup, c *container.Container) {
	images := v1.Group("/images")
	images.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		images.POST("", c.ImageHandler.RecordUpload)
		images.POST("/upload", c.ImageHandler.Upload)
		// key chứa dấu "/" nên dùng wildcard
		images.DELETE("/*key", c.ImageHandler.Delete)
	}
}

// ========================================
// ARTICLE & PURCHASE ROUTES
// ========================================
func setupArticleRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := middleware.AuthMiddleware(c.JWTManager)
	optional := middleware.OptionalAuth(c.JWTManager)

	articles := v1.Group("/articles")
	{
		articles.GET("", optional, c.ArticleHandler.List)
		articles.GET("/:id", optional, c.ArticleHandler.Get)
		articles.POST("", auth, c.ArticleHandler.Publish)
		articles.POST("/:id/purchase", auth, c.PurchaseHandler.Purchase)
	}
}

func setupPurchaseRoutes(v1 *gin.RouterGroup, c *container.Container) {
	purchases := v1.Group("/purchases")
	purchases.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		purchases.GET("/me", c.PurchaseHandler.ListMine)
		purchases.GET("/sales/export", c.PurchaseHandler.ExportSales)
	}
}

// ========================================
// JOURNAL ROUTES
// ========================================
func setupJournalRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := middleware.AuthMiddleware(c.JWTManager)

	journals := v1.Group("/journals")
	{
		// Public
		journals.GET("/by-slug/:slug", c.JournalHandler.GetBySlug)
		journals.GET("/by-slug/:slug/feed.xml", c.ArticleHandler.JournalFeed)

		// Members only
		journals.POST("", auth, c.JournalHandler.Create)
		journals.GET("", auth, c.JournalHandler.ListMine)
		journals.GET("/:id/members", auth, c.JournalHandler.ListMembers)
		journals.POST("/:id/members", auth, c.JournalHandler.AddMember)
		journals.DELETE("/:id/members/:memberId", auth, c.JournalHandler.RemoveMember)
		journals.PATCH("/:id/members/:memberId", auth, c.JournalHandler.ChangeRole)
	}
}

// ========================================
// CRON ROUTES
// ========================================
func setupCronRoutes(v1 *gin.RouterGroup, c *container.Container) {
	cron := v1.Group("/cron")
	cron.Use(middleware.CronSecret(c.Config.Cron.Secret))
	{
		cron.POST("/cleanup-images", c.ImageHandler.CleanupOrphans)
	}
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "ok"
		if err := appCtx.DB.HealthCheck(ctx); err != nil {
			dbStatus = fmt.Sprintf("error: %v", err)
			health["status"] = "degraded"
		}

		// redis lỗi chỉ làm chậm, không degraded
		redisStatus := "ok"
		if err := appCtx.Cache.Ping(ctx); err != nil {
			redisStatus = fmt.Sprintf("error: %v", err)
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if health["status"] != "ok" {
			statusCode = http.StatusServiceUnavailable
		}
		c.JSON(statusCode, health)
	}
}
