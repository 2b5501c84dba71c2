package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"kiosk-backend/pkg/container"
)

const healthAddr = ":9999"

// startServices checks dependencies once, then exposes /health and /ready.
func startServices(c *container.Container) error {
	log.Info().Msg("🚀 Kiosk worker starting")

	checks := []struct {
		name string
		fn   func(ctx context.Context) error
	}{
		{"Redis", c.Cache.Ping},
		{"Postgres", c.DB.HealthCheck},
		{"Object storage", c.Storage.HealthCheck},
	}

	for _, check := range checks {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := check.fn(ctx)
		cancel()
		if err != nil {
			return fmt.Errorf("%s failed: %w", check.name, err)
		}
		log.Info().Str("check", check.name).Msg("✓ OK")
	}

	go startHealthCheckServer(c)
	return nil
}

func startHealthCheckServer(c *container.Container) {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "UP", "service": "kiosk-worker"})
	})
	router.GET("/ready", func(ctx *gin.Context) {
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "NOT_READY", "error": err.Error()})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"status": "READY"})
	})

	log.Info().Str("addr", healthAddr).Msg("[Health] Starting health check server")
	if err := router.Run(healthAddr); err != nil {
		log.Error().Err(err).Msg("[Health] Failed to start")
	}
}
