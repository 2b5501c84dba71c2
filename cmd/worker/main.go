package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"kiosk-backend/pkg/container"
	"kiosk-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))

	c, err := container.NewContainer()
	if err != nil {
		log.Fatal().Err(err).Msg("[Container] init failed")
	}
	defer c.Cleanup()

	if err := startServices(c); err != nil {
		log.Error().Err(err).Msg("[Startup] dependency check failed")
		return
	}

	rt, err := newWorkerRuntime(c, initializeHandlers(c))
	if err != nil {
		log.Error().Err(err).Msg("[Startup] worker setup failed")
		return
	}
	if err := rt.Start(); err != nil {
		log.Error().Err(err).Msg("[Startup] worker failed to start")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	log.Info().Msg("[Shutdown] signal received")
	rt.Stop()
}
