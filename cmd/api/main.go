package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"kiosk-backend/pkg/logger"
)

func main() {
	// .env chỉ dùng cho local
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("could not read .env")
	}
	logger.Init(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))

	if err := Serve(); err != nil {
		log.Fatal().Err(err).Msg("api stopped")
	}
}
