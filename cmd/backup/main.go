package main

import (
	"context"

	"todos/config"
	"todos/di"
	"todos/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	job, cleanup, err := di.InitializeBackup()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize backup")
	}
	defer cleanup()

	key, err := job.Run(context.Background())
	if err != nil {
		cleanup()
		log.Fatal().Err(err).Msg("Backup failed")
	}

	log.Info().Str("key", key).Msg("Backup completed")
}
