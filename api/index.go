package handler

import (
	"net/http"
	"sync"

	"todos/config"
	"todos/di"
	"todos/shared/logger"
	transportHTTP "todos/transport/http"

	"github.com/rs/zerolog/log"
)

var (
	server *transportHTTP.HTTP
	once   sync.Once
)

// Handler is the serverless entry point. The service is built on the first
// invocation and reused while the instance stays warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger(cfg)

		logger.SetLogLevel(cfg)

		var err error

		server, _, err = di.InitializeService()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize service")
		}
	})

	server.ServeHTTP(w, r)
}
