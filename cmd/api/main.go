package main

import (
	"context"
	"os"

	"github.com/yigit/mentorhub/internal/pkg/logger"
	"github.com/yigit/mentorhub/internal/server"
)

// @title MentorHub API
// @version 1.0
// @description API for the MentorHub mentorship platform

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer(context.Background())
	if err != nil {
		// setup functions already logged the details
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// blocks until SIGINT/SIGTERM
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
