package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/diaver-site-backend/api"
	"github.com/rpupo63/diaver-site-backend/auth"
	"github.com/rpupo63/diaver-site-backend/config"
	"github.com/rpupo63/diaver-site-backend/database"
	"github.com/rpupo63/diaver-site-backend/services"
	"github.com/rpupo63/diaver-site-backend/storage"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	c := config.New()
	setupLogging(c)
	log.Info().Msg("Initializing app...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	c, err := config.WithSSM(ctx, c)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading SSM parameters")
	}

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	files, err := storage.New(ctx, c)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing file storage")
	}

	dataDir := config.GetString(c, "DATA_DIR", "backend/data")
	currentDB := database.New(dataDir, files)
	log.Info().
		Str("dataDir", dataDir).
		Int("projects", len(currentDB.ProjectRepo().FindAll())).
		Int("leads", len(currentDB.LeadRepo().FindAll())).
		Int("presentations", currentDB.PresentationRepo().Count()).
		Msg("Collections loaded")

	authenticator, err := auth.NewAuthenticatorFromConfig(c)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing admin authentication")
	}

	// room for both senders so neither blocks after shutdown
	errChannel := make(chan error, 2)

	server, err := api.NewServer(c, currentDB, api.Dependencies{
		Files:         files,
		Notifier:      services.NewLeadNotifierFromConfig(c),
		Authenticator: authenticator,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// setupLogging applies LOG_LEVEL and LOG_PRETTY.
func setupLogging(c map[string]string) {
	level, err := zerolog.ParseLevel(config.GetString(c, "LOG_LEVEL", "info"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(logOutput(c))
}

// logOutput is a console writer unless LOG_PRETTY=false asks for JSON lines.
func logOutput(c map[string]string) io.Writer {
	if config.GetBool(c, "LOG_PRETTY", true) {
		return zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	return os.Stderr
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
