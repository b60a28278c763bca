package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/diaver-site-backend/config"
	"github.com/rpupo63/diaver-site-backend/database"
	"github.com/rs/zerolog/log"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(c map[string]string, database database.Database, deps Dependencies) (Server, error) {
	if deps.Files == nil || deps.Authenticator == nil {
		return Server{}, fmt.Errorf("file store and authenticator are required")
	}

	port := config.GetString(c, "PORT", "3000")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	startupTime := time.Now()
	settings := routerSettings{
		startupTime:     startupTime,
		frontendDir:     config.GetString(c, "FRONTEND_DIR", "frontend"),
		maxUploadBytes:  int64(config.GetInt(c, "MAX_UPLOAD_MB", 50)) << 20,
		requireAuth:     config.GetBool(c, "REQUIRE_ADMIN_AUTH", true),
		acceptedOrigins: config.GetStrings(c, "ACCEPTED_ORIGINS", []string{"*"}),
	}

	router := newRouter(database, deps, settings)

	// uploads of up to MAX_UPLOAD_MB need generous read timeouts
	readTimeout := time.Duration(config.GetInt(c, "READ_TIMEOUT_SECONDS", 180)) * time.Second
	writeTimeout := time.Duration(config.GetInt(c, "WRITE_TIMEOUT_SECONDS", 180)) * time.Second
	idleTimeout := time.Duration(config.GetInt(c, "IDLE_TIMEOUT_SECONDS", 180)) * time.Second

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return Server{server, startupTime}, nil
}

func newRouter(database database.Database, deps Dependencies, settings routerSettings) *chi.Mux {
	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)

	handlers := initializeHandlers(database, deps, settings)
	authMiddleware := newAuthMiddleware(deps.Authenticator, settings.requireAuth)

	chiRouter.Use(CORSCheckMiddleware(settings.acceptedOrigins))
	chiRouter.Use(corsMiddleware(settings.acceptedOrigins))
	chiRouter.Use(prettyURLs)

	setupRoutes(chiRouter, handlers, authMiddleware)

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
