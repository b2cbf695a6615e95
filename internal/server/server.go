package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/yigit/mentorhub/internal/bootstrap"
	"github.com/yigit/mentorhub/internal/config"
	"github.com/yigit/mentorhub/internal/middleware"
	"github.com/yigit/mentorhub/internal/pkg/cache"
	"github.com/yigit/mentorhub/internal/pkg/helpers"
	"github.com/yigit/mentorhub/internal/pkg/websocket"
)

// Server holds the state for the HTTP server.
type Server struct {
	config *config.Config
	dbPool *pgxpool.Pool
	cache  *cache.Client
	hub    *websocket.Hub
	logger zerolog.Logger
	http   *http.Server
}

// NewServer creates and initializes a new server instance by calling bootstrap functions.
func NewServer(ctx context.Context) (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	dbPool, err := bootstrap.SetupDatabase(ctx, cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	redis := bootstrap.SetupCache(ctx, cfg, lgr)

	deps, err := bootstrap.BuildDependencies(cfg, dbPool, redis, lgr)
	if err != nil {
		dbPool.Close()
		_ = redis.Close()
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	router := bootstrap.SetupRouter(cfg, deps, lgr)

	s := newServer(cfg, middleware.MethodOverride(router), lgr)
	s.dbPool = dbPool
	s.cache = redis
	s.hub = deps.ForumHub
	return s, nil
}

func newServer(cfg *config.Config, handler http.Handler, lgr zerolog.Logger) *Server {
	return &Server{
		config: cfg,
		logger: lgr,
		http: &http.Server{
			Addr:         ":" + cfg.Server.Port,
			Handler:      handler,
			ReadTimeout:  helpers.ParseDuration(cfg.Server.ReadTimeout, 10*time.Second),
			WriteTimeout: helpers.ParseDuration(cfg.Server.WriteTimeout, 10*time.Second),
			IdleTimeout:  helpers.ParseDuration(cfg.Server.IdleTimeout, 120*time.Second),
		},
	}
}

// Run listens on the configured port and serves until SIGINT or SIGTERM.
func (s *Server) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s.logger.Info().Str("port", s.config.Server.Port).Msg("Starting server...")
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		s.closeResources()
		return fmt.Errorf("error starting server: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled or the server fails,
// then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	// Hijacked feed connections outlive http.Server.Shutdown; stopping the hub closes them.
	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	if s.hub != nil {
		go s.hub.Run(hubCtx)
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("HTTP server listening")
		serverErrors <- s.http.Serve(ln)
	}()

	var serveErr error
	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			serveErr = fmt.Errorf("error serving: %w", err)
		}
	case <-ctx.Done():
		s.logger.Info().Msg("Shutdown requested")
	}

	stopHub()
	if s.hub != nil {
		<-s.hub.Done()
	}
	if err := s.Shutdown(context.Background()); err != nil {
		return errors.Join(serveErr, err)
	}
	return serveErr
}

// Shutdown gracefully stops the server and closes resources.
func (s *Server) Shutdown(ctx context.Context) error {
	timeout := helpers.ParseDuration(s.config.Server.ShutdownTimeout, 10*time.Second)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var shutdownErr error
	if s.http != nil {
		s.logger.Info().Msg("Shutting down HTTP server...")
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
			shutdownErr = err
		} else {
			s.logger.Info().Msg("HTTP server gracefully stopped.")
		}
	}

	s.closeResources()

	s.logger.Info().Msg("Server shutdown process complete.")
	if shutdownErr != nil {
		return fmt.Errorf("server shutdown completed with errors: %w", shutdownErr)
	}
	return nil
}

func (s *Server) closeResources() {
	if s.dbPool != nil {
		s.logger.Info().Msg("Closing database connection pool...")
		s.dbPool.Close()
		s.dbPool = nil
	}
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			s.logger.Warn().Err(err).Msg("Redis close error")
		}
		s.cache = nil
	}
}
