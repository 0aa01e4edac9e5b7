package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/uederson-ferreira/social-fi-credit/internal/config"
	"github.com/uederson-ferreira/social-fi-credit/internal/domain"
)

// Pinger reports whether a storage backend is reachable. The memory store
// has nothing to ping, so the checker may be nil.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	echo       *echo.Echo
	config     *config.Config
	store      domain.ScoreStore
	storeCheck Pinger
	startTime  time.Time
}

func NewServer(cfg *config.Config, store domain.ScoreStore, storeCheck Pinger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	srv := &Server{
		echo:       e,
		config:     cfg,
		store:      store,
		storeCheck: storeCheck,
		startTime:  time.Now(),
	}

	e.HTTPErrorHandler = srv.handleError
	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
