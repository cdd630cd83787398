package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/boomtruck/siteapi/internal/handlers"
	"github.com/boomtruck/siteapi/internal/handlers/middleware"
	"github.com/boomtruck/siteapi/internal/logger"
	"github.com/boomtruck/siteapi/internal/repository/flatfile"
	"github.com/boomtruck/siteapi/internal/service/catalog"
	"github.com/boomtruck/siteapi/internal/service/dashboard"
	"github.com/boomtruck/siteapi/internal/service/googleauth"
)

type ServerApp struct {
	ListenAddr string
	Handler    http.Handler
}

func NewServerApp(ctx context.Context, c *Config) (*ServerApp, error) {
	// Initialize logger
	logger, err := logger.New(c.Environment, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("error while initializing logger: %w", err)
	}

	// Secure cookies everywhere except local development over plain http
	secureCookies := c.Environment == "prod"

	// Initialize flat-file storage (creates the directory and seeds it)
	storage, err := flatfile.NewStorage(c.DataDir)
	if err != nil {
		return nil, fmt.Errorf("error while opening storage. Err: %w", err)
	}

	// Initialize services
	authService, err := googleauth.New(googleauth.Config{
		ClientID:     c.GoogleClientID,
		ClientSecret: c.GoogleClientSecret,
		RedirectURL:  c.RedirectURL,
		StateSecret:  c.StateSecret,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("error while creating auth service. Err: %w", err)
	}
	catalogService, err := catalog.NewService(storage)
	if err != nil {
		return nil, fmt.Errorf("error while creating catalog service. Err: %w", err)
	}
	dashboardService := dashboard.NewService()

	// Initialize handlers
	oauthHandler := handlers.NewOAuth(authService, secureCookies, logger)
	catalogHandler := handlers.NewCatalog(catalogService, logger)
	dashboardHandler := handlers.NewDashboard(dashboardService)
	autoRefresh := middleware.AutoRefreshGuard(
		authService,
		secureCookies,
		middleware.DefaultRefreshWindow,
		logger,
		"/api/admin/",
	)

	mux := handlers.NewRouter(
		oauthHandler,
		catalogHandler,
		dashboardHandler,
		autoRefresh,
		middleware.LoggerMiddleware(logger),
	)

	return &ServerApp{
		ListenAddr: c.ListenAddr,
		Handler:    mux,
	}, nil
}

// Run starts http server and closes gracefully on context cancellation
func (s *ServerApp) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    s.ListenAddr,
		Handler: s.Handler,
	}

	idleConnsClosed := make(chan struct{})
	srvCtx, srvCtxCancel := context.WithCancel(ctx)
	defer srvCtxCancel()

	go func() {
		<-srvCtx.Done()

		timeoutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(timeoutCtx); err == context.DeadlineExceeded {
			slog.Error("HTTP server shutdown timeout exceeded, forcing shutdown...")
		}
		slog.Info("HTTP server stopped")
		close(idleConnsClosed)
	}()

	// Listen and serve until context is cancelled; then close gracefully connections
	slog.Info("Starting server", "addr", s.ListenAddr)
	err := httpServer.ListenAndServe()
	srvCtxCancel()
	<-idleConnsClosed

	return err
}
