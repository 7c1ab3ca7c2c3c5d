package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/decocms/website/pkg/api"
	"github.com/decocms/website/pkg/clients/github"
	"github.com/decocms/website/pkg/clients/posthog"
	"github.com/decocms/website/pkg/clients/resend"
	"github.com/decocms/website/pkg/config"
	"github.com/decocms/website/pkg/loaders"
	"github.com/decocms/website/pkg/middleware"
	"github.com/decocms/website/pkg/roadmap"
	"github.com/decocms/website/pkg/secrets"
	"github.com/decocms/website/pkg/services"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	router := buildRouter(cfg, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("gin_mode", cfg.Server.GinMode))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("error starting server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	return nil
}

type httpClients struct {
	github  *http.Client
	vendors *http.Client // Resend and PostHog, bounded only by the caller's context
}

func newHTTPClients(cfg *config.Config) httpClients {
	return httpClients{
		github:  &http.Client{Timeout: cfg.GitHub.Timeout},
		vendors: http.DefaultClient,
	}
}

// buildRouter wires clients, services and pages into the gin engine
func buildRouter(cfg *config.Config, logger *zap.Logger) *gin.Engine {
	gin.SetMode(cfg.Server.GinMode)

	clients := newHTTPClients(cfg)

	// Initialize API clients
	resendClient := resend.NewClient(cfg.Resend.APIKey, cfg.Resend.AudienceID,
		resend.WithBaseURL(cfg.Resend.BaseURL),
		resend.WithHTTPClient(clients.vendors),
		resend.WithLogger(logger.Named("resend")))
	githubClient := github.NewCachedClient(
		github.NewClient(
			github.WithBaseURL(cfg.GitHub.BaseURL),
			github.WithHTTPClient(clients.github),
			github.WithLogger(logger.Named("github"))),
		cfg.GitHub.CacheTTL, cfg.GitHub.Timeout)
	guard := posthog.NewGuard(posthog.DefaultFactory(clients.vendors, logger.Named("posthog")), logger)

	// Initialize services
	contactService := services.NewContactService(resendClient, guard, logger)

	store := secrets.Chain{secrets.FileStore{Dir: cfg.Secrets.Dir}, secrets.EnvStore{}}
	analytics := loaders.Analytics(store, secrets.Ref(cfg.Analytics.KeySecret), cfg.Analytics.Host, guard, logger)
	pages := api.NewPages(cfg.Site, roadmap.NewStaticProvider(), analytics)

	handlers := api.NewHandlers(contactService, githubClient, cfg.Site.GitHubRepo, cfg.GitHub.Timeout, logger)
	limiter := middleware.NewRateLimiter(cfg.RateLimit.ContactsPerMinute, cfg.RateLimit.Burst)

	return api.NewRouter(handlers, pages, limiter, logger)
}
