package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/decocms/website/pkg/apperrors"
	"github.com/decocms/website/pkg/clients/github"
	"github.com/decocms/website/pkg/islands/stars"
	"github.com/decocms/website/pkg/models"
	"github.com/decocms/website/pkg/services"
	"github.com/decocms/website/pkg/site"
	"github.com/decocms/website/pkg/sitemap"
)

// Handlers contains all HTTP handlers for the site
type Handlers struct {
	contactService services.ContactService
	githubClient   github.Client
	defaultRepo    string
	islandTimeout  time.Duration
	logger         *zap.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(contactService services.ContactService, githubClient github.Client, defaultRepo string, islandTimeout time.Duration, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		contactService: contactService,
		githubClient:   githubClient,
		defaultRepo:    defaultRepo,
		islandTimeout:  islandTimeout,
		logger:         logger,
	}
}

// HealthCheck handler for monitoring
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// HandleContact creates a CRM contact from the JSON body
func (h *Handlers) HandleContact(c *gin.Context) {
	var form models.ContactForm

	if err := c.ShouldBindJSON(&form); err != nil {
		h.logger.Debug("invalid contact request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "A valid email is required"})
		return
	}

	result, err := h.contactService.Submit(c.Request.Context(), form)
	if err != nil {
		h.writeContactError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *Handlers) writeContactError(c *gin.Context, err error) {
	_ = c.Error(err)

	var (
		vErr *apperrors.ValidationError
		cErr *apperrors.ConfigurationError
		rErr *apperrors.RemoteServiceError
	)
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
	case errors.As(err, &cErr):
		h.logger.Error("contact service misconfigured", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Contact service is not configured"})
	case errors.As(err, &rErr):
		h.logger.Error("contact service rejected request", zap.Int("upstream_status", rErr.StatusCode), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Contact service error", "status": rErr.StatusCode})
	default:
		h.logger.Error("contact submission failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Contact service unavailable"})
	}
}

// Sitemap serves the static sitemap.xml
func (h *Handlers) Sitemap(c *gin.Context) {
	c.Data(http.StatusOK, sitemap.ContentType, sitemap.Document())
}

// Page resolves page on every request and renders it
func (h *Handlers) Page(page site.Page) gin.HandlerFunc {
	return func(c *gin.Context) {
		component, err := page.Resolve(c.Request.Context())
		if err != nil {
			_ = c.Error(err)
			h.logger.Error("failed to resolve page", zap.String("path", c.Request.URL.Path), zap.Error(err))
			c.String(http.StatusInternalServerError, "Sorry, there was an internal server error.")
			return
		}
		h.render(c, http.StatusOK, component)
	}
}

// GitHubStars serves the star counter island fragment. Any failure renders an
// empty fragment so the page simply shows no count.
func (h *Handlers) GitHubStars(c *gin.Context) {
	repo := c.DefaultQuery("repo", h.defaultRepo)
	if repo == "" {
		c.Status(http.StatusNoContent)
		return
	}
	if _, _, err := github.SplitRepo(repo); err != nil {
		c.String(http.StatusBadRequest, "")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.islandTimeout)
	defer cancel()

	counter := stars.NewCounter(h.githubClient, h.logger)
	counter.InputChanged(ctx, repo)
	snap, err := counter.Await(ctx)
	if err != nil {
		h.logger.Warn("star counter timed out", zap.String("repo", repo), zap.Error(err))
	}

	c.Header("Cache-Control", "public, max-age=300")
	h.render(c, http.StatusOK, stars.Island(snap))
}

func (h *Handlers) render(c *gin.Context, status int, component templ.Component) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := component.Render(c.Request.Context(), c.Writer); err != nil {
		_ = c.Error(err)
		h.logger.Error("templ: failed to render template", zap.Error(err))
	}
}
