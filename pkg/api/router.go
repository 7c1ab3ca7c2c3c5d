package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/decocms/website/pkg/middleware"
)

// NewRouter registers all routes and the shared middleware chain. contactLimiter
// may be nil to disable rate limiting.
func NewRouter(handlers *Handlers, pages Pages, contactLimiter *middleware.RateLimiter, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())

	router.GET("/", handlers.Page(pages.Landing))
	router.GET("/roadmap", handlers.Page(pages.Roadmap))
	router.GET("/sitemap.xml", handlers.Sitemap)
	router.GET("/islands/github-stars", handlers.GitHubStars)
	router.GET("/health", handlers.HealthCheck)

	contacts := []gin.HandlerFunc{handlers.HandleContact}
	if contactLimiter != nil {
		contacts = append([]gin.HandlerFunc{contactLimiter.Middleware()}, contacts...)
	}
	router.POST("/api/contacts", contacts...)

	return router
}
