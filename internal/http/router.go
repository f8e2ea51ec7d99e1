package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Optional dependencies left nil in cfg simply leave their routes out.
func NewRouter(cfg RouterConfig) *gin.Engine {
	RegisterValidators()

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(SecurityHeadersMiddleware())
	router.Use(CORSMiddleware(cfg.AllowedOrigins))
	router.Use(RequestIDMiddleware())

	if cfg.DemoMiddleware.IsEnabled() {
		router.Use(cfg.DemoMiddleware.InjectContext())
		router.Use(cfg.DemoMiddleware.Handler())
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	api := router.Group("/api")

	if cfg.Catalog != nil {
		NewAuthorsController(cfg.Catalog).RegisterRoutes(api.Group("/authors"))
		NewPublishersController(cfg.Catalog).RegisterRoutes(api.Group("/publishers"))
		NewCategoriesController(cfg.Catalog).RegisterRoutes(api.Group("/categories"))
		NewBooksController(cfg.Catalog).RegisterRoutes(api.Group("/books"))
	}
	if cfg.Users != nil {
		NewUsersController(cfg.Users).RegisterRoutes(api.Group("/users"))
	}
	if cfg.Reviews != nil {
		NewReviewsController(cfg.Reviews).RegisterRoutes(api.Group("/reviews"))
	}
	if cfg.Reservations != nil {
		NewReservationsController(cfg.Reservations).RegisterRoutes(api.Group("/book-reservations"))
	}
	if cfg.Stats != nil {
		NewStatsController(cfg.Stats, cfg.Currency).RegisterRoutes(api.Group("/stats"))
	}
	if cfg.Audit != nil {
		api.GET("/audit", NewAuditController(cfg.Audit).GetAuditEvents)
	}
	if cfg.Tasks != nil {
		NewTasksController(cfg.Tasks, cfg.Jobs).RegisterRoutes(api.Group("/tasks"))
	}

	return router
}
