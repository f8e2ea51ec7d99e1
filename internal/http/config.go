package http

import (
	"github.com/Tocea2003/Practica-BookSystem/internal/demo"
	"github.com/Tocea2003/Practica-BookSystem/internal/library"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core services
	Catalog      *library.CatalogService
	Users        *library.UserService
	Reviews      *library.ReviewService
	Reservations *library.ReservationService

	// Read-only views
	Stats    StatsReader
	Audit    AuditReader
	Database Pinger

	// Task queue (optional); Jobs is nil when the scheduler is off
	Tasks TaskQueue
	Jobs  JobLister

	// Frontend origins allowed by CORS
	AllowedOrigins []string

	// Currency label shown next to fines in stats
	Currency string

	DemoMiddleware *demo.Middleware

	// Application info
	Version string
}
