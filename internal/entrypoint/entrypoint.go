package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Tocea2003/Practica-BookSystem/internal/audit"
	"github.com/Tocea2003/Practica-BookSystem/internal/config"
	"github.com/Tocea2003/Practica-BookSystem/internal/database"
	auditRepo "github.com/Tocea2003/Practica-BookSystem/internal/database/audit"
	"github.com/Tocea2003/Practica-BookSystem/internal/demo"
	http_controllers "github.com/Tocea2003/Practica-BookSystem/internal/http"
	"github.com/Tocea2003/Practica-BookSystem/internal/integrity"
	"github.com/Tocea2003/Practica-BookSystem/internal/library"
	"github.com/Tocea2003/Practica-BookSystem/internal/reports"
	"github.com/Tocea2003/Practica-BookSystem/internal/scheduler"
	"github.com/Tocea2003/Practica-BookSystem/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// App holds everything the server needs, wired together.
type App struct {
	Router    *gin.Engine
	DB        *database.Database
	Audit     *audit.Service
	Tasks     *tasks.Client
	Scheduler *scheduler.MaintenanceScheduler

	cancelWorkers context.CancelFunc
	cleanup       []func()
}

// Build opens the database and assembles services, background workers and
// the router. Nothing runs until Start.
func Build(cfg *config.Config, version string) (*App, error) {
	app := &App{}

	var demoMiddleware *demo.Middleware
	if cfg.Demo.Enabled {
		log.Printf("Demo mode enabled - write operations will be blocked")
		demoMiddleware = demo.NewMiddleware(true)

		tempDir, err := os.MkdirTemp("", "library-demo-*")
		if err != nil {
			return nil, fmt.Errorf("failed to create temp directory for demo database: %w", err)
		}
		app.cleanup = append(app.cleanup, func() {
			log.Printf("Cleaning up demo database from %s", tempDir)
			os.RemoveAll(tempDir)
		})

		dbPath, err := demo.PrepareDatabase(tempDir)
		if err != nil {
			app.Close()
			return nil, err
		}
		cfg.Database.Driver = config.DriverSQLite
		cfg.Database.Path = dbPath
		cfg.Database.Seed = true
	}

	db, err := database.NewDatabase(cfg.Database)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	app.DB = db

	app.Audit = audit.NewService(auditRepo.NewRepository(db.DB))
	guard := integrity.NewGuard(nil)

	catalog := library.NewCatalogService(db.DB, guard, app.Audit)
	users := library.NewUserService(db.DB, guard, app.Audit)
	reviews := library.NewReviewService(db.DB)
	reservations := library.NewReservationService(db.DB, cfg.Fines.DailyRate,
		library.WithAuditor(app.Audit),
	)

	reporter, err := reports.NewReporter(db, cfg.Fines.DailyRate)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to initialize reports: %w", err)
	}

	routerCfg := http_controllers.RouterConfig{
		Catalog:        catalog,
		Users:          users,
		Reviews:        reviews,
		Reservations:   reservations,
		Stats:          reporter,
		Audit:          app.Audit,
		Database:       db,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		Currency:       cfg.Fines.Currency,
		DemoMiddleware: demoMiddleware,
		Version:        version,
	}

	if cfg.Tasks.Enabled {
		app.Tasks, err = tasks.NewClient(tasks.DBPath(cfg.Database), tasks.FromAppConfig(cfg.Tasks))
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to initialize task queue: %w", err)
		}
		app.Tasks.Register(
			tasks.NewOverdueReportQueue(reporter, app.Audit),
			tasks.NewCleanupAuditEventsQueue(app.Audit, app.Audit),
		)
		routerCfg.Tasks = app.Tasks

		if cfg.Scheduler.Enabled {
			app.Scheduler = scheduler.NewMaintenanceScheduler(app.Tasks,
				scheduler.MaintenanceJobs(cfg.Scheduler, cfg.Audit.RetentionDays)...)
			routerCfg.Jobs = app.Scheduler
		}
	} else if cfg.Scheduler.Enabled {
		log.Printf("WARNING: scheduler needs the task queue; set TASKS_ENABLED=true to run maintenance jobs")
	}

	app.Router = http_controllers.NewRouter(routerCfg)
	return app, nil
}

// Start launches the task workers and the maintenance scheduler.
func (a *App) Start() error {
	if a.Tasks == nil {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.cancelWorkers = cancel
	go a.Tasks.Start(ctx)

	if a.Scheduler != nil {
		if err := a.Scheduler.Start(ctx); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
	}
	return nil
}

// Shutdown stops background work, waiting for running tasks until ctx
// expires, then releases every resource.
func (a *App) Shutdown(ctx context.Context) {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	if a.Tasks != nil && a.cancelWorkers != nil {
		a.Tasks.Stop(ctx)
		a.cancelWorkers()
	}
	a.Close()
}

// Close releases the queue and library databases and pending audit writes.
// It is safe on a partially built App.
func (a *App) Close() {
	if a.Audit != nil {
		a.Audit.Wait()
	}
	if a.Tasks != nil {
		if err := a.Tasks.Close(); err != nil {
			log.Printf("Error closing task client: %v", err)
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}
	for _, fn := range a.cleanup {
		fn()
	}
	a.cleanup = nil
}

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT; SIGKILL can't be caught
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	// Stop background work after in-flight requests have drained
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting library service v%s", version)

	app, err := Build(cfg, version)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if err := app.Start(); err != nil {
		app.Close()
		log.Fatalf("%v", err)
	}

	Serve(app.Router, cfg, app.Shutdown)
}
