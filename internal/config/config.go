package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type DatabaseDriver string

const (
	DriverSQLite   DatabaseDriver = "sqlite"   // Single-file database (default)
	DriverPostgres DatabaseDriver = "postgres" // PostgreSQL via pgx
	DriverMySQL    DatabaseDriver = "mysql"    // MySQL/MariaDB
)

type (
	Config struct {
		HTTP
		Global
		Database
		Fines
		Audit
		Tasks
		Scheduler
		Demo
	}

	HTTP struct {
		Port           int32
		Host           string
		AllowedOrigins []string // Origins allowed to call the API from a browser
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Driver   DatabaseDriver
		Path     string // SQLite file path
		DSN      string // Connection string for postgres/mysql
		LogLevel string // gorm logger level: silent, error, warn, info
		Seed     bool   // Insert reference data into empty tables on startup
	}
	Fines struct {
		DailyRate float64 // Amount charged per full day past the due date
		Currency  string
	}
	Audit struct {
		RetentionDays int // Days to keep audit events (default: 90)
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	Scheduler struct {
		Enabled               bool
		OverdueReportSchedule string // Cron format: "0 8 * * *" = daily at 08:00
		AuditCleanupSchedule  string // Cron format: "30 3 * * 0" = weekly
	}
	Demo struct {
		Enabled bool // Block every write request
	}
)

// loadDotEnv reads a .env file into the process environment if one exists.
func loadDotEnv(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		log.Printf("WARNING: could not load %s: %v", path, err)
		return
	}
	log.Printf("Loaded environment from %s", path)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func NewConfig() *Config {
	loadDotEnv(".env")

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8080)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("cors_allowed_origins", DefaultAllowedOrigins)
	v.SetDefault("shutdown_timeout_in_seconds", 5)

	// Database defaults
	v.SetDefault("database_driver", string(DriverSQLite))
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_dsn", "")
	v.SetDefault("database_log_level", "warn")
	v.SetDefault("database_seed", true)

	// Fines
	v.SetDefault("fine_daily_rate", DefaultDailyFineRate)
	v.SetDefault("fine_currency", "RON")

	v.SetDefault("audit_retention_days", DefaultAuditRetentionDays)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	// Scheduler defaults
	v.SetDefault("scheduler_enabled", true)
	v.SetDefault("overdue_report_schedule", "0 8 * * *") // Daily at 08:00
	v.SetDefault("audit_cleanup_schedule", "30 3 * * 0") // Sundays at 03:30

	v.SetDefault("demo_mode", false)

	return &Config{
		HTTP: HTTP{
			Port:           v.GetInt32("PORT"),
			Host:           v.GetString("HOST"),
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Driver:   DatabaseDriver(strings.ToLower(v.GetString("DATABASE_DRIVER"))),
			Path:     v.GetString("DATABASE_PATH"),
			DSN:      v.GetString("DATABASE_DSN"),
			LogLevel: v.GetString("DATABASE_LOG_LEVEL"),
			Seed:     v.GetBool("DATABASE_SEED"),
		},
		Fines: Fines{
			DailyRate: v.GetFloat64("FINE_DAILY_RATE"),
			Currency:  v.GetString("FINE_CURRENCY"),
		},
		Audit: Audit{
			RetentionDays: v.GetInt("AUDIT_RETENTION_DAYS"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Scheduler: Scheduler{
			Enabled:               v.GetBool("SCHEDULER_ENABLED"),
			OverdueReportSchedule: v.GetString("OVERDUE_REPORT_SCHEDULE"),
			AuditCleanupSchedule:  v.GetString("AUDIT_CLEANUP_SCHEDULE"),
		},
		Demo: Demo{
			Enabled: v.GetBool("DEMO_MODE"),
		},
	}
}
