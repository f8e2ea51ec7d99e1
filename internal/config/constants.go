package config

const (
	// DefaultDatabasePath is the default path for the SQLite database file
	DefaultDatabasePath = "./library.db"

	// DefaultDailyFineRate is charged per full day a book is returned late
	DefaultDailyFineRate = 1.0

	// DefaultAuditRetentionDays is how long audit events are kept
	DefaultAuditRetentionDays = 90

	// DefaultAllowedOrigins are the dev servers the frontend usually runs on
	DefaultAllowedOrigins = "http://localhost:3000,http://localhost:5173,http://localhost:8080"
)
