package database

import (
	"context"
	"fmt"
	"log"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Tocea2003/Practica-BookSystem/internal/config"
	"github.com/Tocea2003/Practica-BookSystem/internal/entities"
)

type Database struct {
	DB     *gorm.DB
	driver config.DatabaseDriver
}

// models lists every table in dependency order for AutoMigrate.
var models = []any{
	&entities.Author{},
	&entities.Publisher{},
	&entities.Category{},
	&entities.Book{},
	&entities.User{},
	&entities.BookReservation{},
	&entities.Review{},
	&entities.AuditEvent{},
}

func NewDatabase(cfg config.Database) (*Database, error) {
	dialector, err := openDialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(parseLogLevel(cfg.LogLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(models...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database := &Database{DB: db, driver: driverOrDefault(cfg.Driver)}

	if cfg.Seed {
		if err := database.Seed(); err != nil {
			return nil, fmt.Errorf("failed to seed database: %w", err)
		}
	}

	log.Printf("Database initialized successfully (%s)", database.driver)

	return database, nil
}

func openDialector(cfg config.Database) (gorm.Dialector, error) {
	switch driverOrDefault(cfg.Driver) {
	case config.DriverSQLite:
		if cfg.Path == "" {
			return nil, fmt.Errorf("sqlite database path is not set")
		}
		return sqlite.Open(sqliteDSN(cfg.Path)), nil
	case config.DriverPostgres:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("postgres DSN is not set")
		}
		return postgres.Open(cfg.DSN), nil
	case config.DriverMySQL:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("mysql DSN is not set")
		}
		return mysql.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// sqliteDSN turns on foreign key enforcement, which SQLite leaves off by default.
func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path + "&_foreign_keys=on"
	}
	return path + "?_foreign_keys=on"
}

func driverOrDefault(d config.DatabaseDriver) config.DatabaseDriver {
	if d == "" {
		return config.DriverSQLite
	}
	return d
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// Driver returns the configured database driver.
func (d *Database) Driver() config.DatabaseDriver {
	return d.driver
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the database connection is alive.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
