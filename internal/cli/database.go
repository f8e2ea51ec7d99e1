package cli

import (
	"flag"
	"strings"

	"github.com/Tocea2003/Practica-BookSystem/internal/config"
)

// databaseFlags are shared by every command that opens the library database.
type databaseFlags struct {
	Driver string
	Path   string
	DSN    string
}

func (f *databaseFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.Driver, "driver", string(config.DriverSQLite), "Database driver: sqlite, postgres or mysql")
	fs.StringVar(&f.Path, "db", config.DefaultDatabasePath, "Path to the SQLite database file")
	fs.StringVar(&f.DSN, "dsn", "", "Connection string for postgres or mysql")
}

func (f *databaseFlags) config(seed bool) config.Database {
	return config.Database{
		Driver:   config.DatabaseDriver(strings.ToLower(f.Driver)),
		Path:     f.Path,
		DSN:      f.DSN,
		LogLevel: "silent",
		Seed:     seed,
	}
}
