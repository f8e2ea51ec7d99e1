package demo

import (
	"fmt"
	"os"
	"path/filepath"
)

const databaseFile = "demo.db"

// PrepareDatabase returns a fresh SQLite path under targetDir for a demo
// run. Any database left over from an earlier run is removed so the seed
// data is loaded again.
func PrepareDatabase(targetDir string) (string, error) {
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return "", fmt.Errorf("create demo dir: %w", err)
	}

	dbPath := filepath.Join(targetDir, databaseFile)
	for _, path := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return "", fmt.Errorf("remove stale demo database: %w", err)
		}
	}
	return dbPath, nil
}
