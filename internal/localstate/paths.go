package localstate

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	envHome    = "SNIPPET_SERVICE_HOME" // override for tests
	dirName    = ".snippet-service"     // default under $HOME
	dbFilename = "snippets.db"
)

// DataDir returns the directory where local snippet data is stored (~/.snippet-service).
// It creates the directory with 0700 permissions if it does not exist.
func DataDir() (string, error) {
	if custom := os.Getenv(envHome); custom != "" {
		if err := os.MkdirAll(custom, 0o700); err != nil {
			return "", err
		}
		return custom, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine user home: %w", err)
	}
	dir := filepath.Join(home, dirName)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

// DBPath returns the absolute path to the SQLite snippet database.
func DBPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dbFilename), nil
}

// ResolveSQLitePath returns configured unchanged when set, otherwise DBPath.
func ResolveSQLitePath(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	return DBPath()
}
