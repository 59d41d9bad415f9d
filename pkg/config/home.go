package config

import (
	"os"
	"path/filepath"
	"sync"
)

const envHome = "REPORTVIEW_HOME"

var (
	homeOnce sync.Once
	homeDir  string
)

// GetHome returns the reportview home directory.
//
// Resolution order:
//  1. $REPORTVIEW_HOME environment variable
//  2. <user cache dir>/reportview
//  3. Current working directory
func GetHome() string {
	homeOnce.Do(func() {
		homeDir = resolveHome()
	})
	return homeDir
}

// GetLogDir returns <home>/logs.
func GetLogDir() string {
	return filepath.Join(GetHome(), "logs")
}

// DefaultLogPath returns the log file used when --log-file is not given.
func DefaultLogPath() string {
	return filepath.Join(GetLogDir(), "reportview.log")
}

func resolveHome() string {
	if env := os.Getenv(envHome); env != "" {
		return env
	}
	if cache, err := os.UserCacheDir(); err == nil {
		return filepath.Join(cache, "reportview")
	}
	if cwd, err := os.Getwd(); err == nil {
		return cwd
	}
	return "."
}

// ResetHome resets the cached home directory (for testing).
func ResetHome() {
	homeOnce = sync.Once{}
	homeDir = ""
}
