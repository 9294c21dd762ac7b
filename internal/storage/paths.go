// Package storage provides the persistent perft node-count cache.
package storage

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const appName = "chessrules"

// GetCacheDir returns the platform-specific cache directory for the
// application, creating it if needed.
// - macOS: ~/Library/Caches/chessrules/
// - Linux: $XDG_CACHE_HOME/chessrules/ (default ~/.cache/chessrules/)
// - Windows: %LOCALAPPDATA%/cache/chessrules/
func GetCacheDir() (string, error) {
	cacheDir := filepath.Join(xdg.CacheHome, appName)
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return "", err
	}
	return cacheDir, nil
}

// GetPerftDir returns the directory for the perft node-count database.
func GetPerftDir() (string, error) {
	cacheDir, err := GetCacheDir()
	if err != nil {
		return "", err
	}

	dbDir := filepath.Join(cacheDir, "perft")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return "", err
	}

	return dbDir, nil
}
