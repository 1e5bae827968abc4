package logtail

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrNoLogFiles is returned by SelectLatest when a directory holds no
// .log or .txt files.
var ErrNoLogFiles = errors.New("no log file found")

// SelectLatest returns the most recently modified .log or .txt file directly
// inside dir. Subdirectories are not searched. On equal modification times
// the entry listed first wins.
func SelectLatest(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read log dir: %w", err)
	}

	var (
		latestPath string
		latestMod  time.Time
	)
	for _, entry := range entries {
		if entry.IsDir() || !isLogFile(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		// Stat follows symlinks so a link to a regular file still counts.
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		mod := info.ModTime().UTC()
		if latestPath == "" || mod.After(latestMod) {
			latestPath = path
			latestMod = mod
		}
	}

	if latestPath == "" {
		return "", fmt.Errorf("%w in %s", ErrNoLogFiles, dir)
	}
	return latestPath, nil
}

func isLogFile(name string) bool {
	switch filepath.Ext(name) {
	case ".log", ".txt":
		return true
	default:
		return false
	}
}
