package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

const logFilePattern = "server-*.log"

// SetupLogFile creates a timestamped log file in dir and prunes old ones,
// keeping the maxFiles most recent. The caller owns the returned handle.
func SetupLogFile(dir string, maxFiles int) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	filename := filepath.Join(dir, fmt.Sprintf("server-%s.log",
		time.Now().Format("2006-01-02T15-04-05")))

	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}

	if err := pruneOldLogs(dir, maxFiles); err != nil {
		// Pruning failure shouldn't stop the server from logging
		fmt.Fprintf(os.Stderr, "warning: failed to prune old logs: %v\n", err)
	}

	return f, nil
}

// pruneOldLogs removes the oldest log files when the count exceeds maxFiles.
// The timestamped names sort chronologically.
func pruneOldLogs(dir string, maxFiles int) error {
	files, err := filepath.Glob(filepath.Join(dir, logFilePattern))
	if err != nil {
		return err
	}
	if len(files) <= maxFiles {
		return nil
	}

	sort.Strings(files)
	for _, stale := range files[:len(files)-maxFiles] {
		if err := os.Remove(stale); err != nil {
			return fmt.Errorf("remove %s: %w", stale, err)
		}
	}
	return nil
}
