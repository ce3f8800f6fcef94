package sitecheck

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aikyam/site/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging sends log output to stdout and, when logFile is set, to that
// file as well. The returned func closes the file.
func SetupLogging(logFile string, verbose bool) (func() error, error) {
	var (
		w      io.Writer = os.Stdout
		closer           = func() error { return nil }
	)
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
		if err != nil {
			return nil, fmt.Errorf("failed to create log file: %w", err)
		}
		w, closer = io.MultiWriter(os.Stdout, file), file.Close
	}
	if err := logger.InitWithWriter(w, "text"); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		_ = logger.SetLevelString("debug")
	}
	if logFile != "" {
		logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	}
	return closer, nil
}

// ShowHelp prints usage information for the site check tool.
func ShowHelp() {
	os.Stdout.WriteString(`AIKYAM Site Check
=================

Checks a running site: every section renders, the countdown streams, and
concurrent donations (including resubmissions) land in the ledger exactly
once.

Usage:
  go run ./cmd/sitecheck [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -donations int
        Number of donations to submit (default 200)
  -duplicates float
        Share of donations resubmitted with the same id (default 0.1)
  -workers int
        Number of concurrent submitters (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 10s)
  -settle duration
        How long to wait for the ledger to catch up (default 30s)
  -seed uint
        Generator seed (default: from the clock)
  -log string
        Also write log output to this file
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  go run ./cmd/sitecheck -donations 1000 -workers 16
  go run ./cmd/sitecheck -url http://localhost:8080 -verbose
`)
}
