package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/aikyam/site/internal/sitecheck"
)

// Default configuration constants.
const (
	defaultNumDonations  = 200
	defaultDuplicateRate = 0.1
	defaultWorkers       = 2 // multiplier for runtime.NumCPU()
	defaultTimeout       = 10 * time.Second
	defaultSettle        = 30 * time.Second
	defaultCheckTimeout  = 5 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9080", "Base URL of the service")
		donations  = flag.Int("donations", defaultNumDonations, "Number of donations to submit")
		duplicates = flag.Float64("duplicates", defaultDuplicateRate, "Share of donations resubmitted with the same id")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent submitters")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		settle     = flag.Duration("settle", defaultSettle, "How long to wait for the ledger to catch up")
		seed       = flag.Uint64("seed", 0, "Generator seed (default: from the clock)")
		logFile    = flag.String("log", "", "Also write log output to this file")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		sitecheck.ShowHelp()
		return
	}

	closeLog, err := sitecheck.SetupLogging(*logFile, *verbose)
	if err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = closeLog() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultCheckTimeout)
	defer cancel()

	config := &sitecheck.Config{
		BaseURL:       *baseURL,
		NumDonations:  *donations,
		DuplicateRate: *duplicates,
		Workers:       *workers,
		Timeout:       *timeout,
		Settle:        *settle,
		Seed:          *seed,
		LogFile:       *logFile,
		Verbose:       *verbose,
	}

	if err := sitecheck.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Check failed: " + err.Error() + "\n")
		cancel()
		stop()
		_ = closeLog()
		os.Exit(1)
	}
}
