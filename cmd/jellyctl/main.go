package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mmcdole/jellyctl/internal/config"
	"github.com/mmcdole/jellyctl/internal/domain"
	"github.com/mmcdole/jellyctl/internal/history"
	"github.com/mmcdole/jellyctl/internal/jellyfin"
	"github.com/mmcdole/jellyctl/internal/reconcile"
	"github.com/mmcdole/jellyctl/internal/report"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var (
		configPath  string
		dryRun      bool
		verbose     bool
		showVersion bool
		historyN    int
	)
	flag.StringVar(&configPath, "config", config.DefaultPath, "path to the desired-state document")
	flag.BoolVar(&dryRun, "dry-run", false, "log mutations instead of sending them")
	flag.BoolVar(&verbose, "verbose", false, "enable debug logging")
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.IntVar(&historyN, "history", 0, "print the last N runs and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("jellyctl %s\n", Version)
		return
	}

	logger := setupLogger(verbose)
	slog.SetDefault(logger)

	if historyN > 0 {
		if err := printHistory(historyN); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(configPath, dryRun, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func run(configPath string, dryRun bool, logger *slog.Logger) error {
	logger.Info("starting jellyctl", "version", Version, "config", configPath, "dryRun", dryRun)

	state, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if state.Server.APIKey == "" {
		key, err := jellyfin.PromptForAPIKey()
		if err != nil {
			return fmt.Errorf("no api key: %w (set server.api_key or JELLYCTL_API_KEY)", err)
		}
		state.Server.APIKey = key
	}

	client := jellyfin.NewClient(state.Server.URL, state.Server.APIKey, logger)
	gate := reconcile.NewGate(client, dryRun, logger)
	runner := reconcile.NewRunner(gate, logger)

	runReport, err := runner.Run(context.Background(), state)
	if err != nil {
		if errors.Is(err, domain.ErrServerUnreachable) {
			logger.Error("server unreachable", "url", state.Server.URL)
		}
		return err
	}

	fmt.Print(report.Render(runReport))

	// Journal failures are logged, never fatal: the run itself succeeded.
	if journal, jerr := history.Open(history.DefaultPath()); jerr != nil {
		logger.Warn("could not open run journal", "error", jerr)
	} else {
		if jerr := journal.Append(runReport); jerr != nil {
			logger.Warn("could not journal run", "error", jerr)
		}
		journal.Close()
	}

	if runReport.Failed() {
		return fmt.Errorf("run completed with failures")
	}
	return nil
}

func printHistory(n int) error {
	journal, err := history.Open(history.DefaultPath())
	if err != nil {
		return fmt.Errorf("failed to open run journal: %w", err)
	}
	defer journal.Close()

	entries, err := journal.Recent(n)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("no journaled runs")
		return nil
	}

	for _, entry := range entries {
		runReport := &domain.RunReport{
			Started: entry.Started,
			DryRun:  entry.DryRun,
			Results: entry.Results,
		}
		fmt.Printf("%s\n", entry.Started.Format("2006-01-02 15:04:05"))
		fmt.Print(report.Render(runReport))
		fmt.Println()
	}
	return nil
}
