package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/cinematch/internal/adapter"
	"github.com/mmcdole/cinematch/internal/recommender"
	"github.com/mmcdole/cinematch/internal/service"
	"github.com/mmcdole/cinematch/internal/store"
	"github.com/mmcdole/cinematch/internal/tui"
	"github.com/mmcdole/cinematch/internal/tui/styles"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                                  \r"

type options struct {
	configFile string
	apiURL     string
	dbPath     string
	check      bool
	initConfig bool
}

func main() {
	var showVersion bool
	var opts options
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&opts.configFile, "config", "", "config file (default searches ~/.config/cinematch)")
	flag.StringVar(&opts.apiURL, "api", "", "recommendation service URL")
	flag.StringVar(&opts.dbPath, "db", "", "preference database path")
	flag.BoolVar(&opts.check, "check", false, "check the recommendation service and exit")
	flag.BoolVar(&opts.initConfig, "init-config", false, "write the effective config to the default location and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("cinematch %s\n", Version)
		return
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg, err := adapter.LoadConfig(opts.configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.apiURL != "" {
		cfg.API.URL = opts.apiURL
	}
	if opts.dbPath != "" {
		cfg.Storage.Path = opts.dbPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if opts.initConfig {
		path := adapter.DefaultConfigFile()
		if err := adapter.SaveConfig(cfg, path); err != nil {
			return err
		}
		fmt.Printf("✓ Configuration saved to %s\n", path)
		return nil
	}

	logger, closer, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	} else {
		defer closer.Close()
	}
	slog.SetDefault(logger)

	logger.Info("starting cinematch", "version", Version, "api", cfg.API.URL)

	client := recommender.NewClient(cfg.API.URL, cfg.API.Timeout, logger)
	breaker := recommender.NewBreakerClient(client, recommender.BreakerSettings{
		Failures: cfg.Breaker.Failures,
		Timeout:  cfg.Breaker.Timeout,
	}, logger)

	if opts.check {
		return checkWithSpinner(breaker, cfg.API.URL)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("cinematch needs an interactive terminal")
	}

	prefs, err := store.NewPreferenceStore(cfg.Storage.Path, logger)
	if err != nil {
		return fmt.Errorf("failed to open preference store: %w", err)
	}
	defer prefs.Close()

	svc := service.NewRecommendationService(breaker, prefs, cfg.UI.Count, logger)
	model := tui.NewModel(svc, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// checkWithSpinner probes the service health endpoint with a visual spinner
func checkWithSpinner(client *recommender.BreakerClient, apiURL string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	type result struct {
		status string
		err    error
	}
	resultCh := make(chan result, 1)

	go func() {
		status, err := client.Health(ctx)
		resultCh <- result{status, err}
	}()

	frame := 0
	fmt.Printf("\r%s Contacting %s...", styles.SpinnerFrames[frame], apiURL)

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case res := <-resultCh:
			fmt.Print(clearSpinnerLine)
			if res.err != nil {
				fmt.Printf("✗ %s is unreachable\n", apiURL)
				return res.err
			}
			fmt.Printf("✓ %s: %s\n", apiURL, res.status)
			return nil

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Contacting %s...", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)], apiURL)

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return fmt.Errorf("health check timed out")
		}
	}
}
