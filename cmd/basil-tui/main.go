package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/feastkit/basil/internal/apiclient"
	"github.com/feastkit/basil/internal/catalog"
	"github.com/feastkit/basil/internal/pantry"
	"github.com/feastkit/basil/internal/recipe"
	"github.com/feastkit/basil/internal/tui"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

func main() {
	var configPath string
	var serverURL string
	var local bool
	var open string
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/basil/config.json)")
	flag.StringVar(&serverURL, "server", "", "override basil service URL")
	flag.BoolVar(&local, "local", false, "run against a local catalog instead of a basil service")
	flag.StringVar(&open, "open", "", "open a location on start, e.g. /recipe/<id>")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("Basil CLI - Recipe Browser\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
		fmt.Printf("  Go version: %s\n", goVersion)
		return
	}

	cfg, err := loadCLIConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if serverURL != "" {
		cfg.ServerURL = serverURL
	}
	if local {
		cfg.Local = true
	}

	if err := runTUI(cfg, open); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(cfg cliConfig, open string) error {
	cleanupLogger := configureRuntimeLogger(cfg.StateDir)
	defer cleanupLogger()
	logger := log.Default()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		service recipe.Service
		p       *pantry.Pantry
		events  <-chan catalog.Change
		mode    string
		err     error
	)

	if cfg.Local {
		service, p, events, err = openLocalCatalog(cfg, logger)
		if err != nil {
			return err
		}
		mode = "local"
	} else {
		client := apiclient.New(cfg.ServerURL)

		hctx, hcancel := context.WithTimeout(ctx, 3*time.Second)
		_, err = client.Health(hctx)
		hcancel()
		if err != nil {
			return fmt.Errorf("cannot connect to basil service at %s: %w\nIs the basil service running? Start it with: basil (or pass -local)", cfg.ServerURL, err)
		}

		events, err = client.Events(ctx)
		if err != nil {
			logger.Printf("tui: change feed unavailable, running without live updates: %v", err)
			events = nil
		}
		service = client
		p, err = pantry.Open(cfg.StateDir, logger)
		if err != nil {
			return fmt.Errorf("failed to open pantry: %w", err)
		}
		mode = serverLabel(cfg.ServerURL)
	}

	app, err := tui.NewApp(tui.Options{
		Service:      service,
		Pantry:       p,
		Events:       events,
		Mode:         mode,
		StateDir:     cfg.StateDir,
		Transition:   cfg.Transition,
		GestureCells: cfg.GestureCells,
		OpenLocation: open,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	prog := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := prog.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("TUI requires a real terminal")
		}
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// openLocalCatalog builds the in-process store used when no basil service
// is running. Favorites and custom recipes persist in the data dir.
func openLocalCatalog(cfg cliConfig, logger *log.Logger) (recipe.Service, *pantry.Pantry, <-chan catalog.Change, error) {
	var (
		seed []recipe.Recipe
		err  error
	)
	if cfg.SeedFile != "" {
		seed, err = catalog.LoadSeedFile(cfg.SeedFile)
	} else {
		seed, err = catalog.DefaultSeed()
	}
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load seed recipes: %w", err)
	}

	p, err := pantry.Open(cfg.DataDir, logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open pantry: %w", err)
	}

	store := pantry.NewStore(seed, p, logger)
	changes, _ := store.Catalog().Watch()
	return store, p, changes, nil
}

// serverLabel is the short mode indicator shown in the status line.
func serverLabel(serverURL string) string {
	u, err := url.Parse(serverURL)
	if err != nil || u.Host == "" {
		return serverURL
	}
	return u.Host
}

func configureRuntimeLogger(stateDir string) func() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := os.MkdirAll(stateDir, 0755); err != nil {
		log.SetOutput(os.Stderr)
		return func() {}
	}

	logPath := filepath.Join(stateDir, "basil-tui.log")
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.SetOutput(os.Stderr)
		return func() {}
	}

	log.SetOutput(f)
	return func() {
		_ = f.Close()
	}
}
