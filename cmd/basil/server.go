package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/feastkit/basil/internal/catalog"
	"github.com/feastkit/basil/internal/httpserver"
	"github.com/feastkit/basil/internal/pantry"
	"github.com/feastkit/basil/internal/push"
	"github.com/feastkit/basil/internal/recipe"
)

// runServer starts the recipe catalog with the HTTP API and the websocket
// change feed.
func runServer(cfg appConfig) error {
	cleanupLogger := configureRuntimeLogger()
	defer cleanupLogger()
	logger := log.Default()

	seed, seedSource, err := loadSeed(cfg)
	if err != nil {
		return fmt.Errorf("failed to load seed recipes: %w", err)
	}

	// Open the pantry for favorites and custom-recipe persistence.
	p, err := pantry.Open(cfg.DataDir, logger)
	if err != nil {
		return fmt.Errorf("failed to open pantry: %w", err)
	}
	store := pantry.NewStore(seed, p, logger)

	// Fan catalog changes out to websocket subscribers.
	changes, stopWatch := store.Catalog().Watch()
	defer stopWatch()

	hub := push.NewHub(changes, logger)
	if err := hub.Start(); err != nil {
		return fmt.Errorf("failed to start push hub: %w", err)
	}
	defer hub.Stop()

	api := httpserver.NewServer(cfg.APIAddr, store, hub)
	if cfg.LogRequests {
		api.EnableRequestLog()
	}
	if err := api.Start(); err != nil {
		return fmt.Errorf("failed to start API server: %w", err)
	}
	defer api.Stop()

	// Set up context and signal handling before errgroup
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println("\nShutting down gracefully... (press Ctrl+C again to force)")
		cancel()

		// Shutdown deadline starts now — not at boot.
		deadline := time.NewTimer(10 * time.Second)
		defer deadline.Stop()

		select {
		case <-sigCh:
			fmt.Println("\nForce shutdown.")
		case <-deadline.C:
			fmt.Println("Shutdown timed out, forcing exit.")
		}
		os.Exit(1)
	}()

	printStartupBanner(cfg, seedSource, store.Count())

	// Use errgroup for concurrent goroutine lifecycle management.
	g, gctx := errgroup.WithContext(ctx)

	if cfg.SnapshotEnabled {
		snapDir := filepath.Join(cfg.DataDir, "snapshots")
		g.Go(func() error {
			return runSnapshots(gctx, p, snapDir, cfg.SnapshotInterval, cfg.SnapshotKeep)
		})
	}

	// Wait for context cancellation (from signal handler) in the errgroup
	g.Go(func() error {
		<-gctx.Done()
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Printf("server: errgroup exited with error: %v", err)
	}

	cancel()

	// If we reach here, graceful shutdown succeeded within the deadline.
	// The signal goroutine (if active) dies with the process.
	signal.Stop(sigCh)

	return nil
}

// loadSeed returns the catalog seed and a label for the startup banner.
func loadSeed(cfg appConfig) ([]recipe.Recipe, string, error) {
	if cfg.SeedFile != "" {
		seed, err := catalog.LoadSeedFile(cfg.SeedFile)
		if err != nil {
			return nil, "", err
		}
		return seed, shortenPath(cfg.SeedFile), nil
	}
	seed, err := catalog.DefaultSeed()
	if err != nil {
		return nil, "", err
	}
	return seed, "built-in", nil
}

// runSnapshots writes a timestamped pantry snapshot every interval and
// prunes old ones.
func runSnapshots(ctx context.Context, p *pantry.Pantry, dir string, interval time.Duration, keep int) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			path, err := p.Snapshot(dir)
			if err != nil {
				log.Printf("snapshot: %v", err)
				continue
			}
			log.Printf("snapshot: wrote %s", shortenPath(path))
			if err := pantry.PruneSnapshots(dir, keep); err != nil {
				log.Printf("snapshot: prune: %v", err)
			}
		}
	}
}

func configureRuntimeLogger() func() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	home, err := os.UserHomeDir()
	if err != nil {
		log.SetOutput(os.Stderr)
		return func() {}
	}

	logDir := filepath.Join(home, ".local", "state", "basil")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.SetOutput(os.Stderr)
		return func() {}
	}

	logPath := filepath.Join(logDir, "basil.log")
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

func printStartupBanner(cfg appConfig, seedSource string, recipes int) {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	cyan := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	bold := lipgloss.NewStyle().Bold(true)

	check := green.Render("●")
	dot := dim.Render("●")

	logo := green.Bold(true).Render(`
    ╔╗ ╔═╗╔═╗╦╦
    ╠╩╗╠═╣╚═╗║║
    ╚═╝╩ ╩╚═╝╩╩═╝`)

	ver := dim.Render("v" + version)

	var lines []string
	lines = append(lines, "")
	lines = append(lines, logo)
	lines = append(lines, "    "+ver)
	lines = append(lines, "")

	separator := dim.Render("    ─────────────────────────────────")
	lines = append(lines, separator)
	lines = append(lines, "")

	// Gateway
	lines = append(lines, bold.Render("    Gateway"))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("    %s  HTTP API       %s", check, cyan.Render("http://"+cfg.APIAddr+"/api")))
	lines = append(lines, fmt.Sprintf("    %s  Change Feed    %s", check, cyan.Render("ws://"+cfg.APIAddr+"/api/events")))
	lines = append(lines, "")

	// Storage
	lines = append(lines, bold.Render("    Storage"))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("    %s  Data Dir       %s", check, dim.Render(shortenPath(cfg.DataDir))))
	lines = append(lines, fmt.Sprintf("    %s  Seed           %s", check, dim.Render(fmt.Sprintf("%s (%d recipes)", seedSource, recipes))))
	if cfg.SnapshotEnabled {
		lines = append(lines, fmt.Sprintf("    %s  Snapshots      %s", check, dim.Render("every "+cfg.SnapshotInterval.String())))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  Snapshots      %s", dot, dim.Render("disabled")))
	}

	lines = append(lines, "")
	lines = append(lines, bold.Render("    Config"))
	lines = append(lines, "")
	if cfg.ConfigPath != "" {
		lines = append(lines, fmt.Sprintf("    %s  Config File    %s", check, dim.Render(shortenPath(cfg.ConfigPath))))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  Config File    %s", dot, dim.Render("default (no file)")))
	}

	lines = append(lines, "")
	lines = append(lines, separator)
	lines = append(lines, "")
	lines = append(lines, "    "+dim.Render("Press ")+yellow.Render("Ctrl+C")+dim.Render(" to stop"))
	lines = append(lines, "")

	fmt.Println(strings.Join(lines, "\n"))
}

func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
