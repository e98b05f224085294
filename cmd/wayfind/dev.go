package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/wayfind-dev/wayfind/internal/config"
	"github.com/wayfind-dev/wayfind/internal/dev"
)

func devCmd() *cobra.Command {
	var (
		port        int
		host        string
		openBrowser bool
	)

	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Start the development server",
		Long: `Start the development server with live reload.

The dev server serves the build output as a single-page app, watches
the pages and layouts directories, regenerates the route table on
change, and refreshes connected browsers.

Features:
  • Route regeneration on page file change
  • Live reload on change
  • Error overlay in browser
  • SPA fallback so deep links resolve

Examples:
  wayfind dev
  wayfind dev --port=8080
  wayfind dev --host=0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDev(port, host, openBrowser)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from wayfind.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from wayfind.json)")
	cmd.Flags().BoolVarP(&openBrowser, "open", "o", false, "Open browser on start")

	return cmd
}

func runDev(port int, host string, openBrowser bool) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}

	// Apply command-line overrides
	if port > 0 {
		cfg.Dev.Port = port
	}
	if host != "" {
		cfg.Dev.Host = host
	}
	if openBrowser {
		cfg.Dev.OpenBrowser = true
	}

	printBanner()
	fmt.Println("  dev")
	fmt.Println()

	server := dev.NewServer(dev.ServerOptions{
		Config: cfg,
		OnReload: func(clients int) {
			success("Reloaded %d browsers", clients)
		},
	})

	// Handle signals
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println("\n\n  Shutting down...")
		cancel()
		server.Stop()
	}()

	if cfg.Dev.OpenBrowser {
		go openURL(cfg.DevURL())
	}

	return server.Start(ctx)
}

// openURL opens a URL in the default browser.
func openURL(url string) {
	var cmd *exec.Cmd

	switch {
	case commandExists("xdg-open"):
		cmd = exec.Command("xdg-open", url)
	case commandExists("open"):
		cmd = exec.Command("open", url)
	case commandExists("start"):
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return
	}

	cmd.Start()
}

// commandExists checks if a command exists in PATH.
func commandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
