package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"stacklens/internal/api"
	"stacklens/internal/auth"
	"stacklens/internal/storage"
)

var (
	serveHost    string
	servePort    int
	serveAuth    bool
	serveNoStore bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the local HTTP API used by editor plugins and CI.

Endpoints: /health, /ready, /analyze, /features, /classify,
/architecture, /violations, /quality, /runs.

Examples:
  stacklens serve
  stacklens serve --port 8080 --auth`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Bind host (default from config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Bind port (default from config)")
	serveCmd.Flags().BoolVar(&serveAuth, "auth", false, "Require bearer token authentication")
	serveCmd.Flags().BoolVar(&serveNoStore, "no-store", false, "Disable run persistence")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) {
	logger := newLogger("human")

	repoRoot := mustGetRepoRoot()
	cfg := mustLoadConfig(repoRoot)

	host := serveHost
	if host == "" {
		host = cfg.Server.Host
	}
	port := servePort
	if port == 0 {
		port = cfg.Server.Port
	}
	addr := fmt.Sprintf("%s:%d", host, port)

	opts := api.Options{}
	if !serveNoStore {
		store, err := storage.Open(repoRoot, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = store.Close() }()
		opts.Store = store

		if serveAuth {
			keys := auth.NewKeyStore(store.DB(), logger)
			if err := keys.InitSchema(); err != nil {
				fmt.Fprintf(os.Stderr, "Error initializing key store: %v\n", err)
				os.Exit(1)
			}
			opts.Keys = keys
		}
	} else if serveAuth {
		fmt.Fprintln(os.Stderr, "Error: --auth requires the runs database; drop --no-store")
		os.Exit(1)
	}

	server := api.NewServer(addr, logger, opts)

	// Serve until interrupted, then drain in-flight requests.
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case sig := <-sigCh:
		logger.Info("Received signal", map[string]interface{}{
			"signal": sig.String(),
		})
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error during shutdown: %v\n", err)
			os.Exit(1)
		}
	}
}
