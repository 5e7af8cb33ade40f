// Package serve contains the HTTP API server command
package serve

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"fjacquet/finanza/cmd/root"
	"fjacquet/finanza/internal/api"
)

var addr string

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Run the HTTP API server exposing the ledger, analytics, reports,
backup exchange and a live snapshot stream.`,
	Run: serveFunc,
}

func init() {
	Cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from configuration)")
}

func serveFunc(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := root.OpenApp(ctx)
	if err != nil {
		root.Log.Fatalf("Failed to open ledger: %v", err)
	}
	defer app.Close()

	listen := addr
	if listen == "" {
		listen = root.Cfg.Server.Addr
	}

	server := api.NewServer(app.Ledger, app.Profiles, app.Reports, root.Cfg, app.Logger)
	httpServer := &http.Server{
		Addr:              listen,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		root.Log.Infof("Listening on %s", listen)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			root.Log.Fatalf("Server failed: %v", err)
		}
	case <-ctx.Done():
		root.Log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			root.Log.Warnf("Graceful shutdown failed: %v", err)
		}
	}
}
