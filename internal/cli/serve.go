package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"taskpad/internal/config"
	"taskpad/internal/web"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the local store over a JSON HTTP API",
		Long: strings.TrimSpace(`
Serve the local store over HTTP so other taskpad instances can use it with --remote.

Requests are logged as JSON lines on stderr.
`),
		Example: strings.TrimSpace(`
taskpad serve
taskpad --dir ./data serve --addr 0.0.0.0:3336
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.cfg.Remote != "" {
				return writeErr(cmd, errors.New("serve: --remote cannot be combined with serve"))
			}
			listenAddr := strings.TrimSpace(addr)
			if listenAddr == "" {
				listenAddr = app.cfg.Serve.Addr
			}

			s, err := localStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			logger := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), nil))
			srv, err := web.NewServer(web.ServerConfig{Backend: s, Logger: logger})
			if err != nil {
				return writeErr(cmd, err)
			}

			ln, err := net.Listen("tcp", listenAddr)
			if err != nil {
				return writeErr(cmd, err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			_ = writeOut(cmd, app, map[string]any{
				"addr": ln.Addr().String(),
				"url":  "http://" + ln.Addr().String() + "/",
				"dir":  s.Dir,
			})
			if err := serveUntilDone(ctx, logger, ln, srv.Handler()); err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default serve.addr from config, "+config.DefaultServeAddr+")")
	return cmd
}

// serveUntilDone serves on ln until ctx is cancelled, then shuts down gracefully.
func serveUntilDone(ctx context.Context, logger *slog.Logger, ln net.Listener, h http.Handler) error {
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		logger.Info("http server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
