package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"fxsummary/internal/config"

	"github.com/sirupsen/logrus"
)

const defaultShutdownTimeout = 10 * time.Second

// Start serves handler until ctx is canceled, then drains in-flight requests
// (which may be sitting in a retry delay) for up to the configured shutdown timeout.
func Start(ctx context.Context, cfg config.HTTPServer, handler http.Handler) error {
	listener, listenErr := net.Listen("tcp", ":"+cfg.Port)
	if listenErr != nil {
		return listenErr
	}
	return serve(ctx, listener, cfg, handler)
}

func serve(ctx context.Context, listener net.Listener, cfg config.HTTPServer, handler http.Handler) error {
	logrus.Infof("✅ HTTP server listening on %s", listener.Addr())

	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
	errCh := make(chan error, 1)
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		timeout := cfg.ShutdownTimeout
		if timeout <= 0 {
			timeout = defaultShutdownTimeout
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		logrus.Info("Shutting down HTTP server")
		return server.Shutdown(shutdownCtx)
	case serveErr := <-errCh:
		return serveErr
	}
}
