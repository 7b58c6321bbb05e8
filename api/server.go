package api

import (
	"context"
	"net/http"
	"time"

	"github.com/teohome/storefront-backend/pkg/logger"
)

const shutdownGrace = 10 * time.Second

// NewServer wraps the router in an http.Server with the timeouts the API
// runs with in every environment.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func Run(ctx context.Context, server *http.Server, logg *logger.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if logg != nil {
		logg.Info(shutdownCtx, "draining api server")
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
