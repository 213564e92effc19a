package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// NewMux registers the socket.io endpoint and the static frontend
func NewMux(rootPath string, socketHandler http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/socket.io/", socketHandler)
	StartAssets(mux, rootPath)
	StartIndex(mux, rootPath)
	return mux
}

// Serve runs an HTTP server until ctx is done
func Serve(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("dashboard listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
