package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"homework_status_bot/internal/app"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// SnapshotProvider is implemented by app.Poller.
type SnapshotProvider interface {
	Snapshot() app.Snapshot
}

// NewRouter exposes liveness, readiness and Prometheus metrics.
func NewRouter(state SnapshotProvider, registry *prometheus.Registry) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		snap := state.Snapshot()
		w.Header().Set("Content-Type", "application/json")
		if snap.Cycles == 0 {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(statusBody{
			Cursor:      snap.Cursor,
			Cycles:      snap.Cycles,
			LastOutcome: string(snap.LastOutcome),
			LastCycleAt: snap.LastCycleAt,
		})
	})
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return r
}

type statusBody struct {
	Cursor      int64     `json:"cursor"`
	Cycles      int       `json:"cycles"`
	LastOutcome string    `json:"last_outcome,omitempty"`
	LastCycleAt time.Time `json:"last_cycle_at"`
}

// Serve runs the HTTP server until ctx is cancelled.
func Serve(ctx context.Context, addr string, handler http.Handler, logger *logrus.Entry) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", addr).Info("HTTP server listening")
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
		logger.Info("Shutting down HTTP server...")
		return srv.Shutdown(shutdownCtx)
	}
}
