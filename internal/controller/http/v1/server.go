package v1

import (
	"context"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/kurochkinivan/webpa_collector/internal/config"
)

type Server struct {
	httpServer *http.Server
}

func NewServer(cfg config.HTTP, twinProvider TwinProvider, collector SnapshotCollector, snapshots SnapshotsRepository) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
			Handler:      NewRouter(twinProvider, collector, snapshots),
		},
	}
}

func NewRouter(twinProvider TwinProvider, collector SnapshotCollector, snapshots SnapshotsRepository) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	h := NewDevicesHandler(twinProvider, collector, snapshots)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/devices/{device_id}/twin", h.GetTwin)
		r.Post("/devices/{device_id}/snapshots", h.CollectSnapshot)
		r.Get("/devices/{device_id}/snapshots", h.GetSnapshots)
	})

	return r
}

func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
