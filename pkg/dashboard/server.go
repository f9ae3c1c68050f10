// Package dashboard serves the local admin dashboard API over the cached
// volunteer list: derived pages, role counts, server-confirmed mutations,
// and exports.
package dashboard

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/aakfoundation/sevak-registry/pkg/cache"
	"github.com/aakfoundation/sevak-registry/pkg/clients/registryclient"
)

// Server wires the dashboard handlers over the cache and registry client.
type Server struct {
	cache  *cache.VolunteerListCache
	client *registryclient.Client
	logger *zap.Logger
	now    func() time.Time
}

// NewServer creates a dashboard server.
func NewServer(c *cache.VolunteerListCache, client *registryclient.Client, logger *zap.Logger) *Server {
	return &Server{
		cache:  c,
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

// Routes returns the dashboard router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/refresh", s.handleRefresh)
	r.Post("/wake", s.handleWake)

	r.Route("/volunteers", func(r chi.Router) {
		r.Get("/", s.handleListVolunteers)
		r.Post("/", s.handleRegisterVolunteer)
		r.Get("/counts", s.handleRoleCounts)
		r.Get("/export.csv", s.handleExportCSV)
		r.Delete("/{id}", s.handleDeleteVolunteer)
		r.Get("/{id}/card.png", s.handleExportCard)
	})

	r.Route("/admin/roles", func(r chi.Router) {
		r.Post("/assign", s.handleAssignRole)
		r.Post("/remove", s.handleRemoveRole)
	})

	return r
}

// ListenAndServe runs the dashboard until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Dashboard listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"state":    string(s.cache.State()),
		"degraded": s.cache.Degraded(),
	}, nil)
}
