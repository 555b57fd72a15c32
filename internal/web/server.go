// Package web serves the snapshot gallery over HTTP.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aleister1102/snapgallery/internal/common"
	"github.com/aleister1102/snapgallery/internal/config"
	"github.com/aleister1102/snapgallery/internal/gallery"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// SnapshotURLPrefix is where image files are served from.
const SnapshotURLPrefix = "/static/snapshots/"

const siteTitle = "Night Snapshots"

// Server is the gallery's HTTP front end.
type Server struct {
	cfg         config.ServerConfig
	service     *gallery.Service
	renderer    *Renderer
	sessions    sessionCookies
	snapshotDir string
	router      chi.Router
	logger      zerolog.Logger
}

// NewServer wires the routes. snapshotDir is served under SnapshotURLPrefix.
func NewServer(cfg config.ServerConfig, sessionCfg config.SessionStoreConfig, snapshotDir string, service *gallery.Service, renderer *Renderer, logger zerolog.Logger) *Server {
	s := &Server{
		cfg:         cfg,
		service:     service,
		renderer:    renderer,
		sessions:    sessionCookies{name: sessionCfg.CookieName, ttl: sessionCfg.SessionTTL()},
		snapshotDir: snapshotDir,
		logger:      logger.With().Str("component", "WebServer").Logger(),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(hlog.NewHandler(s.logger))
	r.Use(hlog.RequestIDHandler("req_id", "X-Request-Id"))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("Request handled")
	}))
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/snapshots", s.handleSnapshots)
	r.Get("/ajax/load_snapshots", s.handleLoadMore)
	r.Get("/healthz", s.handleHealth)

	r.Route("/static", func(r chi.Router) {
		r.Get("/scripts.js", s.handleScript)
		r.Handle("/snapshots/*", s.snapshotFiles())
	})

	return r
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.router,
		ReadTimeout:       s.cfg.ReadTimeout(),
		ReadHeaderTimeout: s.cfg.ReadTimeout(),
		WriteTimeout:      s.cfg.WriteTimeout(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("listen_addr", s.cfg.ListenAddr).Msg("Server starting")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return common.WrapError(err, "http server failed")
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info().Dur("timeout", s.cfg.ShutdownTimeout()).Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout())
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return common.WrapError(err, "graceful shutdown failed")
	}
	s.logger.Info().Msg("Server stopped")
	return nil
}
