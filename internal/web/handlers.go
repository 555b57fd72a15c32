package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aleister1102/snapgallery/internal/common"
	"github.com/aleister1102/snapgallery/internal/gallery"
	"github.com/rs/zerolog/hlog"
)

type indexView struct {
	Title  string
	Window string
}

type snapshotsView struct {
	Title       string
	Window      string
	Now         time.Time
	Interval    int
	Resolutions []int
	Page        gallery.Page
}

type healthResponse struct {
	Status        string               `json:"status"`
	Time          time.Time            `json:"time"`
	Window        string               `json:"window"`
	WindowLength  string               `json:"window_length"`
	ResourceUsage common.ResourceUsage `json:"resource_usage"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, indexTemplateName, indexView{
		Title:  siteTitle,
		Window: s.service.Window().String(),
	})
}

func (s *Server) handleSnapshots(w http.ResponseWriter, r *http.Request) {
	interval := 0
	if raw := r.URL.Query().Get("interval"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "interval must be a whole number of minutes", http.StatusBadRequest)
			return
		}
		interval = v
	}
	if interval <= 0 {
		interval = s.service.DefaultInterval()
	}

	sessionID := s.sessions.ensure(w, r)
	page, err := s.service.Open(r.Context(), sessionID, interval)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.render(w, r, http.StatusOK, snapshotsTemplateName, snapshotsView{
		Title:       siteTitle,
		Window:      s.service.Window().String(),
		Now:         s.service.Now(),
		Interval:    interval,
		Resolutions: s.service.Resolutions(),
		Page:        page,
	})
}

func (s *Server) handleLoadMore(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := s.sessions.lookup(r)
	if !ok {
		w.WriteHeader(http.StatusConflict)
		return
	}

	page, err := s.service.LoadMore(r.Context(), sessionID)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("X-Last-Page", strconv.FormatBool(page.IsLastPage))
	w.Header().Set("X-Page-Outcome", page.Outcome.String())
	s.render(w, r, http.StatusOK, paginationTemplateName, page)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	resp := healthResponse{
		Status:        "ok",
		Time:          s.service.Now(),
		Window:        s.service.Window().String(),
		WindowLength:  s.service.Window().Duration().String(),
		ResourceUsage: common.GetResourceUsage(),
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Failed to encode health response")
	}
}

func (s *Server) handleScript(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	if _, err := w.Write(s.renderer.Script()); err != nil {
		hlog.FromRequest(r).Debug().Err(err).Msg("Failed to write script")
	}
}

// snapshotFiles serves image files and refuses directory listings.
func (s *Server) snapshotFiles() http.Handler {
	files := http.StripPrefix(SnapshotURLPrefix, http.FileServer(http.Dir(s.snapshotDir)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data interface{}) {
	var buf strings.Builder
	if err := s.renderer.Render(&buf, name, data); err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("template", name).Msg("Failed to render template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(buf.String())); err != nil {
		hlog.FromRequest(r).Debug().Err(err).Msg("Failed to write response")
	}
}

// fail maps service errors onto status codes.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrInvalidConfiguration):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, gallery.ErrNoCursor):
		w.WriteHeader(http.StatusConflict)
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("Request failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
