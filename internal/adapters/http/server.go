// Package http serves the plain-text crate endpoints and /metrics.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/quentinrf/crate-monitor/internal/domain"
	"github.com/quentinrf/crate-monitor/internal/ports"
)

// Server exposes a rack over HTTP
type Server struct {
	rack     ports.Rack
	gatherer prometheus.Gatherer
}

// NewServer creates a server. gatherer backs /metrics; nil disables it.
func NewServer(rack ports.Rack, gatherer prometheus.Gatherer) *Server {
	return &Server{rack: rack, gatherer: gatherer}
}

// Router builds the chi router with all routes and middleware
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	s.RegisterRoutes(r)
	return r
}

// RegisterRoutes mounts the endpoints on r
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/get_temperature", s.handleTemperature)
	r.Get("/get_bier_data", s.handleOccupancy)
	r.Get("/get_occupancy", s.handleOccupancy)
	r.Get("/daemon_running", s.handleDaemonRunning)

	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrCapabilityAbsent):
		http.Error(w, "404 page not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrReleased):
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
	default:
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (s *Server) handleTemperature(w http.ResponseWriter, r *http.Request) {
	if !s.rack.HasTemperature() {
		writeError(w, domain.ErrCapabilityAbsent)
		return
	}

	temp, err := s.rack.Temperature(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to read temperature")
		writeError(w, err)
		return
	}

	writeText(w, http.StatusOK, strconv.FormatFloat(temp.Celsius(), 'f', -1, 64))
}

func (s *Server) handleOccupancy(w http.ResponseWriter, r *http.Request) {
	if !s.rack.HasOccupancy() {
		writeError(w, domain.ErrCapabilityAbsent)
		return
	}

	grid, err := s.rack.Occupancy(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to read occupancy")
		writeError(w, err)
		return
	}

	writeText(w, http.StatusOK, grid.String())
}

func (s *Server) handleDaemonRunning(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, "running")
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("http request")
	})
}
