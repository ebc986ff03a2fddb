// Package server exposes health, readiness, metrics and a daily pipeline trigger over HTTP.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"calorie-workers/internal/common/logger"
	"calorie-workers/internal/nutrition"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// PipelineStarter is satisfied by camunda.Client.
type PipelineStarter interface {
	StartDailyPipeline(ctx context.Context, bpmnProcessID string, variables interface{}) (int64, error)
}

type Options struct {
	Address        string
	AllowedOrigins []string
	ProcessID      string
	Catalog        nutrition.Catalog
	Starter        PipelineStarter
	Readiness      *Readiness
	Logger         logger.Logger
}

type Server struct {
	opts   Options
	http   *http.Server
	logger logger.Logger
}

func New(opts Options) *Server {
	s := &Server{opts: opts, logger: opts.Logger}
	s.http = &http.Server{
		Addr:         opts.Address,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s
}

// Handler is the routed, CORS-wrapped handler.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	r.HandleFunc("/ready", s.ready).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/pipelines/daily", s.startDailyPipeline).Methods(http.MethodPost)

	c := cors.New(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(r)
}

// ListenAndServe blocks until Shutdown is called.
func (s *Server) ListenAndServe() error {
	s.logger.Info("http server listening", map[string]interface{}{"address": s.opts.Address})
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) ready(w http.ResponseWriter, _ *http.Request) {
	if s.opts.Readiness == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"status": "ready"})
		return
	}

	ok, checks, checked := s.opts.Readiness.Snapshot()
	status, code := "ready", http.StatusOK
	if !ok {
		status, code = "not_ready", http.StatusServiceUnavailable
	}

	body := map[string]interface{}{
		"status": status,
		"checks": checks,
	}
	if !checked.IsZero() {
		body["checkedAt"] = checked.Format(time.RFC3339)
	}
	writeJSON(w, code, body)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
