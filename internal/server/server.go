// Package server exposes the dashboard pipeline over HTTP. Every request is
// its own session: the two tables travel with the request and nothing is
// stored between calls.
package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/datavista/datavista-cli/internal/query"
	"github.com/datavista/datavista-cli/internal/report"
)

// Server wires the pipeline and the query answerer behind a mux router.
type Server struct {
	log      *zap.Logger
	opts     report.Options
	answerer *query.Answerer
}

// New creates a Server. answerer may use any ai.Runtime (fakes in tests).
func New(log *zap.Logger, opts report.Options, answerer *query.Answerer) *Server {
	return &Server{log: log, opts: opts, answerer: answerer}
}

// Router builds the HTTP routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestID)
	r.Use(s.accessLog)

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/dashboard", s.handleDashboard).Methods(http.MethodPost)
	r.HandleFunc("/api/recommend", s.handleRecommend).Methods(http.MethodPost)
	r.HandleFunc("/api/query", s.handleQuery).Methods(http.MethodPost)
	return r
}

// ListenAndServe blocks serving on addr.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.Info("listening", zap.String("addr", addr))
	return srv.ListenAndServe()
}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", w.Header().Get("X-Request-ID")),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
