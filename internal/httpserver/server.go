package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-content-cache/internal/freshness"
)

// Server is the HTTP serving surface: page endpoints backed by the freshness
// policy, plus the revalidation and view-tracking API.
type Server struct {
	policy *freshness.Policy
	logger *zap.Logger
	server *http.Server
}

// NewServer creates the content HTTP server.
func NewServer(policy *freshness.Policy, logger *zap.Logger) *Server {
	return &Server{
		policy: policy,
		logger: logger,
	}
}

// Start starts the HTTP server on the given address and blocks until it
// stops.
func (s *Server) Start(addr string) error {
	router := s.createRouter()

	s.server = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting content HTTP server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping content HTTP server")
	return s.server.Shutdown(ctx)
}

// createRouter creates and configures the HTTP router
func (s *Server) createRouter() *mux.Router {
	router := mux.NewRouter()

	// Page endpoints
	router.HandleFunc("/", s.handleHome).Methods("GET")
	router.HandleFunc("/posts/{slug}", s.handlePost).Methods("GET")
	router.HandleFunc("/category/{slug}", s.handleCategory).Methods("GET")
	router.HandleFunc("/tag/{slug}", s.handleTag).Methods("GET")
	router.HandleFunc("/author/{slug}", s.handleAuthor).Methods("GET")
	router.HandleFunc("/portfolio", s.handlePortfolio).Methods("GET")
	router.HandleFunc("/portfolio/{slug}", s.handlePortfolio).Methods("GET")
	router.HandleFunc("/search", s.handleSearch).Methods("GET")

	// Invalidation and tracking API
	router.HandleFunc("/api/revalidate", s.handleRevalidate).Methods("POST")
	router.HandleFunc("/api/track-view", s.handleTrackView).Methods("POST")

	// Health check
	router.HandleFunc("/health", s.handleHealth).Methods("GET")

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return router
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeResponse(w, map[string]interface{}{
		"status": "healthy",
		"time":   time.Now().UTC(),
	})
}

// parseRequest parses JSON request body
func (s *Server) parseRequest(r *http.Request, v interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	defer r.Body.Close()

	return json.Unmarshal(body, v)
}

// writeResponse writes JSON response
func (s *Server) writeResponse(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to write response", zap.Error(err))
	}
}

// writeErrorResponse writes error response
func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	response := map[string]interface{}{
		"error": message,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logger.Error("Failed to write error response", zap.Error(err))
	}
}
