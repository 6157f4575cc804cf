package httpserver

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"go-content-cache/internal/freshness"
	"go-content-cache/internal/metrics"
	"go-content-cache/internal/models"
)

// trackViewRequest is the body of a view-tracking call. The post id is only
// validated, not stored; there is no per-post persistence behind this
// endpoint, just a counter.
type trackViewRequest struct {
	PostID string `json:"postId"`
}

// handleRevalidate handles invalidation requests from the CMS webhook.
func (s *Server) handleRevalidate(w http.ResponseWriter, r *http.Request) {
	var req models.InvalidationRequest
	if err := s.parseRequest(r, &req); err != nil {
		s.writeErrorResponse(w, "Invalid request", http.StatusBadRequest)
		return
	}

	result, err := s.policy.Invalidate(req)
	if err != nil {
		switch {
		case errors.Is(err, freshness.ErrBadSecret):
			s.writeErrorResponse(w, "Invalid secret", http.StatusUnauthorized)
		case errors.Is(err, freshness.ErrNoTarget):
			s.writeErrorResponse(w, "Missing required fields: path or tag", http.StatusBadRequest)
		default:
			s.logger.Error("Revalidation failed", zap.Error(err))
			s.writeErrorResponse(w, "Revalidation failed", http.StatusInternalServerError)
		}
		return
	}

	s.writeResponse(w, result)
}

// handleTrackView handles view-tracking requests.
func (s *Server) handleTrackView(w http.ResponseWriter, r *http.Request) {
	var req trackViewRequest
	if err := s.parseRequest(r, &req); err != nil {
		s.writeErrorResponse(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.PostID == "" {
		s.writeErrorResponse(w, "Missing required field: postId", http.StatusBadRequest)
		return
	}

	metrics.RecordViewTrack()
	s.writeResponse(w, map[string]interface{}{
		"success": true,
	})
}
