package httpserver

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"go-content-cache/internal/models"
)

// cacheStatusHeader tells callers how their request was satisfied:
// hit, stale, miss or bypass.
const cacheStatusHeader = "X-Cache-Status"

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.servePage(w, r, models.PageKey{Type: models.PageTypeHome})
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	s.servePage(w, r, models.PageKey{Type: models.PageTypePost, Slug: mux.Vars(r)["slug"]})
}

func (s *Server) handleCategory(w http.ResponseWriter, r *http.Request) {
	s.servePage(w, r, models.PageKey{Type: models.PageTypeCategory, Slug: mux.Vars(r)["slug"]})
}

func (s *Server) handleTag(w http.ResponseWriter, r *http.Request) {
	s.servePage(w, r, models.PageKey{Type: models.PageTypeTag, Slug: mux.Vars(r)["slug"]})
}

func (s *Server) handleAuthor(w http.ResponseWriter, r *http.Request) {
	s.servePage(w, r, models.PageKey{Type: models.PageTypeAuthor, Slug: mux.Vars(r)["slug"]})
}

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	s.servePage(w, r, models.PageKey{Type: models.PageTypePortfolio, Slug: mux.Vars(r)["slug"]})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		s.writeErrorResponse(w, "Missing required query parameter: q", http.StatusBadRequest)
		return
	}
	s.servePage(w, r, models.PageKey{Type: models.PageTypeSearch, Slug: query})
}

// servePage runs one page request through the freshness policy and writes the
// payload. Failures never leak internals to the caller.
func (s *Server) servePage(w http.ResponseWriter, r *http.Request, key models.PageKey) {
	result, err := s.policy.GetPage(r.Context(), key)
	if err != nil {
		s.logger.Error("Page request failed",
			zap.String("path", key.Path()),
			zap.Error(err))
		s.writeErrorResponse(w, "Content temporarily unavailable", http.StatusServiceUnavailable)
		return
	}

	if result.NotFound {
		w.Header().Set(cacheStatusHeader, string(result.Status))
		s.writeErrorResponse(w, "Not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(cacheStatusHeader, string(result.Status))
	if _, err := w.Write(result.Data); err != nil {
		s.logger.Error("Failed to write page response", zap.String("path", key.Path()), zap.Error(err))
	}
}
