// Package chi exposes the public HTTP API. Handlers are thin: decode the
// request, call one usecase, map sentinel errors to statuses.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ansrdlabs/contentd/internal/domain"
	cataloguc "github.com/ansrdlabs/contentd/internal/usecase/catalog"
	feeduc "github.com/ansrdlabs/contentd/internal/usecase/feed"
	healthuc "github.com/ansrdlabs/contentd/internal/usecase/health"
	newsletteruc "github.com/ansrdlabs/contentd/internal/usecase/newsletter"
	searchuc "github.com/ansrdlabs/contentd/internal/usecase/search"
	statsuc "github.com/ansrdlabs/contentd/internal/usecase/stats"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the usecase services behind the HTTP API.
type Server struct {
	catalog       *cataloguc.Service
	search        *searchuc.Service
	stats         *statsuc.Service
	feeds         *feeduc.Service
	newsletter    *newsletteruc.Service
	health        *healthuc.Service
	pdf           *PDFProxy
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	catalog *cataloguc.Service,
	search *searchuc.Service,
	stats *statsuc.Service,
	feeds *feeduc.Service,
	newsletter *newsletteruc.Service,
	health *healthuc.Service,
	pdf *PDFProxy,
	logger *zap.Logger,
) *Server {
	s := &Server{
		catalog:    catalog,
		search:     search,
		stats:      stats,
		feeds:      feeds,
		newsletter: newsletter,
		health:     health,
		pdf:        pdf,
		logger:     logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrNotConfigured, http.StatusServiceUnavailable, codeNotConfigured),
		sentinelHandler(domain.ErrUnavailable, http.StatusBadGateway, codeUpstreamUnavailable),
	}
	return s
}

// Routes mounts every route onto the given router.
func (s *Server) Routes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/search", s.handleSearch)
		r.Get("/posts", s.handlePosts)
		r.Get("/posts/{idOrSlug}", s.handlePost)
		r.Get("/episodes", s.handleEpisodes)
		r.Get("/episodes/{idOrSlug}", s.handleEpisode)
		r.Get("/research", s.handleResearch)
		r.Get("/research/{idOrSlug}", s.handleResearchItem)
		r.Get("/themes", s.handleThemes)
		r.Get("/stats", s.handleStats)
		r.Get("/feeds/podcast", s.handlePodcastFeed)
		r.Get("/feeds/youtube", s.handleYouTubeFeed)
		r.Post("/subscribe", s.handleSubscribe)
		r.Get("/pdf", s.pdf.ServeHTTP)
	})
	r.Get("/healthz", s.handleHealth)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
}

// handleSearch handles GET /api/search?q=&type=.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	contentType := domain.ParseContentType(r.URL.Query().Get("type"))

	results := s.search.SearchAll(r.Context(), query, contentType)

	writeJSON(w, http.StatusOK, map[string]any{
		"query":   query,
		"type":    contentType,
		"total":   len(results),
		"results": results,
	})
}

// handlePosts handles GET /api/posts?limit=.
func (s *Server) handlePosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.catalog.Posts(r.Context(), queryLimit(r))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"total": len(posts), "items": posts})
}

// handlePost handles GET /api/posts/{idOrSlug}.
func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	post, err := s.catalog.Post(r.Context(), chi.URLParam(r, "idOrSlug"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// handleEpisodes handles GET /api/episodes?limit=.
func (s *Server) handleEpisodes(w http.ResponseWriter, r *http.Request) {
	episodes, err := s.catalog.Episodes(r.Context(), queryLimit(r))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"total": len(episodes), "items": episodes})
}

// handleEpisode handles GET /api/episodes/{idOrSlug}.
func (s *Server) handleEpisode(w http.ResponseWriter, r *http.Request) {
	episode, err := s.catalog.Episode(r.Context(), chi.URLParam(r, "idOrSlug"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, episode)
}

// handleResearch handles GET /api/research?limit=.
func (s *Server) handleResearch(w http.ResponseWriter, r *http.Request) {
	papers, err := s.catalog.Research(r.Context(), queryLimit(r))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"total": len(papers), "items": papers})
}

// handleResearchItem handles GET /api/research/{idOrSlug}.
func (s *Server) handleResearchItem(w http.ResponseWriter, r *http.Request) {
	paper, err := s.catalog.ResearchItem(r.Context(), chi.URLParam(r, "idOrSlug"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, paper)
}

// handleThemes handles GET /api/themes.
func (s *Server) handleThemes(w http.ResponseWriter, r *http.Request) {
	themes, err := s.catalog.Themes(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"total": len(themes), "items": themes})
}

// handleStats handles GET /api/stats. Counts degrade to zero inside the
// usecase, so this endpoint always answers 200.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.stats.Counts(r.Context()))
}

// handlePodcastFeed handles GET /api/feeds/podcast?url=.
func (s *Server) handlePodcastFeed(w http.ResponseWriter, r *http.Request) {
	feed, err := s.feeds.Podcast(r.Context(), r.URL.Query().Get("url"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, feed)
}

// handleYouTubeFeed handles GET /api/feeds/youtube.
func (s *Server) handleYouTubeFeed(w http.ResponseWriter, r *http.Request) {
	videos, err := s.feeds.YouTubeVideos(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"total": len(videos), "videos": videos})
}

type subscribeRequest struct {
	Email string `json:"email"`
}

// handleSubscribe handles POST /api/subscribe.
func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := s.newsletter.Subscribe(r.Context(), req.Email)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	status := http.StatusCreated
	if result.AlreadySubscribed {
		status = http.StatusOK
	}
	writeJSON(w, status, result)
}

// handleHealth handles GET /healthz.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

func queryLimit(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorCode string

const (
	codeBadRequest          errorCode = "bad_request"
	codeValidationFailed    errorCode = "validation_failed"
	codeNotFound            errorCode = "not_found"
	codeNotConfigured       errorCode = "not_configured"
	codeUpstreamUnavailable errorCode = "upstream_unavailable"
	codeInternalError       errorCode = "internal_error"
)

type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without
// exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidInput,
		domain.ErrNotFound,
		domain.ErrNotConfigured,
		domain.ErrUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
