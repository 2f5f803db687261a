// Package httpapi exposes the four-endpoint recommendation API over chi.
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/connexe-cloud/connexe/internal/db"
	"github.com/connexe-cloud/connexe/internal/domain"
	"github.com/connexe-cloud/connexe/internal/usecase/ingest"
	"github.com/connexe-cloud/connexe/internal/usecase/recommend"
)

const (
	defaultLimit = 1
	maxLimit     = 20

	// defaultDeveloperSkills is the fallback query when no skills are given.
	defaultDeveloperSkills = "vue,nuxt"
)

// Ingester runs the ingestion pipeline.
type Ingester interface {
	Ingest(ctx context.Context, dom domain.Domain, items []domain.Record) (int, error)
}

// Recommender runs the query pipeline.
type Recommender interface {
	Recommend(ctx context.Context, dom domain.Domain, q recommend.Query) ([]domain.Recommendation, error)
}

// HealthChecker probes embedding provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Server holds the API handlers.
type Server struct {
	ingester     Ingester
	recommender  Recommender
	pinger       db.Pinger
	embedHealth  HealthChecker
	ingestSecret string
	logger       *zap.Logger
}

var (
	_ Ingester    = (*ingest.Service)(nil)
	_ Recommender = (*recommend.Service)(nil)
)

// NewServer creates the HTTP API server. embedHealth may be nil when the
// embedding provider exposes no health probe.
func NewServer(
	ingester Ingester,
	recommender Recommender,
	pinger db.Pinger,
	embedHealth HealthChecker,
	ingestSecret string,
	logger *zap.Logger,
) *Server {
	return &Server{
		ingester:     ingester,
		recommender:  recommender,
		pinger:       pinger,
		embedHealth:  embedHealth,
		ingestSecret: ingestSecret,
		logger:       logger,
	}
}

// Routes mounts all endpoints on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(IngestSecretMiddleware(s.ingestSecret))
			r.Post("/ingest/content", s.IngestContent)
			r.Post("/ingest/developer", s.IngestDeveloper)
		})
		r.Group(func(r chi.Router) {
			r.Use(AllowAllOrigins)
			r.Get("/recommend/content", s.RecommendContent)
			r.Get("/recommend/developer", s.RecommendDeveloper)
			r.Options("/recommend/content", s.preflight)
			r.Options("/recommend/developer", s.preflight)
		})
	})

	r.Get("/health", s.Health)
	r.Handle("/metrics", promhttp.Handler())
}

// ingestResponse is the success body for both ingestion endpoints.
type ingestResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
}

// recommendResponse is the success body for both recommendation endpoints.
type recommendResponse struct {
	Recommendations []domain.Recommendation `json:"recommendations"`
}

// IngestContent handles POST /api/ingest/content.
func (s *Server) IngestContent(w http.ResponseWriter, r *http.Request) {
	var items []*domain.ContentItem
	if err := decodeBatch(r, &items); err != nil {
		writeError(w, err)
		return
	}

	records := make([]domain.Record, 0, len(items))
	for i, item := range items {
		item.ApplyDefaults()
		if err := item.Validate(); err != nil {
			writeError(w, domain.ValidationRejected(fmt.Sprintf("item %d: %v", i, err)))
			return
		}
		records = append(records, item)
	}

	count, err := s.ingester.Ingest(r.Context(), domain.DomainContent, records)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ingestResponse{Success: true, Count: count})
}

// IngestDeveloper handles POST /api/ingest/developer.
func (s *Server) IngestDeveloper(w http.ResponseWriter, r *http.Request) {
	var items []*domain.DeveloperItem
	if err := decodeBatch(r, &items); err != nil {
		writeError(w, err)
		return
	}

	records := make([]domain.Record, 0, len(items))
	for i, item := range items {
		item.ApplyDefaults()
		if err := item.Validate(); err != nil {
			writeError(w, domain.ValidationRejected(fmt.Sprintf("item %d: %v", i, err)))
			return
		}
		records = append(records, item)
	}

	count, err := s.ingester.Ingest(r.Context(), domain.DomainDeveloper, records)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ingestResponse{Success: true, Count: count})
}

// RecommendContent handles GET /api/recommend/content.
func (s *Server) RecommendContent(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r.URL.Query(), "topic", "")
	if err != nil {
		writeError(w, err)
		return
	}

	recs, rerr := s.recommender.Recommend(r.Context(), domain.DomainContent, q)
	if rerr != nil {
		writeError(w, rerr)
		return
	}

	writeJSON(w, http.StatusOK, recommendResponse{Recommendations: recs})
}

// RecommendDeveloper handles GET /api/recommend/developer.
func (s *Server) RecommendDeveloper(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r.URL.Query(), "skills", defaultDeveloperSkills)
	if err != nil {
		writeError(w, err)
		return
	}

	recs, rerr := s.recommender.Recommend(r.Context(), domain.DomainDeveloper, q)
	if rerr != nil {
		writeError(w, rerr)
		return
	}

	writeJSON(w, http.StatusOK, recommendResponse{Recommendations: recs})
}

// Health handles GET /health with a per-dependency breakdown.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"database": "ok"}
	healthy := true

	if err := s.pinger.Ping(r.Context()); err != nil {
		s.logger.Warn("health: database ping failed", zap.Error(err))
		checks["database"] = "unavailable"
		healthy = false
	}

	if s.embedHealth != nil {
		checks["embedding"] = "ok"
		if err := s.embedHealth.HealthCheck(r.Context()); err != nil {
			s.logger.Warn("health: embedding provider check failed", zap.Error(err))
			checks["embedding"] = "unavailable"
			healthy = false
		}
	}

	status := "ok"
	code := http.StatusOK
	if !healthy {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]any{"status": status, "checks": checks})
}

func (s *Server) preflight(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// decodeBatch parses a JSON array request body. A malformed body is a
// terminal validation rejection; no pipeline work happens.
func decodeBatch(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.ValidationRejected("request body must be a JSON array of records").WithCause(err)
	}
	return nil
}

// parseQuery validates recommendation query parameters. The text parameter is
// required unless a fallback is configured; limit is an integer in [1, 20]
// defaulting to 1 and is never passed through uncapped.
func parseQuery(values url.Values, textParam, textDefault string) (recommend.Query, error) {
	text := values.Get(textParam)
	if text == "" {
		text = textDefault
	}
	if text == "" {
		return recommend.Query{}, domain.ValidationRejected(textParam + " is required")
	}

	limit := defaultLimit
	if raw := values.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return recommend.Query{}, domain.ValidationRejected("limit must be an integer")
		}
		if parsed < 1 || parsed > maxLimit {
			return recommend.Query{}, domain.ValidationRejected(
				fmt.Sprintf("limit must be between 1 and %d", maxLimit))
		}
		limit = parsed
	}

	lang := values.Get("lang")
	if lang == "" {
		lang = domain.DefaultLang
	}

	return recommend.Query{Text: text, Limit: limit, Lang: lang}, nil
}
