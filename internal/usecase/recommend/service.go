// Package recommend implements the query pipeline: embed the query, search
// the domain's vector index, hydrate matches from the record store.
package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/connexe-cloud/connexe/internal/domain"
	"github.com/connexe-cloud/connexe/internal/logger"
)

// Query is a validated recommendation query.
type Query struct {
	Text  string // topic (content) or skills (developer)
	Limit int
	Lang  string
}

// Service runs the recommendation pipeline for both entity domains.
type Service struct {
	records RecordReader
	indexes map[domain.Domain]VectorSearcher
	embed   Embedder
}

// New creates a recommendation service with one vector searcher per domain.
func New(records RecordReader, content, developer VectorSearcher, embed Embedder) *Service {
	return &Service{
		records: records,
		indexes: map[domain.Domain]VectorSearcher{
			domain.DomainContent:   content,
			domain.DomainDeveloper: developer,
		},
		embed: embed,
	}
}

// Recommend embeds the query, searches the domain's index, and hydrates the
// matches. The returned slice preserves the index's rank order minus any
// matches whose record is missing from the store; it is never re-ranked.
func (s *Service) Recommend(ctx context.Context, dom domain.Domain, q Query) ([]domain.Recommendation, error) {
	searcher, ok := s.indexes[dom]
	if !ok {
		return nil, fmt.Errorf("unknown domain %q", dom)
	}

	log := logger.FromContext(ctx)

	result, err := s.embed.Embed(ctx, q.Text)
	if err != nil || len(result.Embedding) == 0 {
		log.Error("embedding generation failed",
			zap.String("domain", string(dom)),
			zap.Error(err),
		)
		return nil, domain.EmbeddingFailed().WithCause(err)
	}

	matches, err := searcher.Query(ctx, result.Embedding, q.Limit, q.Lang)
	if err != nil {
		log.Error("vector query failed",
			zap.String("domain", string(dom)),
			zap.String("lang", q.Lang),
			zap.Int("top_k", q.Limit),
			zap.Error(err),
		)
		return nil, s.classify(err)
	}

	if len(matches) == 0 {
		log.Warn("no vector matches",
			zap.String("domain", string(dom)),
			zap.String("lang", q.Lang),
		)
		return []domain.Recommendation{}, nil
	}

	recs, err := s.hydrate(ctx, dom, matches)
	if err != nil {
		return nil, s.classify(err)
	}

	log.Info("recommendations ready",
		zap.String("domain", string(dom)),
		zap.Int("match_count", len(matches)),
		zap.Int("count", len(recs)),
	)
	return recs, nil
}

// hydrate fetches the full record for every match concurrently. A missing
// record drops the match with a warning; any other store error fails the
// whole query. Rank order is preserved through the indexed result slice.
func (s *Service) hydrate(
	ctx context.Context, dom domain.Domain, matches []domain.Match,
) ([]domain.Recommendation, error) {
	log := logger.FromContext(ctx)

	hydrated := make([]*domain.Recommendation, len(matches))
	errs := make([]error, len(matches))

	var wg sync.WaitGroup
	for i, match := range matches {
		wg.Add(1)
		go func(i int, match domain.Match) {
			defer wg.Done()

			raw, err := s.records.GetRaw(ctx, dom, match.ID)
			if err != nil {
				if errors.Is(err, domain.ErrRecordNotFound) {
					log.Warn("record not found during hydration",
						zap.String("domain", string(dom)),
						zap.String("id", match.ID),
					)
					return
				}
				errs[i] = fmt.Errorf("hydrate %s: %w", match.ID, err)
				return
			}

			var record map[string]any
			if err := json.Unmarshal(raw, &record); err != nil {
				errs[i] = fmt.Errorf("decode record %s: %w", match.ID, err)
				return
			}

			hydrated[i] = &domain.Recommendation{Record: record, Score: match.Score}
		}(i, match)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	recs := make([]domain.Recommendation, 0, len(matches))
	for _, rec := range hydrated {
		if rec != nil {
			recs = append(recs, *rec)
		}
	}
	return recs, nil
}

func (s *Service) classify(err error) error {
	return domain.Classify(err, "Failed to generate recommendations",
		"Check the logs for more details and try again")
}
