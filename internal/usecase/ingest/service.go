// Package ingest implements the dual-write ingestion pipeline: embeddings
// into the domain's vector index, full records into the record store.
package ingest

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/connexe-cloud/connexe/internal/domain"
	"github.com/connexe-cloud/connexe/internal/logger"
)

// Service runs the ingestion pipeline for both entity domains.
type Service struct {
	records RecordWriter
	indexes map[domain.Domain]VectorIndex
	embed   Embedder
}

// New creates an ingestion service with one vector index per domain.
func New(records RecordWriter, content, developer VectorIndex, embed Embedder) *Service {
	return &Service{
		records: records,
		indexes: map[domain.Domain]VectorIndex{
			domain.DomainContent:   content,
			domain.DomainDeveloper: developer,
		},
		embed: embed,
	}
}

// Ingest processes a validated batch for one domain and returns the number
// of records ingested.
//
// Items are embedded strictly one at a time so an empty embedding aborts the
// whole batch naming the exact record id. Record writes and the single index
// upsert are deferred until every embedding has succeeded: a failed batch
// leaves neither the record store nor the vector index touched.
func (s *Service) Ingest(ctx context.Context, dom domain.Domain, items []domain.Record) (int, error) {
	index, ok := s.indexes[dom]
	if !ok {
		return 0, fmt.Errorf("unknown domain %q", dom)
	}

	log := logger.FromContext(ctx)
	log.Info("starting ingestion",
		zap.String("domain", string(dom)),
		zap.Int("item_count", len(items)),
	)

	vectors := make([]domain.IndexedVector, 0, len(items))

	for _, item := range items {
		text := item.EmbeddingText()
		log.Debug("generating embedding",
			zap.String("item_id", item.RecordID()),
			zap.Int("text_length", len(text)),
		)

		result, err := s.embed.Embed(ctx, text)
		if err != nil || len(result.Embedding) == 0 {
			log.Error("embedding generation failed",
				zap.String("domain", string(dom)),
				zap.String("item_id", item.RecordID()),
				zap.Error(err),
			)
			return 0, domain.EmbeddingFailedForItem(item.RecordID()).WithCause(err)
		}

		vectors = append(vectors, domain.IndexedVector{
			ID:       item.RecordID(),
			Values:   result.Embedding,
			Metadata: item.IndexMetadata(),
		})
	}

	// Every embedding succeeded; commit both stores.
	for _, item := range items {
		if err := s.records.Put(ctx, item); err != nil {
			log.Error("record store write failed",
				zap.String("domain", string(dom)),
				zap.String("item_id", item.RecordID()),
				zap.Error(err),
			)
			return 0, s.classify(dom, err)
		}
	}

	if err := index.Upsert(ctx, vectors); err != nil {
		log.Error("vector upsert failed",
			zap.String("domain", string(dom)),
			zap.Int("vector_count", len(vectors)),
			zap.Error(err),
		)
		return 0, s.classify(dom, err)
	}

	log.Info("ingestion complete",
		zap.String("domain", string(dom)),
		zap.Int("count", len(items)),
	)
	return len(items), nil
}

func (s *Service) classify(dom domain.Domain, err error) error {
	message := "Failed to ingest content"
	if dom == domain.DomainDeveloper {
		message = "Failed to ingest developers"
	}
	return domain.Classify(err, message, "Check the logs for the specific step failure")
}
