package ingest

import (
	"context"

	"github.com/connexe-cloud/connexe/internal/domain"
)

// RecordWriter persists full records in the record store.
type RecordWriter interface {
	Put(ctx context.Context, rec domain.Record) error
}

// VectorIndex upserts embeddings into one domain's vector index.
type VectorIndex interface {
	Upsert(ctx context.Context, vectors []domain.IndexedVector) error
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
