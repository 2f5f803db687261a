package recommend

import (
	"context"

	"github.com/connexe-cloud/connexe/internal/domain"
)

// VectorSearcher queries one domain's vector index.
type VectorSearcher interface {
	Query(ctx context.Context, vec []float32, topK int, lang string) ([]domain.Match, error)
}

// RecordReader fetches stored record JSON for hydration.
type RecordReader interface {
	GetRaw(ctx context.Context, dom domain.Domain, id string) ([]byte, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
