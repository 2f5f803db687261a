package recommend

import (
	"context"

	"github.com/connexe-cloud/connexe/internal/domain"
)

type mockSearcher struct {
	queryFn    func(ctx context.Context, vec []float32, topK int, lang string) ([]domain.Match, error)
	queryCalls int
	lastTopK   int
	lastLang   string
}

func (m *mockSearcher) Query(ctx context.Context, vec []float32, topK int, lang string) ([]domain.Match, error) {
	m.queryCalls++
	m.lastTopK = topK
	m.lastLang = lang
	if m.queryFn != nil {
		return m.queryFn(ctx, vec, topK, lang)
	}
	return nil, nil
}

type mockReader struct {
	getFn    func(ctx context.Context, dom domain.Domain, id string) ([]byte, error)
	getCalls int
}

func (m *mockReader) GetRaw(ctx context.Context, dom domain.Domain, id string) ([]byte, error) {
	m.getCalls++
	if m.getFn != nil {
		return m.getFn(ctx, dom, id)
	}
	return nil, domain.ErrRecordNotFound
}

type mockEmbedder struct {
	embedFn    func(ctx context.Context, text string) (domain.EmbeddingResult, error)
	embedCalls int
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	m.embedCalls++
	if m.embedFn != nil {
		return m.embedFn(ctx, text)
	}
	return domain.EmbeddingResult{Embedding: []float32{0.1, 0.2}}, nil
}
