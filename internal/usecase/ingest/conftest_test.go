package ingest

import (
	"context"

	"github.com/connexe-cloud/connexe/internal/domain"
)

type mockRecordWriter struct {
	putFn    func(ctx context.Context, rec domain.Record) error
	putCalls []string
}

func (m *mockRecordWriter) Put(ctx context.Context, rec domain.Record) error {
	m.putCalls = append(m.putCalls, rec.RecordID())
	if m.putFn != nil {
		return m.putFn(ctx, rec)
	}
	return nil
}

type mockVectorIndex struct {
	upsertFn    func(ctx context.Context, vectors []domain.IndexedVector) error
	upsertCalls [][]domain.IndexedVector
}

func (m *mockVectorIndex) Upsert(ctx context.Context, vectors []domain.IndexedVector) error {
	m.upsertCalls = append(m.upsertCalls, vectors)
	if m.upsertFn != nil {
		return m.upsertFn(ctx, vectors)
	}
	return nil
}

type mockEmbedder struct {
	embedFn    func(ctx context.Context, text string) (domain.EmbeddingResult, error)
	embedCalls []string
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	m.embedCalls = append(m.embedCalls, text)
	if m.embedFn != nil {
		return m.embedFn(ctx, text)
	}
	return domain.EmbeddingResult{Embedding: []float32{0.1, 0.2, 0.3}}, nil
}

func contentItem(id, title string, tags ...string) *domain.ContentItem {
	return &domain.ContentItem{
		ID:     id,
		Title:  title,
		Author: "author",
		URL:    "https://example.com/" + id,
		Tags:   tags,
		Lang:   "en",
	}
}
