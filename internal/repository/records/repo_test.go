package records

import (
	"context"
	"errors"
	"testing"

	"github.com/connexe-cloud/connexe/internal/db"
	"github.com/connexe-cloud/connexe/internal/domain"
)

type mockStore struct {
	getFn   func(ctx context.Context, key string) ([]byte, error)
	setFn   func(ctx context.Context, key string, value []byte) error
	lastKey string
	lastVal []byte
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.lastKey = key
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) Set(ctx context.Context, key string, value []byte) error {
	m.lastKey = key
	m.lastVal = value
	if m.setFn != nil {
		return m.setFn(ctx, key, value)
	}
	return nil
}

func TestKey(t *testing.T) {
	if got := Key(domain.DomainContent, "c1"); got != "content:c1" {
		t.Errorf("got %q", got)
	}
	if got := Key(domain.DomainDeveloper, "d1"); got != "developer:d1" {
		t.Errorf("got %q", got)
	}
}

func TestPut_WritesJSONUnderDomainKey(t *testing.T) {
	store := &mockStore{}
	repo := New(store)

	item := &domain.ContentItem{
		ID:     "c1",
		Title:  "Vue Tips",
		Author: "alex",
		URL:    "https://example.com/vue",
		Lang:   "en",
	}

	if err := repo.Put(context.Background(), item); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.lastKey != "content:c1" {
		t.Errorf("unexpected key: %q", store.lastKey)
	}
	if len(store.lastVal) == 0 || store.lastVal[0] != '{' {
		t.Errorf("expected JSON object, got %s", store.lastVal)
	}
}

func TestGetRaw_MapsNotFound(t *testing.T) {
	repo := New(&mockStore{})

	_, err := repo.GetRaw(context.Background(), domain.DomainContent, "missing")
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestGetRaw_PassesThroughOtherErrors(t *testing.T) {
	store := &mockStore{
		getFn: func(context.Context, string) ([]byte, error) {
			return nil, errors.New("connection reset")
		},
	}
	repo := New(store)

	_, err := repo.GetRaw(context.Background(), domain.DomainContent, "c1")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, domain.ErrRecordNotFound) {
		t.Error("transport error must not map to not-found")
	}
}

func TestGetRaw_Success(t *testing.T) {
	store := &mockStore{
		getFn: func(_ context.Context, key string) ([]byte, error) {
			if key != "developer:d1" {
				t.Errorf("unexpected key: %q", key)
			}
			return []byte(`{"id":"d1"}`), nil
		},
	}
	repo := New(store)

	data, err := repo.GetRaw(context.Background(), domain.DomainDeveloper, "d1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `{"id":"d1"}` {
		t.Errorf("unexpected data: %s", data)
	}
}
