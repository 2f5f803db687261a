package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/connexe-cloud/connexe/internal/domain"
	"github.com/connexe-cloud/connexe/internal/usecase/recommend"
)

const testSecret = "test-secret"

type mockIngester struct {
	ingestFn    func(ctx context.Context, dom domain.Domain, items []domain.Record) (int, error)
	ingestCalls int
	lastDomain  domain.Domain
	lastItems   []domain.Record
}

func (m *mockIngester) Ingest(ctx context.Context, dom domain.Domain, items []domain.Record) (int, error) {
	m.ingestCalls++
	m.lastDomain = dom
	m.lastItems = items
	if m.ingestFn != nil {
		return m.ingestFn(ctx, dom, items)
	}
	return len(items), nil
}

type mockRecommender struct {
	recommendFn    func(ctx context.Context, dom domain.Domain, q recommend.Query) ([]domain.Recommendation, error)
	recommendCalls int
	lastDomain     domain.Domain
	lastQuery      recommend.Query
}

func (m *mockRecommender) Recommend(ctx context.Context, dom domain.Domain, q recommend.Query) ([]domain.Recommendation, error) {
	m.recommendCalls++
	m.lastDomain = dom
	m.lastQuery = q
	if m.recommendFn != nil {
		return m.recommendFn(ctx, dom, q)
	}
	return []domain.Recommendation{}, nil
}

type mockPinger struct {
	pingFn func(ctx context.Context) error
}

func (m *mockPinger) Ping(ctx context.Context) error {
	if m.pingFn != nil {
		return m.pingFn(ctx)
	}
	return nil
}

type mockHealthChecker struct {
	checkFn func(ctx context.Context) error
}

func (m *mockHealthChecker) HealthCheck(ctx context.Context) error {
	if m.checkFn != nil {
		return m.checkFn(ctx)
	}
	return nil
}

func newTestRouter(ing *mockIngester, rec *mockRecommender, ping *mockPinger) http.Handler {
	return newTestRouterWithHealth(ing, rec, ping, nil)
}

func newTestRouterWithHealth(ing *mockIngester, rec *mockRecommender, ping *mockPinger, health HealthChecker) http.Handler {
	if ing == nil {
		ing = &mockIngester{}
	}
	if rec == nil {
		rec = &mockRecommender{}
	}
	if ping == nil {
		ping = &mockPinger{}
	}
	srv := NewServer(ing, rec, ping, health, testSecret, zap.NewNop())
	r := chi.NewRouter()
	srv.Routes(r)
	return r
}

func doRequest(t *testing.T, h http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func withSecret() map[string]string {
	return map[string]string{IngestSecretHeader: testSecret}
}
