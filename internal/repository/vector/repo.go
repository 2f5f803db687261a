// Package vector manages the per-domain FT vector indexes: one fixed
// HNSW/COSINE index per entity domain, over hash-stored vectors.
package vector

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/connexe-cloud/connexe/internal/db"
	"github.com/connexe-cloud/connexe/internal/domain"
)

const vectorField = "__vector"

// store is the consumer interface for the vector index (ISP).
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// HNSWConfig carries HNSW build parameters from configuration.
type HNSWConfig struct {
	M           int
	EFConstruct int
}

// Index is the vector index for one entity domain.
type Index struct {
	store  store
	domain domain.Domain
	dim    int
	hnsw   HNSWConfig
}

// New creates a vector index repository for the given domain.
func New(s store, dom domain.Domain, dim int) *Index {
	return &Index{store: s, domain: dom, dim: dim}
}

// WithHNSW overrides HNSW build parameters.
func (x *Index) WithHNSW(cfg HNSWConfig) *Index {
	x.hnsw = cfg
	return x
}

// Name returns the FT index name for this domain.
func (x *Index) Name() string {
	return "idx:" + string(x.domain)
}

// keyPrefix is the hash key prefix the index is built over. Disjoint from the
// record store namespace ("<domain>:<id>").
func (x *Index) keyPrefix() string {
	return "vec:" + string(x.domain) + ":"
}

// EnsureIndex creates the FT index if it does not exist yet.
func (x *Index) EnsureIndex(ctx context.Context) error {
	exists, err := x.store.IndexExists(ctx, x.Name())
	if err != nil {
		return fmt.Errorf("probe index %s: %w", x.Name(), err)
	}
	if exists {
		return nil
	}

	def := x.buildDefinition()
	if err := def.Validate(); err != nil {
		return fmt.Errorf("index definition %s: %w", x.Name(), err)
	}
	if err := x.store.CreateIndex(ctx, def); err != nil {
		return fmt.Errorf("create index %s: %w", x.Name(), err)
	}
	return nil
}

func (x *Index) buildDefinition() *db.IndexDefinition {
	// Only filterable fields enter the schema; the rest of the metadata
	// lives in the hash and is fetched via RETURN.
	fields := []db.IndexField{
		{Name: "lang", Type: db.IndexFieldTag},
	}
	if x.domain == domain.DomainDeveloper {
		fields = append(fields, db.IndexField{Name: "type", Type: db.IndexFieldTag})
	}

	fields = append(fields, db.IndexField{
		Name:              vectorField,
		Alias:             "vector",
		Type:              db.IndexFieldVector,
		VectorAlgo:        db.VectorHNSW,
		VectorDim:         x.dim,
		VectorDistance:    db.DistanceCosine,
		VectorM:           x.hnsw.M,
		VectorEFConstruct: x.hnsw.EFConstruct,
	})

	return &db.IndexDefinition{
		Name:        x.Name(),
		StorageType: db.StorageHash,
		Prefixes:    []string{x.keyPrefix()},
		Fields:      fields,
	}
}

// Upsert writes all vectors in a single pipelined call: one hash per vector,
// binary FLOAT32 values plus the flattened metadata projection.
func (x *Index) Upsert(ctx context.Context, vectors []domain.IndexedVector) error {
	if len(vectors) == 0 {
		return nil
	}

	items := make([]db.HashSetItem, len(vectors))
	for i, v := range vectors {
		fields := make(map[string]string, len(v.Metadata)+1)
		for k, val := range v.Metadata {
			fields[k] = val
		}
		fields[vectorField] = vectorToBytes(v.Values)

		items[i] = db.HashSetItem{
			Key:    x.keyPrefix() + v.ID,
			Fields: fields,
		}
	}

	if err := x.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("upsert %d vectors into %s: %w", len(vectors), x.Name(), err)
	}
	return nil
}

// Query runs a KNN search filtered by language and returns rank-ordered
// matches with their metadata. Vector blobs are never returned.
func (x *Index) Query(ctx context.Context, vec []float32, topK int, lang string) ([]domain.Match, error) {
	q := &db.KNNQuery{
		IndexName:    x.Name(),
		Vector:       vec,
		K:            topK,
		Tags:         map[string]string{"lang": lang},
		ReturnFields: domain.MetadataFields(x.domain),
	}

	res, err := x.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("knn query %s: %w", x.Name(), err)
	}

	matches := make([]domain.Match, 0, len(res.Entries))
	for _, entry := range res.Entries {
		matches = append(matches, domain.Match{
			ID:       strings.TrimPrefix(entry.Key, x.keyPrefix()),
			Score:    entry.Score,
			Metadata: entry.Fields,
		})
	}
	return matches, nil
}

func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
