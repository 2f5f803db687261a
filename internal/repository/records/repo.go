// Package records persists the full, authoritative form of each ingested
// entity as JSON under "<domain>:<id>".
package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/connexe-cloud/connexe/internal/db"
	"github.com/connexe-cloud/connexe/internal/domain"
)

// store is the consumer interface for the record store (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Repo implements the record store over a key-value backend.
// Writes are last-write-wins; records are never deleted.
type Repo struct {
	store store
}

// New creates a record repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Put writes the full record as JSON under its domain-prefixed key.
func (r *Repo) Put(ctx context.Context, rec domain.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record %s: %w", rec.RecordID(), err)
	}

	key := Key(rec.RecordDomain(), rec.RecordID())
	if err := r.store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// GetRaw returns the stored JSON for a record, or domain.ErrRecordNotFound.
func (r *Repo) GetRaw(ctx context.Context, dom domain.Domain, id string) ([]byte, error) {
	key := Key(dom, id)
	data, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return data, nil
}

// Key builds the record store key. The domain prefix keeps the two entity
// namespaces disjoint even when ids collide across domains.
func Key(dom domain.Domain, id string) string {
	return string(dom) + ":" + id
}
