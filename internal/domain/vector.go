package domain

import "encoding/json"

// IndexedVector is one entry bound for a vector index: record id, embedding,
// and the flattened metadata projection.
type IndexedVector struct {
	ID       string
	Values   []float32
	Metadata map[string]string
}

// Match is a single nearest-neighbor hit. Score is a similarity measure,
// higher is better; the range depends on the index backend.
type Match struct {
	ID       string
	Score    float64
	Metadata map[string]string
}

// Recommendation is a record hydrated from the store, merged with the score
// of its vector match. The record is kept as the stored JSON object so the
// response echoes exactly what was ingested.
type Recommendation struct {
	Record map[string]any
	Score  float64
}

// MarshalJSON flattens the record fields and the score into one object.
func (r Recommendation) MarshalJSON() ([]byte, error) {
	merged := make(map[string]any, len(r.Record)+1)
	for k, v := range r.Record {
		merged[k] = v
	}
	merged["score"] = r.Score
	return json.Marshal(merged)
}
