package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/connexe-cloud/connexe/internal/domain"
)

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError renders any error as the stable envelope
// {status, message, why, fix}. Unclassified errors become a sanitized 500.
func writeError(w http.ResponseWriter, err error) {
	apiErr := domain.Classify(err, "Internal server error", "Try again later")
	writeJSON(w, apiErr.Status, apiErr)
}
