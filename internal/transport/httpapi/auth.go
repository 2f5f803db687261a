package httpapi

import (
	"crypto/subtle"
	"net/http"

	"github.com/connexe-cloud/connexe/internal/domain"
)

// IngestSecretHeader carries the shared secret on ingestion requests.
const IngestSecretHeader = "x-connexe-ingest-secret"

// IngestSecretMiddleware gates ingestion routes on the shared secret. The
// comparison is constant-time; a mismatch rejects the request before any
// body parsing or pipeline work.
func IngestSecretMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := r.Header.Get(IngestSecretHeader)
			if subtle.ConstantTimeCompare([]byte(presented), []byte(secret)) != 1 {
				writeError(w, domain.Unauthorized())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
