package domain

import (
	"errors"
	"fmt"
)

// ErrRecordNotFound signals an absent record in the record store. During
// query hydration it downgrades to a dropped match, never a failed request.
var ErrRecordNotFound = errors.New("record not found")

// Error is a classified, user-facing API error. Classification happens at the
// point of origin: an *Error already carries its HTTP status and the stable
// message/why/fix triple, and passes through every layer unchanged.
type Error struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Why     string `json:"why"`
	Fix     string `json:"fix"`

	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Message, e.Why, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Why)
}

func (e *Error) Unwrap() error { return e.cause }

// NewError creates a classified API error.
func NewError(status int, message, why, fix string) *Error {
	return &Error{Status: status, Message: message, Why: why, Fix: fix}
}

// WithCause attaches the underlying error for logging. The cause is never
// serialized to the caller.
func (e *Error) WithCause(err error) *Error {
	clone := *e
	clone.cause = err
	return &clone
}

// Unauthorized is the ingest secret mismatch error.
func Unauthorized() *Error {
	return NewError(401, "Unauthorized", "Invalid ingest secret", "Check your ingest secret")
}

// ValidationRejected classifies a request that fails schema validation.
func ValidationRejected(why string) *Error {
	return NewError(400, "Validation failed", why, "Check the request payload against the API schema")
}

// EmbeddingFailed signals that the embedding provider returned no usable
// vector for a query.
func EmbeddingFailed() *Error {
	return NewError(500, "Failed to generate embeddings",
		"Embedding provider did not return embedding data",
		"Try again later or contact support if this persists")
}

// EmbeddingFailedForItem signals an empty embedding during ingestion, naming
// the offending record.
func EmbeddingFailedForItem(id string) *Error {
	return NewError(500, "Failed to generate embeddings",
		fmt.Sprintf("Embedding provider did not return embedding data for item: %s", id),
		"Check the embedding provider status")
}

// Classify returns err unchanged when it is already a classified *Error, and
// otherwise wraps it into a generic 500 with a sanitized why/fix pair. The
// original error survives as the cause for logging.
func Classify(err error, message, fix string) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return NewError(500, message, "Unexpected error occurred", fix).WithCause(err)
}
