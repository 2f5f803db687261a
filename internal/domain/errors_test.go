package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestClassify_PassesThroughClassified(t *testing.T) {
	orig := Unauthorized()
	got := Classify(orig, "other message", "other fix")
	if got != orig {
		t.Error("classified error must pass through unchanged")
	}

	// Also through wrapping.
	wrapped := fmt.Errorf("handler: %w", orig)
	got = Classify(wrapped, "other message", "other fix")
	if got != orig {
		t.Error("wrapped classified error must pass through unchanged")
	}
}

func TestClassify_WrapsUnclassified(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.5: connection refused")
	got := Classify(cause, "Failed to generate recommendations", "Try again later")

	if got.Status != 500 {
		t.Errorf("expected status 500, got %d", got.Status)
	}
	if got.Message != "Failed to generate recommendations" {
		t.Errorf("unexpected message: %q", got.Message)
	}
	if got.Why != "Unexpected error occurred" {
		t.Errorf("expected sanitized why, got %q", got.Why)
	}
	if !errors.Is(got, cause) {
		t.Error("cause must survive for logging")
	}
}

func TestError_CauseNotSerialized(t *testing.T) {
	e := EmbeddingFailed().WithCause(errors.New("api key sk-123 rejected"))

	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "sk-123") {
		t.Errorf("cause leaked into JSON: %s", data)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, field := range []string{"status", "message", "why", "fix"} {
		if _, ok := fields[field]; !ok {
			t.Errorf("envelope missing %q", field)
		}
	}
}

func TestWithCause_DoesNotMutateOriginal(t *testing.T) {
	base := Unauthorized()
	withCause := base.WithCause(errors.New("boom"))

	if base.Unwrap() != nil {
		t.Error("WithCause must not mutate the receiver")
	}
	if withCause.Unwrap() == nil {
		t.Error("expected cause on the clone")
	}
}

func TestEmbeddingFailedForItem_NamesItem(t *testing.T) {
	e := EmbeddingFailedForItem("content-42")
	if !strings.Contains(e.Why, "content-42") {
		t.Errorf("why must name the item, got %q", e.Why)
	}
}
