package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrValidationError(t *testing.T) {
	err := &ErrValidation{Field: "selling", Message: "must be non-negative"}
	if got, want := err.Error(), "selling: must be non-negative"; got != want {
		t.Fatalf("unexpected error string: got %q want %q", got, want)
	}
}

func TestErrNotFound(t *testing.T) {
	err := &ErrNotFound{Entity: "product", Key: "model-1/14/2"}
	if got, want := err.Error(), "product not found: model-1/14/2"; got != want {
		t.Fatalf("unexpected error string: got %q want %q", got, want)
	}
	wrapped := fmt.Errorf("lookup: %w", err)
	if !IsNotFound(wrapped) {
		t.Fatal("IsNotFound should see through wrapping")
	}
	if IsNotFound(errors.New("plain")) {
		t.Fatal("IsNotFound matched a plain error")
	}
}

func TestSentinelsAreDistinct(t *testing.T) {
	if errors.Is(ErrMissingLength, ErrInvalidPrice) {
		t.Fatal("sentinels must not alias")
	}
	if !errors.Is(fmt.Errorf("fetch: %w", ErrInvalidFeedResponse), ErrInvalidFeedResponse) {
		t.Fatal("wrapped sentinel not matched")
	}
}
