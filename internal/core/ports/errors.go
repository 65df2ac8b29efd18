package ports

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is wrapped by repositories when a row does not exist so
// handlers can map it to a 404 without string matching.
var ErrNotFound = errors.New("not found")

// ErrInvalidInput is wrapped by services when a request fails validation so
// handlers can map it to a 400 without string matching.
var ErrInvalidInput = errors.New("invalid input")

// GenerationFailureKind tags the failure variants of the generation gateway
// so callers can match exhaustively instead of probing error strings.
type GenerationFailureKind string

const (
	GenerationRateLimited GenerationFailureKind = "rate_limited"
	GenerationTimeout     GenerationFailureKind = "timeout"
	GenerationMalformed   GenerationFailureKind = "malformed"
	GenerationEmpty       GenerationFailureKind = "empty"
	GenerationDuplicate   GenerationFailureKind = "duplicate"
)

// GenerationError is the tagged failure variant returned by the gateway.
// RetryAfter is only meaningful for the rate-limited kind.
type GenerationError struct {
	Kind       GenerationFailureKind
	RetryAfter time.Duration
	Err        error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation failed (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("generation failed (%s)", e.Kind)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// NewGenerationError builds a tagged generation failure.
func NewGenerationError(kind GenerationFailureKind, err error) *GenerationError {
	return &GenerationError{Kind: kind, Err: err}
}

// NewRateLimitedError builds the rate-limited variant carrying the
// caller-facing retry-after duration.
func NewRateLimitedError(retryAfter time.Duration) *GenerationError {
	return &GenerationError{Kind: GenerationRateLimited, RetryAfter: retryAfter}
}

// AsGenerationError unwraps err into a GenerationError if it is one.
func AsGenerationError(err error) (*GenerationError, bool) {
	var ge *GenerationError
	if errors.As(err, &ge) {
		return ge, true
	}
	return nil, false
}
