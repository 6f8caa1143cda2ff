package domain

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

// ValidationError marks a malformed or incomplete request. It is surfaced to
// the caller immediately and never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// GenerationKind classifies upstream generation failures so callers can
// decide between retry and surfacing the error.
type GenerationKind string

const (
	GenerationTimeout           GenerationKind = "timeout"
	GenerationRateLimited       GenerationKind = "rate_limited"
	GenerationUpstreamMalformed GenerationKind = "upstream_malformed"
	GenerationUpstreamRefused   GenerationKind = "upstream_refused"
)

// GenerationError wraps a provider failure with its classification. The
// orchestration layer performs no automatic retry; a caller that wants
// backoff wraps the generation call itself.
type GenerationError struct {
	Kind GenerationKind
	Err  error
}

func NewGenerationError(kind GenerationKind, err error) *GenerationError {
	return &GenerationError{Kind: kind, Err: err}
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// AsValidation reports whether err is a ValidationError.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// AsGeneration reports whether err is a GenerationError.
func AsGeneration(err error) (*GenerationError, bool) {
	var ge *GenerationError
	if errors.As(err, &ge) {
		return ge, true
	}
	return nil, false
}
