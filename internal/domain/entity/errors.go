package entity

import (
	"errors"
	"fmt"
)

// Standard domain errors
var (
	// Client input
	ErrInvalidBody   = errors.New("invalid request body")
	ErrMissingPrompt = errors.New("prompt is required")
	ErrMissingEmail  = errors.New("email is required")
	ErrInvalidEmail  = errors.New("invalid email")

	// Deployment configuration
	ErrMisconfigured = errors.New("server misconfigured")

	// Collaborators
	ErrUpstreamFailure     = errors.New("upstream intent API failed")
	ErrUpstreamUnreachable = errors.New("upstream intent API unreachable")
	ErrStoreFailure        = errors.New("waitlist store rejected write")
	ErrStoreUnreachable    = errors.New("waitlist store unreachable")
)

// UpstreamError is a non-2xx answer from the intent service. Payload holds the
// decoded JSON body or, when the body is not JSON, the raw text.
type UpstreamError struct {
	Status  int
	Payload any
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream intent API returned status %d", e.Status)
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstreamFailure
}

// UnreachableError reports that the intent service call could not complete
// (refused connection, DNS failure, timeout).
type UnreachableError struct {
	Err error
}

func (e *UnreachableError) Error() string {
	if e.Err == nil {
		return ErrUpstreamUnreachable.Error()
	}
	return fmt.Sprintf("%s: %v", ErrUpstreamUnreachable, e.Err)
}

func (e *UnreachableError) Is(target error) bool {
	return target == ErrUpstreamUnreachable
}

func (e *UnreachableError) Unwrap() error {
	return e.Err
}
