// Package provider wraps the external data sources (routing, weather,
// places, translation, chat) behind narrow clients with a uniform error
// taxonomy, per-call timeouts, and retry for transient failures.
package provider

import (
	"errors"
	"fmt"
)

// Kind classifies a provider failure.
type Kind string

const (
	// KindTimeout means the call exceeded its deadline or was cancelled.
	// Not retried.
	KindTimeout Kind = "timeout"
	// KindRejected means the provider refused the request (4xx, malformed
	// payload, missing credentials). Not retried.
	KindRejected Kind = "rejected"
	// KindTransient means a failure that may succeed on retry (5xx,
	// connection reset).
	KindTransient Kind = "transient"
)

// Error is a classified provider failure.
type Error struct {
	Kind     Kind
	Provider string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s provider: %s: %v", e.Provider, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, name string, err error) *Error {
	return &Error{Kind: kind, Provider: name, Err: err}
}

func kindOf(err error) (Kind, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return "", false
}

// IsTimeout reports whether err is a provider timeout.
func IsTimeout(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindTimeout
}

// IsRejected reports whether err is a provider rejection.
func IsRejected(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindRejected
}

// IsTransient reports whether err is a transient provider failure.
func IsTransient(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindTransient
}
