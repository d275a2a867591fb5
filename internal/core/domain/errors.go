package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies static map failures.
type ErrorKind int

const (
	// KindMissingParameter is a caller error (lat or lon absent).
	KindMissingParameter ErrorKind = iota + 1
	// KindMisconfigured means the primary credential is not configured.
	KindMisconfigured
	// KindProvider means both providers failed.
	KindProvider
	// KindUnexpected covers any other fault.
	KindUnexpected
)

func (k ErrorKind) String() string {
	switch k {
	case KindMissingParameter:
		return "missing_parameter"
	case KindMisconfigured:
		return "misconfigured"
	case KindProvider:
		return "provider_error"
	case KindUnexpected:
		return "unexpected"
	default:
		return "unknown"
	}
}

// MapError is the error returned by the static map service. Message is safe
// to show to callers; Detail carries the primary provider's raw error text for
// KindProvider.
type MapError struct {
	Kind    ErrorKind
	Message string
	Detail  string
	Err     error
}

func (e *MapError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *MapError) Unwrap() error { return e.Err }

// NewMissingCoordinates returns the error for a request without lat or lon.
func NewMissingCoordinates() *MapError {
	return &MapError{Kind: KindMissingParameter, Message: "lat and lon required"}
}

// NewMisconfigured returns the error for a provider with no credential.
func NewMisconfigured(provider string) *MapError {
	return &MapError{Kind: KindMisconfigured, Message: provider + " token not configured on the server"}
}

// NewProviderError returns the error for a request both providers rejected.
func NewProviderError(provider, detail string, err error) *MapError {
	return &MapError{Kind: KindProvider, Message: provider + " fetch failed", Detail: detail, Err: err}
}

// NewUnexpected wraps any fault outside the designed failure paths.
func NewUnexpected(err error) *MapError {
	return &MapError{Kind: KindUnexpected, Message: "unexpected", Err: err}
}

// KindOf returns the kind of err, or KindUnexpected for foreign errors.
func KindOf(err error) ErrorKind {
	var me *MapError
	if errors.As(err, &me) {
		return me.Kind
	}
	return KindUnexpected
}

// UpstreamError is a non-success HTTP status from a map provider. Body holds
// the provider's response text verbatim.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s responded %d", e.Provider, e.StatusCode)
}

// ErrImageNotFound is returned when a gallery image file cannot be located.
var ErrImageNotFound = errors.New("image not found")
