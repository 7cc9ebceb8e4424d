// Package errors provides typed error values for the Serene API client.
//
// The transport layer converts every failure into one of four kinds so the
// widget can react on structure rather than on error wording. ClassifyText
// maps server-supplied error strings onto the same kinds at the transport
// boundary.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the coarse classification the widget reacts to.
type Kind int

const (
	// KindUnknown covers everything the other kinds don't.
	KindUnknown Kind = iota
	// KindAuth is terminal: never retried.
	KindAuth
	// KindRateLimit is retryable with a fixed delay.
	KindRateLimit
	// KindNetwork covers transport failures and non-2xx statuses without a
	// usable error body.
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindRateLimit:
		return "rate_limit"
	case KindNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// Sentinel errors for common cases
var (
	ErrAuthRequired = errors.New("authentication required")
	ErrRateLimited  = errors.New("rate limit exceeded")
	ErrNetwork      = errors.New("network response was not ok")
)

// AuthError represents an authentication failure.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "authentication failed: check your credentials"
	}
	return fmt.Sprintf("authentication failed: %s", e.Message)
}

// Is allows comparison with the ErrAuthRequired sentinel.
func (e *AuthError) Is(target error) bool {
	if target == ErrAuthRequired {
		return true
	}
	_, ok := target.(*AuthError)
	return ok
}

// NewAuthError creates a new AuthError.
func NewAuthError(message string) *AuthError {
	return &AuthError{Message: message}
}

// RateLimitError represents a rate-limit rejection from the server.
type RateLimitError struct {
	Message string
}

func (e *RateLimitError) Error() string {
	if e.Message == "" {
		return "rate limit exceeded"
	}
	return fmt.Sprintf("rate limit exceeded: %s", e.Message)
}

// Is allows comparison with the ErrRateLimited sentinel.
func (e *RateLimitError) Is(target error) bool {
	if target == ErrRateLimited {
		return true
	}
	_, ok := target.(*RateLimitError)
	return ok
}

// NewRateLimitError creates a new RateLimitError.
func NewRateLimitError(message string) *RateLimitError {
	return &RateLimitError{Message: message}
}

// NetworkError represents a transport failure or an unusable response.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("network error during %s", e.Op)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Is allows comparison with the ErrNetwork sentinel.
func (e *NetworkError) Is(target error) bool {
	if target == ErrNetwork {
		return true
	}
	_, ok := target.(*NetworkError)
	return ok
}

// NewNetworkError creates a new NetworkError.
func NewNetworkError(op string, err error) *NetworkError {
	return &NetworkError{Op: op, Err: err}
}

// APIError represents a server rejection that is neither auth, rate limit,
// nor network flavored.
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("API error [%d] at %s: %s", e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("API error at %s: %s", e.Endpoint, e.Message)
}

// NewAPIError creates a new APIError.
func NewAPIError(statusCode int, endpoint, message string) *APIError {
	return &APIError{StatusCode: statusCode, Endpoint: endpoint, Message: message}
}

// KindOf reports the Kind of err by walking the error chain.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrAuthRequired):
		return KindAuth
	case errors.Is(err, ErrRateLimited):
		return KindRateLimit
	case errors.Is(err, ErrNetwork):
		return KindNetwork
	default:
		return KindUnknown
	}
}

// IsAuthError reports whether err is terminal-auth flavored.
func IsAuthError(err error) bool {
	return KindOf(err) == KindAuth
}

// IsRetryable reports whether err may be retried.
func IsRetryable(err error) bool {
	return KindOf(err) == KindRateLimit
}

// ClassifyText maps an error description onto a Kind using ordered,
// case-insensitive substring checks. First match wins:
//
//  1. "api key" or "authentication" -> KindAuth
//  2. "rate limit"                  -> KindRateLimit
//  3. "network" or "connection"    -> KindNetwork
//  4. anything else                 -> KindUnknown
func ClassifyText(text string) Kind {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "api key") || strings.Contains(t, "authentication"):
		return KindAuth
	case strings.Contains(t, "rate limit"):
		return KindRateLimit
	case strings.Contains(t, "network") || strings.Contains(t, "connection"):
		return KindNetwork
	default:
		return KindUnknown
	}
}

// FromText converts a server-supplied error string into the matching typed
// error. statusCode and endpoint are kept for the unknown case.
func FromText(statusCode int, endpoint, text string) error {
	switch ClassifyText(text) {
	case KindAuth:
		return NewAuthError(text)
	case KindRateLimit:
		return NewRateLimitError(text)
	case KindNetwork:
		return NewNetworkError(endpoint, errors.New(text))
	default:
		return NewAPIError(statusCode, endpoint, text)
	}
}
