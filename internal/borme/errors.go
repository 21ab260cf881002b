package borme

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies client failures so callers can decide whether a
// retry at a higher level makes sense.
type ErrorKind string

const (
	ErrNetwork   ErrorKind = "network"
	ErrAuth      ErrorKind = "auth"
	ErrNotFound  ErrorKind = "not_found"
	ErrRateLimit ErrorKind = "rate_limit"
	ErrServer    ErrorKind = "server"
	ErrUnknown   ErrorKind = "unknown"
)

// APIError is the error type returned by the client for failed requests.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	URL        string
	Message    string
	// Recoverable marks failures worth retrying later (network blips,
	// rate limits, server errors). Auth and not-found are terminal.
	Recoverable bool
	Err         error
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("registry api: %s (%d) %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("registry api: %s: %s", e.Kind, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// KindOf extracts the error kind from any error chain.
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ErrUnknown
}

// IsRecoverable reports whether a retry later could succeed.
func IsRecoverable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Recoverable
	}
	return false
}

func classifyStatus(code int, url string) *APIError {
	e := &APIError{StatusCode: code, URL: url}
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		e.Kind = ErrAuth
		e.Message = "authentication rejected"
	case code == http.StatusNotFound:
		e.Kind = ErrNotFound
		e.Message = "resource not found"
	case code == http.StatusTooManyRequests:
		e.Kind = ErrRateLimit
		e.Message = "rate limited"
		e.Recoverable = true
	case code >= 500:
		e.Kind = ErrServer
		e.Message = "server error"
		e.Recoverable = true
	default:
		e.Kind = ErrUnknown
		e.Message = fmt.Sprintf("unexpected status %d", code)
	}
	return e
}

func networkError(url string, err error) *APIError {
	return &APIError{
		Kind:        ErrNetwork,
		URL:         url,
		Message:     err.Error(),
		Recoverable: true,
		Err:         err,
	}
}
