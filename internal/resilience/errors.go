// Package resilience classifies outbound-call failures so the search
// cascade can consume typed results instead of propagating exceptions
// across layers.
package resilience

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"syscall"
)

// FailureKind qualifies why a search backend call failed. Every kind is
// non-distinguishing for failover purposes: any of them marks the backend
// dead for the remainder of the cascade call.
type FailureKind string

const (
	FailTimeout   FailureKind = "timeout"
	FailNetwork   FailureKind = "network"
	FailRateLimit FailureKind = "rate_limit"
	FailAuth      FailureKind = "auth"
	FailBlocked   FailureKind = "blocked"
	FailMalformed FailureKind = "malformed"
)

// BackendError is a qualified search backend failure.
type BackendError struct {
	Backend string
	Kind    FailureKind
	Err     error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Backend, e.Kind, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// NewBackendError wraps err as a qualified backend failure.
func NewBackendError(backend string, kind FailureKind, err error) *BackendError {
	return &BackendError{Backend: backend, Kind: kind, Err: err}
}

// ClassifyHTTPStatus maps an HTTP status code from a search API to a
// failure kind. Empty string means the status is not a backend failure.
func ClassifyHTTPStatus(status int) FailureKind {
	switch status {
	case http.StatusTooManyRequests, http.StatusPaymentRequired:
		return FailRateLimit
	case http.StatusUnauthorized, http.StatusForbidden:
		return FailAuth
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return FailTimeout
	default:
		if status >= 500 {
			return FailNetwork
		}
		return ""
	}
}

// ClassifyNetErr maps a transport-level error to a failure kind.
func ClassifyNetErr(err error) FailureKind {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return FailTimeout
	}
	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNABORTED) {
		return FailNetwork
	}
	msg := strings.ToLower(err.Error())
	for _, p := range []string{
		"i/o timeout",
		"tls handshake timeout",
		"context deadline exceeded",
	} {
		if strings.Contains(msg, p) {
			return FailTimeout
		}
	}
	return FailNetwork
}

// MailboxAuthError signals missing or expired mailbox credentials. It is
// fatal and carries setup instructions for the operator.
type MailboxAuthError struct {
	Reason string
}

func (e *MailboxAuthError) Error() string {
	return "mailbox auth: " + e.Reason
}

// NewMailboxAuthError creates a fatal mailbox credential error.
func NewMailboxAuthError(reason string) *MailboxAuthError {
	return &MailboxAuthError{Reason: reason}
}
