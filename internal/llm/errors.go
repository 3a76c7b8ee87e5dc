// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"errors"
	"fmt"
)

// Kind classifies a gateway failure. The transport layer surfaces the kind
// directly so callers never inspect error strings for status markers.
type Kind int

const (
	// KindTransport is a network or connectivity failure reaching the gateway.
	KindTransport Kind = iota

	// KindRateLimited means the gateway rejected the call for excess request
	// volume (HTTP 429). Not retried; the caller should wait.
	KindRateLimited

	// KindQuotaExhausted means the caller's capacity is spent (HTTP 402).
	// Not retried; the caller must provision more credits.
	KindQuotaExhausted

	// KindUpstream is any other non-success response from the gateway.
	KindUpstream
)

// String returns the kind's wire label.
func (k Kind) String() string {
	switch k {
	case KindRateLimited:
		return "rate_limited"
	case KindQuotaExhausted:
		return "quota_exhausted"
	case KindUpstream:
		return "upstream"
	default:
		return "transport"
	}
}

// Error is a classified gateway failure.
type Error struct {
	Kind   Kind
	Status int // HTTP status when the gateway responded, 0 otherwise
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gateway %s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("gateway %s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// classify maps a gateway HTTP status to an *Error.
func classify(status int, body string) *Error {
	switch status {
	case 429:
		return &Error{Kind: KindRateLimited, Status: status, Msg: "too many requests"}
	case 402:
		return &Error{Kind: KindQuotaExhausted, Status: status, Msg: "quota exhausted"}
	default:
		return &Error{Kind: KindUpstream, Status: status, Msg: fmt.Sprintf("HTTP %d: %s", status, body)}
	}
}

// IsRateLimited reports whether err is a rate-limit classification.
func IsRateLimited(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindRateLimited
}

// IsQuotaExhausted reports whether err is a quota classification.
func IsQuotaExhausted(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindQuotaExhausted
}
