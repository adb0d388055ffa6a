package api

import (
	"errors"
	"fmt"
)

// Kind classifies a request failure into the categories the view layer
// cares about. Every failure surfaces as a user-visible message; Kind only
// decides which canned message applies when the server sent none.
type Kind int

const (
	// KindValidation is a client-side precondition failure. The request
	// never reached the network.
	KindValidation Kind = iota
	// KindAuth is a missing or rejected credential.
	KindAuth
	// KindNotFound is a server report of a missing entity.
	KindNotFound
	// KindConnectivity is a transport-level failure.
	KindConnectivity
	// KindServer is any other non-2xx response.
	KindServer
)

// Error is the single error type returned by the client. Message is safe
// to show to the user verbatim.
type Error struct {
	Kind    Kind
	Status  int // HTTP status, 0 when the request never completed
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

// ErrConnect is the user-visible message for transport failures, matching
// what the app has always shown.
const ErrConnect = "Failed to connect to the server."

// NewValidationError reports a precondition failure that never left the
// client.
func NewValidationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// NewAuthError reports a missing local credential.
func NewAuthError(msg string) *Error {
	return &Error{Kind: KindAuth, Message: msg}
}

func connectivityError(cause error) *Error {
	return &Error{Kind: KindConnectivity, Message: ErrConnect, cause: cause}
}

func statusError(status int, serverMsg, fallback string) *Error {
	kind := KindServer
	switch status {
	case 401, 403:
		kind = KindAuth
	case 404:
		kind = KindNotFound
	}
	msg := serverMsg
	if msg == "" {
		msg = fallback
	}
	return &Error{
		Kind:    kind,
		Status:  status,
		Message: msg,
		cause:   fmt.Errorf("backend returned status %d", status),
	}
}

// KindOf extracts the Kind from err, or KindServer if err is not an api
// error.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindServer
}

// IsAuth reports whether err is an authentication failure.
func IsAuth(err error) bool { return KindOf(err) == KindAuth }

// IsValidation reports whether err is a local precondition failure.
func IsValidation(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindValidation
}

// IsNotFound reports whether err is a missing-entity failure.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }
