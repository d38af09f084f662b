// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

package hubapi

import (
	"errors"
	"net/http"
)

// UnknownErrorMessage is shown when a failure carries no server message.
const UnknownErrorMessage = "An unknown error occurred"

// Error is the single error type returned by every hub request. Callers show
// Message and must not branch on the cause.
type Error struct {
	// Status is the HTTP status code, or 0 when no response was received.
	Status int
	// Message is the user-facing text, already prefixed.
	Message string
	// Err is the underlying transport or decode failure, if any.
	Err error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// newError builds the user-facing error for a failed request. serverMsg is
// the response body, if any.
func newError(status int, serverMsg string, cause error) *Error {
	msg := UnknownErrorMessage
	if serverMsg != "" {
		msg = "An error occurred: " + serverMsg
	}
	return &Error{Status: status, Message: msg, Err: cause}
}

// IsUnauthorized reports whether err is a hub rejection of the session.
func IsUnauthorized(err error) bool {
	var he *Error
	return errors.As(err, &he) && he.Status == http.StatusUnauthorized
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var he *Error
	if errors.As(err, &he) {
		return he.Status
	}
	return 0
}
