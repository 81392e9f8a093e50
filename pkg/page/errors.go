// Copyright 2026 European Digital Reading Lab. All rights reserved.
// Use of this source code is governed by a BSD-style license
// specified in the Github project LICENSE file.

package page

import "errors"

// ErrorKind classifies pagination errors for the transport layer.
type ErrorKind int

const (
	// InvalidArgument: the caller sent a malformed cursor or an unparsable key value.
	InvalidArgument ErrorKind = iota
	// Internal: the storage query or the cursor serialization failed;
	// details are logged server side, not returned to the caller.
	Internal
)

// Error is the typed error returned by the pagination engine.
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// IsInvalidArgument reports whether err is a pagination error the caller can fix.
func IsInvalidArgument(err error) bool {
	var perr *Error
	return errors.As(err, &perr) && perr.Kind == InvalidArgument
}

// IsInternal reports whether err is an opaque server side pagination failure.
func IsInternal(err error) bool {
	var perr *Error
	return errors.As(err, &perr) && perr.Kind == Internal
}

func invalidArgument(message string) *Error {
	return &Error{Kind: InvalidArgument, Message: message}
}

func internalError(cause error) *Error {
	return &Error{Kind: Internal, Message: "internal error", cause: cause}
}
