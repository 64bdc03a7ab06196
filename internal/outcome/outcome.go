// Package outcome defines the failure taxonomy shared by every lookup stage.
//
// A stage returns its value and a nil error on success, or an *Error carrying
// exactly one Reason. Callers branch on the reason, never on the message.
package outcome

import (
	"errors"
	"fmt"
)

// Reason classifies why a stage failed.
type Reason int

const (
	// Unknown is never produced by a stage; ReasonOf returns it for errors
	// that did not come from this package.
	Unknown Reason = iota
	NotInServiceArea
	PermissionDenied
	AddressNotFound
	RemoteUnavailable
	TemporaryLookupFailure
	NoMatch
)

var reasonNames = map[Reason]string{
	Unknown:                "unknown",
	NotInServiceArea:       "not_in_service_area",
	PermissionDenied:       "permission_denied",
	AddressNotFound:        "address_not_found",
	RemoteUnavailable:      "remote_unavailable",
	TemporaryLookupFailure: "temporary_lookup_failure",
	NoMatch:                "no_match",
}

func (r Reason) String() string {
	if name, ok := reasonNames[r]; ok {
		return name
	}
	return fmt.Sprintf("reason(%d)", int(r))
}

// Error lets a bare Reason be matched with errors.Is.
func (r Reason) Error() string {
	return r.String()
}

// Error is a stage failure.
type Error struct {
	Reason Reason
	Op     string
	Err    error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Reason, e.Err)
}

// Unwrap exposes both the reason and the underlying cause, so
// errors.Is(err, outcome.NoMatch) and errors.Is(err, context.Canceled) both work.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Reason}
	}
	return []error{e.Reason, e.Err}
}

// Fail builds a stage failure. err may be nil.
func Fail(op string, reason Reason, err error) error {
	return &Error{Reason: reason, Op: op, Err: err}
}

// ReasonOf reports the outermost Reason carried by err.
func ReasonOf(err error) Reason {
	if err == nil {
		return Unknown
	}
	var oe *Error
	if errors.As(err, &oe) {
		return oe.Reason
	}
	var r Reason
	if errors.As(err, &r) {
		return r
	}
	return Unknown
}
