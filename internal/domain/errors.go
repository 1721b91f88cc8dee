package domain

import (
	"errors"
	"fmt"
	"time"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

// NoCapacityError reports a seat reservation attempt on a full trip.
type NoCapacityError struct {
	TripID string
}

func (e NoCapacityError) Error() string {
	return fmt.Sprintf("trip %s has no available seats", e.TripID)
}

// DuplicateBookingError reports a second active booking for the same
// student on the same trip.
type DuplicateBookingError struct {
	StudentID string
	TripID    string
}

func (e DuplicateBookingError) Error() string {
	return fmt.Sprintf("student %s already holds a booking for trip %s", e.StudentID, e.TripID)
}

// InvalidStateError reports a booking transition the state machine forbids.
type InvalidStateError struct {
	BookingID string
	From      string
}

func (e InvalidStateError) Error() string {
	if e.From == "" {
		return fmt.Sprintf("booking %s is in a terminal state", e.BookingID)
	}
	return fmt.Sprintf("booking %s cannot leave state %s", e.BookingID, e.From)
}

// TripClosedError reports a booking attempt on a departed or past trip.
type TripClosedError struct {
	TripID string
}

func (e TripClosedError) Error() string {
	return fmt.Sprintf("trip %s is closed for booking", e.TripID)
}

// LockTimeoutError is transient: the per-trip critical section could not
// be entered within the wait budget. Callers may retry the same operation.
type LockTimeoutError struct {
	Key  string
	Wait time.Duration
}

func (e LockTimeoutError) Error() string {
	return fmt.Sprintf("timed out after %s waiting for lock on %s", e.Wait, e.Key)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}

func IsNoCapacity(err error) bool {
	var target NoCapacityError
	return errors.As(err, &target)
}

func IsDuplicateBooking(err error) bool {
	var target DuplicateBookingError
	return errors.As(err, &target)
}

func IsInvalidState(err error) bool {
	var target InvalidStateError
	return errors.As(err, &target)
}

func IsTripClosed(err error) bool {
	var target TripClosedError
	return errors.As(err, &target)
}

func IsLockTimeout(err error) bool {
	var target LockTimeoutError
	return errors.As(err, &target)
}
