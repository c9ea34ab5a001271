package domain

import (
	"errors"
	"fmt"
)

// ValidationError reports bad or missing input. It is never retried and is
// surfaced verbatim to the caller.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError marks an absent record. Services that can answer with an
// empty result treat it as such rather than propagating a failure.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string { return e.Entity + " not found" }

// ConflictError marks a broken invariant in match promotion. It should not
// be observable under a correct implementation; it is logged and surfaced
// as a generic error, never retried automatically.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

// TransientError wraps a network or storage failure that is safe to retry
// a bounded number of times.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *TransientError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
