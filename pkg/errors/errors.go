package errors

import (
	"errors"
	"fmt"
)

// JobNotFoundError is returned when a queried job identifier was never issued.
type JobNotFoundError struct {
	ID string
}

func NewJobNotFoundError(id string) error {
	return &JobNotFoundError{ID: id}
}

func (e *JobNotFoundError) Error() string {
	return fmt.Sprintf("job %q not found", e.ID)
}

func IsJobNotFoundError(err error) bool {
	var e *JobNotFoundError
	return errors.As(err, &e)
}

// PoolClosedError is returned when a submission is attempted after shutdown
// has begun.
type PoolClosedError struct{}

func NewPoolClosedError() error {
	return &PoolClosedError{}
}

func (e *PoolClosedError) Error() string {
	return "pool is shutting down"
}

func IsPoolClosedError(err error) bool {
	var e *PoolClosedError
	return errors.As(err, &e)
}

// PoolSaturatedError is returned when the pending queue is full or the
// admission rate is exceeded.
type PoolSaturatedError struct{}

func NewPoolSaturatedError() error {
	return &PoolSaturatedError{}
}

func (e *PoolSaturatedError) Error() string {
	return "pool saturated"
}

func IsPoolSaturatedError(err error) bool {
	var e *PoolSaturatedError
	return errors.As(err, &e)
}

// ShutdownTimeoutError is returned when the grace period elapsed with jobs
// still in flight.
type ShutdownTimeoutError struct{}

func NewShutdownTimeoutError() error {
	return &ShutdownTimeoutError{}
}

func (e *ShutdownTimeoutError) Error() string {
	return "shutdown grace period elapsed with work still in flight"
}

func IsShutdownTimeoutError(err error) bool {
	var e *ShutdownTimeoutError
	return errors.As(err, &e)
}

// ValidationError is returned when a request is missing a required field or
// carries an invalid value.
type ValidationError struct {
	Field string
	Msg   string
}

func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: field %q %s", e.Field, e.Msg)
}

func IsValidationError(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}
