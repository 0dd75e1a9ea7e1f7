package services

import (
	"HospitalAdmin/notify"
	"HospitalAdmin/repositories"
	"context"
	"errors"

	"github.com/rs/zerolog/log"
)

// ErrNotFound is returned by Get when the entity does not exist.
var ErrNotFound = repositories.ErrNotFound

// RuleError is a business-rule failure carrying the message shown to the
// user.
type RuleError struct {
	Message string
	Err     error
}

func (e *RuleError) Error() string {
	return e.Message
}

func (e *RuleError) Unwrap() error {
	return e.Err
}

// Describe returns the user-facing message of a business-rule failure.
func Describe(err error) (string, bool) {
	var re *RuleError
	if errors.As(err, &re) {
		return re.Message, true
	}
	return "", false
}

// ReadError is a failed read. Message is the notification it raised.
type ReadError struct {
	Message string
	Err     error
}

func (e *ReadError) Error() string {
	return e.Message + ": " + e.Err.Error()
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// ReadFailure returns the notification text of a failed read.
func ReadFailure(err error) (string, bool) {
	var re *ReadError
	if errors.As(err, &re) {
		return re.Message, true
	}
	return "", false
}

type rules map[error]string

// explain wraps err in a RuleError when it matches one of the rules.
func (r rules) explain(err error) error {
	if err == nil {
		return nil
	}
	for target, message := range r {
		if errors.Is(err, target) {
			return &RuleError{Message: message, Err: err}
		}
	}
	return err
}

// listed applies the read policy of listings: a failure emits one error
// notification and yields an empty, non-nil slice. The error, a ReadError,
// is returned for logging and for callers sharing the result.
func listed[T any](ctx context.Context, n notify.Notifier, message string, rows []T, err error) ([]T, error) {
	if err != nil {
		log.Error().Err(err).Msg(message)
		if n != nil {
			n.Notify(ctx, notify.Failure(message))
		}
		return []T{}, &ReadError{Message: message, Err: err}
	}
	if rows == nil {
		rows = []T{}
	}
	return rows, nil
}

// fetched applies the read policy of single lookups: absence is reported as
// ErrNotFound without a notification, other failures notify once.
func fetched[T any](ctx context.Context, n notify.Notifier, message string, row *T, err error) (*T, error) {
	if err == nil {
		return row, nil
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrNotFound
	}
	log.Error().Err(err).Msg(message)
	if n != nil {
		n.Notify(ctx, notify.Failure(message))
	}
	return nil, &ReadError{Message: message, Err: err}
}
