package workflow

import (
	"HospitalAdmin/notify"
	"context"

	"github.com/rs/zerolog/log"
)

// Effects are what follows a mutation: listings to refetch and the
// notification to show.
type Effects struct {
	Refetch  []string
	Cache    Invalidator
	Notifier notify.Notifier
	Describe func(err error) (string, bool)
}

func (e Effects) succeed(ctx context.Context, message string) {
	if e.Cache != nil {
		for _, entity := range e.Refetch {
			if err := e.Cache.Invalidate(ctx, entity); err != nil {
				log.Warn().Err(err).Str("entity", entity).Msg("failed to refetch listing")
			}
		}
	}
	if e.Notifier != nil && message != "" {
		e.Notifier.Notify(ctx, notify.Success(message))
	}
}

func (e Effects) fail(ctx context.Context, err error, generic string) {
	message := generic
	if e.Describe != nil {
		if specific, ok := e.Describe(err); ok {
			message = specific
		}
	}
	log.Warn().Err(err).Msg(message)
	if e.Notifier != nil {
		e.Notifier.Notify(ctx, notify.Failure(message))
	}
}

// Perform runs a mutation that has no form, such as a discharge, with the
// refetch and notification behavior of a dialog submit.
func Perform[T any](ctx context.Context, e Effects, done, failed string, fn func(ctx context.Context) (*T, error)) (*T, error) {
	result, err := fn(ctx)
	if err != nil {
		e.fail(ctx, err, failed)
		return nil, err
	}
	e.succeed(ctx, done)
	return result, nil
}
