// Package fallback models a degrading data source as an ordered list of
// providers tried in sequence (live call, cached value, default), so the
// fallback order is declarative and testable instead of nested conditionals.
package fallback

import (
	"context"
	"errors"
)

// Provider is one rung of a fallback ladder.
type Provider[T any] func(ctx context.Context) (T, error)

// Fixed returns a provider that always yields the given value. Used as the
// terminal rung of a ladder.
func Fixed[T any](v T) Provider[T] {
	return func(context.Context) (T, error) {
		return v, nil
	}
}

// Resolve tries each provider in order and returns the first successful
// value. When every rung fails it returns the zero value together with the
// joined errors.
func Resolve[T any](ctx context.Context, providers ...Provider[T]) (T, error) {
	var errs []error
	for _, p := range providers {
		v, err := p(ctx)
		if err == nil {
			return v, nil
		}
		errs = append(errs, err)
	}
	var zero T
	return zero, errors.Join(errs...)
}
