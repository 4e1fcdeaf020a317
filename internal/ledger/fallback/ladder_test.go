package fallback_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growvest/ledger-engine/internal/ledger/fallback"
)

func failing[T any](err error) fallback.Provider[T] {
	return func(context.Context) (T, error) {
		var zero T
		return zero, err
	}
}

func TestResolve_FirstSuccessWins(t *testing.T) {
	called := false
	v, err := fallback.Resolve(context.Background(),
		fallback.Fixed(42),
		func(context.Context) (int, error) {
			called = true
			return 0, nil
		},
	)

	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.False(t, called, "later rungs must not run once one succeeds")
}

func TestResolve_FallsThroughFailures(t *testing.T) {
	v, err := fallback.Resolve(context.Background(),
		failing[string](errors.New("live call down")),
		failing[string](errors.New("cache miss")),
		fallback.Fixed("default"),
	)

	require.NoError(t, err)
	assert.Equal(t, "default", v)
}

func TestResolve_AllFail(t *testing.T) {
	errLive := errors.New("live call down")
	errCache := errors.New("cache miss")

	v, err := fallback.Resolve(context.Background(),
		failing[int](errLive),
		failing[int](errCache),
	)

	assert.Equal(t, 0, v)
	require.Error(t, err)
	assert.ErrorIs(t, err, errLive)
	assert.ErrorIs(t, err, errCache)
}
