package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), Policy{MaxAttempts: 3}, func(context.Context) (string, error) {
		calls++
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesUpToMaxAttempts(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), Policy{MaxAttempts: 3, Delay: time.Millisecond}, func(context.Context) (int, error) {
		calls++
		return 0, errors.New("boom")
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_RecoversAfterFailure(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), Policy{MaxAttempts: 3, Delay: time.Millisecond}, func(context.Context) (int, error) {
		calls++
		if calls < 2 {
			return 0, errors.New("transient")
		}
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 2, calls)
}

func TestDo_StopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := Do(ctx, Policy{MaxAttempts: 5, Delay: time.Minute}, func(context.Context) (int, error) {
		calls++
		return 0, errors.New("boom")
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestDoWithFallback_ReturnsFallbackOnExhaustion(t *testing.T) {
	got, err := DoWithFallback(context.Background(), Policy{MaxAttempts: 2, Delay: time.Millisecond}, "placeholder",
		func(context.Context) (string, error) {
			return "", errors.New("boom")
		})

	require.Error(t, err)
	assert.Equal(t, "placeholder", got)
}

func TestDoWithFallback_PrefersSuccessValue(t *testing.T) {
	got, err := DoWithFallback(context.Background(), Policy{MaxAttempts: 2}, "placeholder",
		func(context.Context) (string, error) {
			return "real", nil
		})

	require.NoError(t, err)
	assert.Equal(t, "real", got)
}
