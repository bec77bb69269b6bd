package scrape

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetry(t *testing.T) {
	t.Parallel()

	t.Run("returns first success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		got, err := retry(context.Background(), DefaultRetryDelays(), func(ctx context.Context) (string, error) {
			calls++
			return "ok", nil
		})

		require.NoError(t, err)
		assert.Equal(t, "ok", got)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries until success", func(t *testing.T) {
		t.Parallel()

		delays := []time.Duration{time.Millisecond, time.Millisecond}
		calls := 0
		got, err := retry(context.Background(), delays, func(ctx context.Context) (string, error) {
			calls++
			if calls < 3 {
				return "", errors.New("transient")
			}
			return "ok", nil
		})

		require.NoError(t, err)
		assert.Equal(t, "ok", got)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns last error when exhausted", func(t *testing.T) {
		t.Parallel()

		delays := []time.Duration{time.Millisecond}
		calls := 0
		_, err := retry(context.Background(), delays, func(ctx context.Context) (string, error) {
			calls++
			return "", errors.New("still broken")
		})

		require.Error(t, err)
		assert.EqualError(t, err, "still broken")
		assert.Equal(t, 2, calls) // 1 initial + 1 retry
	})

	t.Run("empty delays means a single attempt", func(t *testing.T) {
		t.Parallel()

		calls := 0
		_, err := retry(context.Background(), nil, func(ctx context.Context) (string, error) {
			calls++
			return "", errors.New("nope")
		})

		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("cancellation stops the wait", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		calls := 0
		_, err := retry(ctx, []time.Duration{time.Hour}, func(ctx context.Context) (string, error) {
			calls++
			return "", errors.New("transient")
		})

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}
