package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTemporary = errors.New("temporary")

func fastConfig(attempts uint) *RetryConfig {
	return &RetryConfig{Attempts: attempts, Delay: time.Millisecond, MaxDelay: 5 * time.Millisecond}
}

func TestDoRetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(3), func(error) bool { return true }, func() error {
		calls++
		if calls < 3 {
			return errTemporary
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoStopsOnNonRetryable(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(5), func(error) bool { return false }, func() error {
		calls++
		return errTemporary
	})

	require.ErrorIs(t, err, errTemporary)
	assert.Equal(t, 1, calls)
}

func TestDoReturnsLastError(t *testing.T) {
	err := Do(context.Background(), fastConfig(2), func(error) bool { return true }, func() error {
		return errTemporary
	})

	require.ErrorIs(t, err, errTemporary)
}
