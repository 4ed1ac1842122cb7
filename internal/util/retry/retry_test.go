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
	t.Parallel()
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesTransientErrors(t *testing.T) {
	t.Parallel()
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	}, Attempts(5), InitialDelay(time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	t.Parallel()
	calls := 0
	sentinel := errors.New("still broken")
	err := Do(context.Background(), func() error {
		calls++
		return sentinel
	}, Attempts(3), InitialDelay(time.Millisecond))
	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.ErrorIs(t, err, sentinel)
	assert.Contains(t, err.Error(), "giving up after 3 attempts")
}

func TestDo_PermanentStopsImmediately(t *testing.T) {
	t.Parallel()
	calls := 0
	sentinel := errors.New("bad input")
	err := Do(context.Background(), func() error {
		calls++
		return Permanent(sentinel)
	}, Attempts(5), InitialDelay(time.Millisecond))
	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, sentinel)
}

func TestDo_ContextCancellation(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Do(ctx, func() error {
		return errors.New("transient")
	}, Attempts(5), InitialDelay(time.Hour))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDo_DelayGrowsUpToCap(t *testing.T) {
	t.Parallel()
	start := time.Now()
	_ = Do(context.Background(), func() error {
		return errors.New("transient")
	}, Attempts(3), InitialDelay(5*time.Millisecond), MaxDelay(5*time.Millisecond))
	// Two waits of at most 5ms each.
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestIsPermanent(t *testing.T) {
	t.Parallel()
	assert.False(t, IsPermanent(errors.New("plain")))
	assert.True(t, IsPermanent(Permanent(errors.New("plain"))))
	assert.False(t, IsPermanent(nil))

	// Permanent marker survives wrapping.
	wrapped := Permanent(errors.New("inner"))
	assert.True(t, IsPermanent(wrapped))
}
