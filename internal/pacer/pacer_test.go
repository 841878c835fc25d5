package pacer

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"
)

func TestWaitForTickFirstCallNeverSleeps(t *testing.T) {
	mockClock := quartz.NewMock(t)
	p := New(mockClock, 1.0)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := p.WaitForTick(ctx, time.Unix(1000, 0))
	require.NoError(t, err)
}

func TestWaitForTickSleepsTheGapAtFullSpeed(t *testing.T) {
	mockClock := quartz.NewMock(t)
	p := New(mockClock, 1.0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, p.WaitForTick(ctx, time.Unix(1000, 0)))

	done := make(chan error, 1)
	go func() {
		done <- p.WaitForTick(ctx, time.Unix(1002, 0))
	}()

	mockClock.Advance(2 * time.Second).MustWait(ctx)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("WaitForTick did not return after the clock advanced")
	}
}

func TestWaitForTickDisabledBySpeedZero(t *testing.T) {
	mockClock := quartz.NewMock(t)
	p := New(mockClock, 0)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, p.WaitForTick(ctx, time.Unix(1000, 0)))
	require.NoError(t, p.WaitForTick(ctx, time.Unix(2000, 0)))
}
