// Package pacer slows CLI playback down to real elapsed game time, so a
// human watching a replay sees ticks land roughly when they originally
// happened instead of all at once.
package pacer

import (
	"context"
	"time"

	"github.com/coder/quartz"
)

// Pacer sleeps between ticks proportional to the gap between their
// timestamps, scaled by speed (1.0 is real time, 2.0 is twice as fast, 0
// disables pacing entirely). It wraps a quartz.Clock so tests can
// substitute quartz.NewMock and assert on the requested sleep durations
// without actually waiting, the same substitution the teacher's dropped
// test harness used to drive deterministic timeouts.
type Pacer struct {
	clock    quartz.Clock
	speed    float64
	lastTick time.Time
	started  bool
}

// New builds a Pacer over clock, pacing ticks at the given speed. A
// non-positive speed disables pacing and WaitForTick returns immediately.
func New(clock quartz.Clock, speed float64) *Pacer {
	return &Pacer{clock: clock, speed: speed}
}

// WaitForTick sleeps long enough to make the gap since the previous call
// match the gap between tickTime and the previous tickTime, scaled by
// speed. The first call never sleeps, since there is no previous tick to
// measure a gap against.
func (p *Pacer) WaitForTick(ctx context.Context, tickTime time.Time) error {
	if !p.started {
		p.started = true
		p.lastTick = tickTime
		return nil
	}

	gap := tickTime.Sub(p.lastTick)
	p.lastTick = tickTime
	if p.speed <= 0 || gap <= 0 {
		return nil
	}

	return p.clock.SleepCtx(ctx, time.Duration(float64(gap)/p.speed))
}
