package game

import (
	"math/rand/v2"
	"time"
)

const (
	// LargeTickFrequency is the number of ticks between large ticks.
	LargeTickFrequency = 8

	// TickInterval is the wall-clock length of one tick.
	TickInterval = time.Second / LargeTickFrequency
)

// Tick is a point on the simulation clock.
type Tick int64

// TickDuration is a span of simulation time measured in ticks.
type TickDuration int64

// IsLargeTick reports whether t is a multiple of LargeTickFrequency.
func (t Tick) IsLargeTick() bool {
	return t%LargeTickFrequency == 0
}

// IsOnDivision is true exactly when t mod period == offset. A non-positive
// period never fires.
func (t Tick) IsOnDivision(period, offset TickDuration) bool {
	if period <= 0 {
		return false
	}
	return int64(t)%int64(period) == int64(offset)
}

func (t Tick) Next() Tick {
	return t + 1
}

func (t Tick) Add(d TickDuration) Tick {
	return t + Tick(d)
}

// DurationFromSecs converts seconds to whole ticks, truncating.
func DurationFromSecs(secs float64) TickDuration {
	return TickDuration(secs / TickInterval.Seconds())
}

// RandomOffset picks a phase offset in [0, d). Durations below one tick yield 0.
func (d TickDuration) RandomOffset(rng *rand.Rand) TickDuration {
	if d <= 1 {
		return 0
	}
	return TickDuration(rng.Int64N(int64(d)))
}
