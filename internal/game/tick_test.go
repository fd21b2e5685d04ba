package game

import (
	"math/rand/v2"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestTick_IsLargeTick(t *testing.T) {
	tests := map[string]struct {
		tick Tick
		exp  bool
	}{
		"zero":     {tick: 0, exp: true},
		"one":      {tick: 1, exp: false},
		"seven":    {tick: 7, exp: false},
		"eight":    {tick: 8, exp: true},
		"sixteen":  {tick: 16, exp: true},
		"seventy3": {tick: 73, exp: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "large", tt.tick.IsLargeTick(), tt.exp)
		})
	}
}

func TestTick_IsOnDivisionOncePerPeriod(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	period := DurationFromSecs(1)

	offsets := make([]TickDuration, 500)
	for i := range offsets {
		offsets[i] = period.RandomOffset(rng)
		if offsets[i] < 0 || offsets[i] >= period {
			t.Fatalf("offset %d out of range", offsets[i])
		}
	}

	for window := Tick(0); window < 5; window++ {
		fired := make([]int, len(offsets))
		start := window * Tick(period)
		for tick := start; tick < start+Tick(period); tick++ {
			for i, off := range offsets {
				if tick.IsOnDivision(period, off) {
					fired[i]++
				}
			}
		}
		for i, n := range fired {
			if n != 1 {
				t.Fatalf("window %d: entity %d fired %d times", window, i, n)
			}
		}
	}
}

func TestTick_IsOnDivisionNonPositivePeriod(t *testing.T) {
	testutil.AssertEqual(t, "zero period", Tick(0).IsOnDivision(0, 0), false)
	testutil.AssertEqual(t, "negative period", Tick(4).IsOnDivision(-2, 0), false)
}

func TestDurationFromSecs(t *testing.T) {
	tests := map[string]struct {
		secs float64
		exp  TickDuration
	}{
		"one second":   {secs: 1, exp: 8},
		"half second":  {secs: 0.5, exp: 4},
		"thirty":       {secs: 30, exp: 240},
		"sub tick":     {secs: 0.1, exp: 0},
		"two and half": {secs: 2.5, exp: 20},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "ticks", DurationFromSecs(tt.secs), tt.exp)
		})
	}
}

func TestSchedule_PopDueOrder(t *testing.T) {
	s := NewSchedule[string]()
	s.Add(5, "c")
	s.Add(2, "a")
	s.Add(2, "b")
	s.Add(9, "d")

	due := s.PopDue(5)
	testutil.AssertEqual(t, "count", len(due), 3)
	testutil.AssertEqual(t, "first", due[0], "a")
	testutil.AssertEqual(t, "second", due[1], "b")
	testutil.AssertEqual(t, "third", due[2], "c")
	testutil.AssertEqual(t, "remaining", s.Len(), 1)
	testutil.AssertEqual(t, "again", len(s.PopDue(5)), 0)
}

func TestIdSource(t *testing.T) {
	s := NewIdSource[Player](10)
	testutil.AssertEqual(t, "first", s.Next(), PlayerId(10))
	testutil.AssertEqual(t, "second", s.Next(), PlayerId(11))
}
