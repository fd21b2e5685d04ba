package driver

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

type countingTicker struct {
	n   atomic.Int64
	err error
}

func (c *countingTicker) Tick(context.Context) error {
	c.n.Add(1)
	return c.err
}

func TestMudDriver_Tick(t *testing.T) {
	boom := errors.New("boom")

	tests := map[string]struct {
		firstErr  error
		expErr    error
		expSecond int64
	}{
		"all tickers run": {
			expSecond: 1,
		},
		"error stops the round": {
			firstErr:  boom,
			expErr:    boom,
			expSecond: 0,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			first := &countingTicker{err: tt.firstErr}
			second := &countingTicker{}
			d := NewMudDriver([]Ticker{first, second})

			err := d.Tick(context.Background())
			if !errors.Is(err, tt.expErr) {
				t.Errorf("error = %v, expected %v", err, tt.expErr)
			}
			testutil.AssertEqual(t, "first", first.n.Load(), int64(1))
			testutil.AssertEqual(t, "second", second.n.Load(), tt.expSecond)
		})
	}
}

func TestMudDriver_Start(t *testing.T) {
	c := &countingTicker{}
	d := NewMudDriver([]Ticker{c}, WithTickLength(time.Millisecond))
	testutil.AssertEqual(t, "tick length", d.tickLength, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Start(ctx) }()

	deadline := time.After(time.Second)
	for c.n.Load() < 3 {
		select {
		case <-deadline:
			t.Fatal("timed out waiting for ticks")
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestMudDriver_StartReturnsTickerError(t *testing.T) {
	boom := errors.New("boom")
	d := NewMudDriver([]Ticker{&countingTicker{err: boom}}, WithTickLength(time.Millisecond))

	err := d.Start(context.Background())
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, expected %v", err, boom)
	}
}

func TestNewMudDriver_DefaultTickLength(t *testing.T) {
	d := NewMudDriver(nil)
	testutil.AssertEqual(t, "tick length", d.tickLength, 125*time.Millisecond)
}
