package driver

import (
	"context"
	"errors"
	"time"

	"github.com/pixil98/go-mudcore/internal/game"
)

const (
	DefaultTickLength = game.TickInterval
)

// Ticker is anything advanced by the driver's clock.
type Ticker interface {
	Tick(context.Context) error
}

// MudDriver is the wall-clock source of simulation ticks. It runs apart from the
// actor so a slow event never delays the clock.
type MudDriver struct {
	tickLength time.Duration
	tickers    []Ticker
}

func NewMudDriver(tickers []Ticker, opts ...MudDriverOpt) *MudDriver {
	d := &MudDriver{
		tickLength: DefaultTickLength,
		tickers:    tickers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *MudDriver) TickLength() time.Duration {
	return d.tickLength
}

func (d *MudDriver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			err := d.Tick(ctx)
			if errors.Is(err, context.Canceled) && ctx.Err() != nil {
				return nil
			}
			if err != nil {
				return err
			}
		}
	}
}

func (d *MudDriver) Tick(ctx context.Context) error {
	for _, t := range d.tickers {
		if err := t.Tick(ctx); err != nil {
			return err
		}
	}
	return nil
}
