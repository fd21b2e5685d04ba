package driver

import "time"

type MudDriverOpt func(*MudDriver)

// WithTickLength overrides the wall-clock length of a tick. Non-positive lengths are ignored.
func WithTickLength(tickLength time.Duration) MudDriverOpt {
	return func(d *MudDriver) {
		if tickLength > 0 {
			d.tickLength = tickLength
		}
	}
}
