package game

import (
	"maps"
	"slices"
)

// Schedule holds events keyed by the tick at which they fall due. Several events may
// share a tick; they are returned in the order they were added.
type Schedule[T any] struct {
	due map[Tick][]T
}

func NewSchedule[T any]() *Schedule[T] {
	return &Schedule[T]{due: map[Tick][]T{}}
}

// Add schedules ev for tick at.
func (s *Schedule[T]) Add(at Tick, ev T) {
	s.due[at] = append(s.due[at], ev)
}

// Len returns the number of pending events.
func (s *Schedule[T]) Len() int {
	n := 0
	for _, evs := range s.due {
		n += len(evs)
	}
	return n
}

// PopDue removes and returns every event due at or before now, earliest tick first.
func (s *Schedule[T]) PopDue(now Tick) []T {
	var ticks []Tick
	for t := range maps.Keys(s.due) {
		if t <= now {
			ticks = append(ticks, t)
		}
	}
	slices.Sort(ticks)

	var out []T
	for _, t := range ticks {
		out = append(out, s.due[t]...)
		delete(s.due, t)
	}
	return out
}
