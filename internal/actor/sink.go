package actor

import (
	"errors"

	"github.com/pixil98/go-mudcore/internal/game"
)

var ErrSessionClosed = errors.New("session closed")

// ChanSink hands payloads to a session goroutine over a channel.
type ChanSink struct {
	ch   chan<- game.Payload
	done <-chan struct{}
}

// NewChanSink delivers on ch until done is closed.
func NewChanSink(ch chan<- game.Payload, done <-chan struct{}) *ChanSink {
	return &ChanSink{ch: ch, done: done}
}

// Send blocks until the session takes p or goes away.
func (s *ChanSink) Send(p game.Payload) error {
	select {
	case <-s.done:
		return ErrSessionClosed
	default:
	}

	select {
	case s.ch <- p:
		return nil
	case <-s.done:
		return ErrSessionClosed
	}
}
