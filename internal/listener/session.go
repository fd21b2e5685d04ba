package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pixil98/go-mudcore/internal/actor"
	"github.com/pixil98/go-mudcore/internal/game"
)

const (
	// MaxNameLength is the longest display name accepted, in runes.
	MaxNameLength = 20

	sessionBuffer = 64
)

var (
	ErrInvalidName = errors.New("names must be 1 to 20 letters")
	ErrRejected    = errors.New("connection rejected")
)

// Submitter accepts events for the world. *actor.Actor satisfies it.
type Submitter interface {
	Submit(ctx context.Context, ev actor.Event) error
}

// Delivery creates the sink a session's output is sent through. Payloads must end
// up on recv until done is closed. The returned func releases any resources.
type Delivery interface {
	Open(ctx context.Context, session uuid.UUID, recv chan<- game.Payload, done <-chan struct{}) (game.Sink, func(), error)
}

// DirectDelivery hands payloads straight from the actor to the session.
type DirectDelivery struct{}

func (DirectDelivery) Open(_ context.Context, _ uuid.UUID, recv chan<- game.Payload, done <-chan struct{}) (game.Sink, func(), error) {
	return actor.NewChanSink(recv, done), func() {}, nil
}

// ValidateName checks a requested display name.
func ValidateName(name string) error {
	n := utf8.RuneCountInString(name)
	if n == 0 || n > MaxNameLength {
		return ErrInvalidName
	}
	for _, r := range name {
		if !unicode.IsLetter(r) {
			return ErrInvalidName
		}
	}
	return nil
}

// Session is one connected player as seen by a transport.
type Session struct {
	Id     uuid.UUID
	Player game.PlayerId
	Name   string

	world     Submitter
	recv      chan game.Payload
	done      chan struct{}
	release   func()
	closeOnce sync.Once
}

// Payloads yields the player's output.
func (s *Session) Payloads() <-chan game.Payload {
	return s.recv
}

// Done is closed once the session has been closed.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Command submits one line of input.
func (s *Session) Command(ctx context.Context, line string) error {
	return s.world.Submit(ctx, actor.Command{Player: s.Player, Line: line})
}

// Close removes the player from the world and stops delivery. It is safe to call
// more than once.
func (s *Session) Close(ctx context.Context) {
	s.closeOnce.Do(func() {
		// done closes first so an actor blocked sending to this session can
		// drain the queue.
		close(s.done)
		s.release()
		err := s.world.Submit(context.WithoutCancel(ctx), actor.Disconnected{Player: s.Player})
		if err != nil {
			slog.WarnContext(ctx, "submitting disconnect", "session", s.Id, "error", err)
		}
		slog.InfoContext(ctx, "session closed", "session", s.Id, "player", s.Player)
	})
}

// ConnectionManager joins transport connections to the world.
type ConnectionManager struct {
	world    Submitter
	delivery Delivery
	width    int
}

func NewConnectionManager(world Submitter, opts ...ConnectionManagerOpt) *ConnectionManager {
	m := &ConnectionManager{
		world:    world,
		delivery: DirectDelivery{},
		width:    80,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Open connects a new player called name.
func (m *ConnectionManager) Open(ctx context.Context, name string) (*Session, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	s := &Session{
		Id:    uuid.New(),
		Name:  name,
		world: m.world,
		recv:  make(chan game.Payload, sessionBuffer),
		done:  make(chan struct{}),
	}

	sink, release, err := m.delivery.Open(ctx, s.Id, s.recv, s.done)
	if err != nil {
		return nil, fmt.Errorf("opening delivery for session %s: %w", s.Id, err)
	}
	s.release = release

	reply := make(chan game.PlayerId, 1)
	err = m.world.Submit(ctx, actor.Connected{Name: name, Sink: sink, Reply: reply})
	if err != nil {
		release()
		return nil, fmt.Errorf("submitting connect: %w", err)
	}

	select {
	case id, ok := <-reply:
		if !ok {
			release()
			return nil, ErrRejected
		}
		s.Player = id
	case <-ctx.Done():
		// The actor may still admit the player; make sure it is removed again.
		go func() {
			if id, ok := <-reply; ok {
				s.Player = id
				s.Close(ctx)
			} else {
				release()
			}
		}()
		return nil, ctx.Err()
	}

	slog.InfoContext(ctx, "session opened", "session", s.Id, "player", s.Player, "name", name)
	return s, nil
}
