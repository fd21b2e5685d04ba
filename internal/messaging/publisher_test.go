package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pixil98/go-mudcore/internal/game"
	"github.com/pixil98/go-testutil"
)

func startServer(t *testing.T) *NatsServer {
	t.Helper()

	s, err := NewNatsServer(WithPort(-1), WithStartTimeout(5*time.Second))
	if err != nil {
		t.Fatalf("creating server: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	t.Cleanup(func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("server stopped with error: %v", err)
		}
	})

	select {
	case <-s.Ready():
	case err := <-done:
		t.Fatalf("server exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for server")
	}
	return s
}

func TestNatsServer_NotStarted(t *testing.T) {
	s, err := NewNatsServer(WithPort(-1))
	if err != nil {
		t.Fatalf("creating server: %v", err)
	}

	if err := s.Publish("session.x", nil); !errors.Is(err, ErrNotStarted) {
		t.Errorf("publish error = %v, expected %v", err, ErrNotStarted)
	}
	if _, err := s.Subscribe("session.x", func([]byte) {}); !errors.Is(err, ErrNotStarted) {
		t.Errorf("subscribe error = %v, expected %v", err, ErrNotStarted)
	}
}

func TestNatsDelivery_RoundTrip(t *testing.T) {
	s := startServer(t)
	d := NewNatsDelivery(s)

	recv := make(chan game.Payload, 1)
	done := make(chan struct{})
	defer close(done)

	sink, release, err := d.Open(context.Background(), uuid.New(), recv, done)
	if err != nil {
		t.Fatalf("opening: %v", err)
	}
	defer release()

	sent := game.Payload{
		Lines: []game.Line{game.NewSpan("You die.").WithColor(game.ColorRed).Line()},
		Room:  &game.RoomSnapshot{Self: game.Occupant{Name: "Ann", Hp: 100, MaxHp: 100}},
	}
	if err := sink.Send(sent); err != nil {
		t.Fatalf("sending: %v", err)
	}

	select {
	case got := <-recv:
		testutil.AssertEqual(t, "line", got.Lines[0].String(), "You die.")
		testutil.AssertEqual(t, "color", *got.Lines[0].Spans[0].Color, game.ColorRed)
		testutil.AssertEqual(t, "self", got.Room.Self, sent.Room.Self)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for payload")
	}
}

func TestNatsDelivery_OpenCancelled(t *testing.T) {
	s, err := NewNatsServer(WithPort(-1))
	if err != nil {
		t.Fatalf("creating server: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err = NewNatsDelivery(s).Open(ctx, uuid.New(), make(chan game.Payload), make(chan struct{}))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, expected %v", err, context.Canceled)
	}
}

func TestSessionSubject(t *testing.T) {
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	testutil.AssertEqual(t, "subject", SessionSubject(id), "session.6ba7b810-9dad-11d1-80b4-00c04fd430c8")
}
