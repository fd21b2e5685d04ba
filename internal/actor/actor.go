package actor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-mudcore/internal/commands"
	"github.com/pixil98/go-mudcore/internal/game"
)

const DefaultQueueSize = 4096

// Actor owns the world. Events from every session are queued and applied one at
// a time, and queued output is flushed to sinks after each one.
type Actor struct {
	handler *commands.Handler
	out     *game.Output
	queue   chan Event
	sinks   map[game.PlayerId]game.Sink
}

func NewActor(handler *commands.Handler, out *game.Output, opts ...ActorOpt) *Actor {
	cfg := actorConfig{queueSize: DefaultQueueSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Actor{
		handler: handler,
		out:     out,
		queue:   make(chan Event, cfg.queueSize),
		sinks:   map[game.PlayerId]game.Sink{},
	}
}

// Submit enqueues ev, blocking while the queue is full.
func (a *Actor) Submit(ctx context.Context, ev Event) error {
	select {
	case a.queue <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Tick enqueues a clock tick. It lets the actor be driven by driver.MudDriver.
func (a *Actor) Tick(ctx context.Context) error {
	return a.Submit(ctx, Tick{})
}

// Start processes events until ctx is cancelled.
func (a *Actor) Start(ctx context.Context) error {
	slog.DebugContext(ctx, "actor loop starting", "queue_size", cap(a.queue))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-a.queue:
			a.handle(ctx, ev)
			a.flush(ctx)
		}
	}
}

func (a *Actor) handle(ctx context.Context, ev Event) {
	switch ev := ev.(type) {
	case Connected:
		a.connect(ctx, ev)
	case Disconnected:
		delete(a.sinks, ev.Player)
		a.handler.Disconnect(ctx, ev.Player)
	case Command:
		a.command(ctx, ev)
	case Tick:
		a.handler.Tick(ctx)
	default:
		panic(fmt.Sprintf("unknown event %T", ev))
	}
}

func (a *Actor) connect(ctx context.Context, ev Connected) {
	id, err := a.handler.Connect(ctx, ev.Name)
	if err != nil {
		slog.ErrorContext(ctx, "connecting player", "name", ev.Name, "error", err)
		if ev.Reply != nil {
			close(ev.Reply)
		}
		return
	}
	a.sinks[id] = ev.Sink
	if ev.Reply != nil {
		ev.Reply <- id
	}
}

func (a *Actor) command(ctx context.Context, ev Command) {
	err := a.handler.Exec(ctx, ev.Player, ev.Line)

	var ue *commands.UserError
	switch {
	case err == nil:
	case errors.As(err, &ue):
		a.out.Tell(ev.Player, game.TextLine(ue.Message))
	default:
		slog.WarnContext(ctx, "running command", "player", ev.Player, "line", ev.Line, "error", err)
	}
}

func (a *Actor) flush(ctx context.Context) {
	a.out.Flush(func(id game.PlayerId, p game.Payload) {
		sink, ok := a.sinks[id]
		if !ok {
			return
		}
		if err := sink.Send(p); err != nil {
			slog.WarnContext(ctx, "delivering output", "player", id, "error", err)
		}
	})
}
