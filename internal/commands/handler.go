package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pixil98/go-mudcore/internal/combat"
	"github.com/pixil98/go-mudcore/internal/game"
)

// CommandContext carries the state a built-in command runs against.
type CommandContext struct {
	Actor game.Player
	Room  *game.Room
	Verb  string
	Args  []string
}

// Text returns the arguments joined back into one string.
func (cc *CommandContext) Text() string {
	return strings.Join(cc.Args, " ")
}

// CommandFunc is the signature for built-in commands.
type CommandFunc func(ctx context.Context, cc *CommandContext) error

// Handler turns player lifecycle events and command lines into world changes and
// queued output. It must only be used from the goroutine that owns the world.
type Handler struct {
	world     *game.World
	out       *game.Output
	combat    *combat.Engine
	startRoom game.RoomId
	builtins  map[string]CommandFunc
}

func NewHandler(w *game.World, out *game.Output, engine *combat.Engine, startRoom game.RoomId) *Handler {
	h := &Handler{
		world:     w,
		out:       out,
		combat:    engine,
		startRoom: startRoom,
	}
	h.builtins = map[string]CommandFunc{
		"look":  h.look,
		"kill":  h.kill,
		"say":   h.say,
		"emote": h.emote,
		"who":   h.who,
		"help":  h.help,
		"alias": h.alias,
		"roll":  h.roll,
	}
	return h
}

// Connect places a new player in the start room and greets them.
func (h *Handler) Connect(ctx context.Context, name string) (game.PlayerId, error) {
	room, err := h.world.Room(h.startRoom)
	if err != nil {
		return 0, fmt.Errorf("connecting %s: %w", name, err)
	}

	id := h.world.NewPlayerId()
	h.world.Players.Insert(h.combat.NewPlayer(id, name, room.Id))

	h.out.Tell(id,
		game.TextLine(fmt.Sprintf("Welcome, %s!", name)),
		game.NewLine(
			game.NewSpan("Try to "),
			game.NewSpan("look").WithColor(game.ColorWhite),
			game.NewSpan(" around, or check the "),
			game.NewSpan("help").WithColor(game.ColorWhite),
			game.NewSpan(" to get your bearings."),
		),
		game.TextLine(playerCount(h.world.Players.Len())),
	)
	h.out.Tell(id, h.world.DescribeRoom(id, room)...)
	h.out.TellRoomExcept(room.Id, id, game.TextLine(fmt.Sprintf("%s appears.", name)))

	slog.InfoContext(ctx, "player connected", "player", id, "name", name)
	return id, nil
}

// Disconnect removes a player and tells their last room. Unknown ids are ignored.
func (h *Handler) Disconnect(ctx context.Context, id game.PlayerId) {
	p, ok := h.world.Players.Remove(id)
	if !ok {
		return
	}
	h.out.TellRoom(p.RoomId, game.TextLine(fmt.Sprintf("%s disappears.", p.Name)))

	slog.InfoContext(ctx, "player disconnected", "player", id, "name", p.Name)
}

// Exec runs one line of player input. Player-facing failures are returned as
// *UserError; any other error means the command could not be carried out.
func (h *Handler) Exec(ctx context.Context, id game.PlayerId, line string) error {
	words := ResolveAliases(strings.Fields(line))
	if len(words) == 0 {
		return nil
	}

	p, ok := h.world.Players.Get(id)
	if !ok {
		return fmt.Errorf("command from player %d: %w", id, game.ErrPlayerNotFound)
	}
	room, err := h.world.Room(p.RoomId)
	if err != nil {
		return fmt.Errorf("command from player %d: %w", id, err)
	}

	cc := &CommandContext{
		Actor: p,
		Room:  room,
		Verb:  game.Fold(words[0]),
		Args:  words[1:],
	}

	if f, ok := h.builtins[cc.Verb]; ok {
		return f(ctx, cc)
	}
	return h.roomCommand(ctx, cc)
}

// roomCommand resolves the verb against the room's exits and scripted objects.
func (h *Handler) roomCommand(ctx context.Context, cc *CommandContext) error {
	resolved, err := h.world.ResolveRoomCommand(cc.Verb, cc.Text(), cc.Room.Id)
	if err != nil {
		return err
	}

	switch {
	case resolved == nil:
		return NewUserError("Unknown command.")
	case resolved.Exit != nil:
		return h.move(ctx, cc, *resolved.Exit)
	default:
		h.runRoomCommand(ctx, cc, resolved.Command)
		return nil
	}
}

func playerCount(n int) string {
	if n == 1 {
		return "There is 1 player online."
	}
	return fmt.Sprintf("There are %d players online.", n)
}
