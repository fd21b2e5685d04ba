package commands

import (
	"context"
	"fmt"

	"github.com/pixil98/go-mudcore/internal/game"
)

// who lists everyone online in the order they connected.
func (h *Handler) who(_ context.Context, cc *CommandContext) error {
	ids := game.SortedIds(h.world.Players)

	lines := make([]game.Line, 0, len(ids)+1)
	lines = append(lines, game.TextLine(playerCount(len(ids))))
	for _, id := range ids {
		lines = append(lines, game.NewSpan(h.world.Players.MustGet(id).Name).WithColor(game.ColorBlue).Line())
	}

	h.out.Tell(cc.Actor.Id, lines...)
	return nil
}

// roll throws a six-sided die in front of the room.
func (h *Handler) roll(_ context.Context, cc *CommandContext) error {
	n := h.world.Rand().IntN(6) + 1

	p := cc.Actor
	h.out.Tell(p.Id, game.TextLine(fmt.Sprintf("You rolled a %d.", n)))
	h.out.TellRoomExcept(p.RoomId, p.Id, game.TextLine(fmt.Sprintf("%s rolled a %d.", p.Name, n)))
	return nil
}
