package commands

import (
	"context"
	"fmt"

	"github.com/pixil98/go-mudcore/internal/game"
)

// move takes the actor through exit cc.Verb into room to. Leaving a room ends any
// fight the actor was in.
func (h *Handler) move(_ context.Context, cc *CommandContext, to game.RoomId) error {
	dest, err := h.world.Room(to)
	if err != nil {
		return fmt.Errorf("moving through %s: %w", cc.Verb, err)
	}

	p := cc.Actor
	from := p.RoomId

	h.world.Players.Modify(p.Id, func(p *game.Player) {
		p.RoomId = dest.Id
		p.AttackTarget = nil
	})
	if p.AttackTarget != nil {
		h.out.Tell(p.Id, game.TextLine("You flee."))
	}

	h.out.TellRoom(from, game.TextLine(fmt.Sprintf("%s leaves %s.", p.Name, cc.Verb)))

	arrival := fmt.Sprintf("%s appears.", p.Name)
	if dir, ok := dest.ExitDirectionTo(from); ok {
		arrival = fmt.Sprintf("%s arrives from %s.", p.Name, dir)
	}
	h.out.TellRoomExcept(dest.Id, p.Id, game.TextLine(arrival))

	h.out.Tell(p.Id, h.world.DescribeRoom(p.Id, dest)...)
	return nil
}
