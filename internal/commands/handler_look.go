package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/pixil98/go-mudcore/internal/game"
)

// look describes the room, or with arguments ("look at rat", "look lever") one
// thing in it.
func (h *Handler) look(_ context.Context, cc *CommandContext) error {
	p := cc.Actor

	args := cc.Args
	if len(args) > 0 && strings.EqualFold(args[0], "at") {
		if len(args) == 1 {
			return NewUserError("You do not see that here.")
		}
		args = args[1:]
	}

	if len(args) == 0 {
		h.out.Tell(p.Id, h.world.DescribeRoom(p.Id, cc.Room)...)
		h.out.TellRoomExcept(p.RoomId, p.Id, game.TextLine(fmt.Sprintf("%s looks around.", p.Name)))
		return nil
	}

	target := h.world.ResolveTarget(cc.Room, strings.Join(args, " "))
	var name string
	switch {
	case target.Mob != nil:
		name = target.Mob.Template.Name
		h.out.Tell(p.Id, game.TextLine(target.Mob.Template.Description))
	case target.Object != nil:
		name = target.Object.Name
		if text, ok := h.world.EvalDescription(target.Object.Description, cc.Room.Id); ok {
			h.out.Tell(p.Id, game.TextLine(text))
		}
	default:
		return NewUserError("You do not see that here.")
	}

	h.out.TellRoomExcept(p.RoomId, p.Id, game.TextLine(fmt.Sprintf("%s looks at the %s.", p.Name, name)))
	return nil
}
