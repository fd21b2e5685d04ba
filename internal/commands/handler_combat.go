package commands

import (
	"context"
)

func (h *Handler) kill(_ context.Context, cc *CommandContext) error {
	if len(cc.Args) == 0 {
		return NewUserError("Kill what?")
	}
	return h.combat.Kill(cc.Actor.Id, cc.Text())
}
