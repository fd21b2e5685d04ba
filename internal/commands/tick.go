package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-mudcore/internal/game"
)

// Tick advances the clock one step and runs everything due on the new tick.
func (h *Handler) Tick(ctx context.Context) game.Tick {
	now := h.world.Advance()

	h.combat.Tick()

	if now.IsLargeTick() {
		h.resetRoomVars(ctx)
		h.respawnMobs(ctx)
	}
	return now
}

func (h *Handler) resetRoomVars(ctx context.Context) {
	for _, r := range h.world.DueRoomVarResets() {
		if _, err := h.world.Room(r.Room); err != nil {
			slog.DebugContext(ctx, "skipping room variable reset", "room", r.Room, "var", r.Var, "error", err)
			continue
		}
		h.world.SetRoomVar(r.Room, r.Var, 0)
		if r.Message != "" {
			h.out.TellRoom(r.Room, game.TextLine(r.Message))
		}
	}
}

func (h *Handler) respawnMobs(ctx context.Context) {
	for _, r := range h.world.DueRespawns() {
		id, err := h.world.SpawnMob(r.Room, r.Template)
		if err != nil {
			slog.DebugContext(ctx, "skipping mob respawn", "room", r.Room, "template", r.Template, "error", err)
			continue
		}
		h.out.TellRoom(r.Room, game.TextLine(fmt.Sprintf("A %s appears.", h.world.Mobs.MustGet(id).Template.Name)))
	}
}
