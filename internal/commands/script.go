package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-mudcore/internal/game"
)

// runRoomCommand executes a scripted command's statements in order.
func (h *Handler) runRoomCommand(ctx context.Context, cc *CommandContext, cmd *game.RoomCommand) {
	p := cc.Actor
	room := cc.Room.Id
	data := ScriptContext{Actor: p.Name, Room: cc.Room.Name}

	for _, st := range cmd.Statements {
		switch st.Kind {
		case game.StatementSetRoomVar:
			h.world.SetRoomVar(room, st.Var, st.Value)
		case game.StatementResetRoomVarAfterTicks:
			h.world.ScheduleRoomVarReset(st.Delay, game.RoomVarReset{
				Room:    room,
				Var:     st.Var,
				Message: h.expand(ctx, st.Text, data),
			})
		case game.StatementTellSelf:
			h.out.Tell(p.Id, game.TextLine(h.expand(ctx, st.Text, data)))
		case game.StatementTellOthers:
			h.out.TellRoomExcept(room, p.Id, game.TextLine(fmt.Sprintf("%s %s", p.Name, h.expand(ctx, st.Text, data))))
		case game.StatementTellRoom:
			h.out.TellRoom(room, game.TextLine(h.expand(ctx, st.Text, data)))
		default:
			panic(fmt.Sprintf("unknown statement kind %d", st.Kind))
		}
	}
}

// expand renders a scripted message. A broken template is logged and the raw text used.
func (h *Handler) expand(ctx context.Context, text string, data ScriptContext) string {
	out, err := ExpandTemplate(text, data)
	if err != nil {
		slog.WarnContext(ctx, "expanding room script message", "text", text, "error", err)
		return text
	}
	return out
}
