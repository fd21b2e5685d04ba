package commands

import (
	"context"

	"github.com/pixil98/go-mudcore/internal/game"
)

var helpEntries = []struct {
	command string
	summary string
}{
	{"look", " – Look around or at something"},
	{"north", ", etc. – Move to another room"},
	{"kill", " – Attack something"},
	{"say", " – Say something to the others in the room"},
	{"emote", " – Act out something"},
	{"roll", " – Roll a die"},
	{"who", " – See who is online"},
	{"alias", " – List short aliases for commands"},
	{"help", " – You're looking at it"},
}

func helpLines() []game.Line {
	lines := []game.Line{game.NewSpan("Commands:").WithBold().Line()}
	for _, e := range helpEntries {
		lines = append(lines, game.NewLine(
			game.NewSpan(e.command).WithColor(game.ColorWhite),
			game.NewSpan(e.summary),
		))
	}
	return append(lines, game.TextLine("There are also special commands for interacting with specific rooms, or objects in there."))
}

func (h *Handler) help(_ context.Context, cc *CommandContext) error {
	h.out.Tell(cc.Actor.Id, helpLines()...)
	return nil
}

func (h *Handler) alias(_ context.Context, cc *CommandContext) error {
	h.out.Tell(cc.Actor.Id, aliasLines()...)
	return nil
}
