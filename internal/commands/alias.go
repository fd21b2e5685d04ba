package commands

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-mudcore/internal/game"
)

type alias struct {
	short string
	verb  string
}

var aliases = []alias{
	{"l", "look"},
	{`"`, "say"},
	{":", "emote"},
	{"n", "north"},
	{"ne", "northeast"},
	{"e", "east"},
	{"se", "southeast"},
	{"s", "south"},
	{"sw", "southwest"},
	{"w", "west"},
	{"nw", "northwest"},
	{"u", "up"},
	{"d", "down"},
}

// prefixAliases may be glued to the first word, as in `"hello` or `:waves`.
var prefixAliases = []alias{
	{`"`, "say"},
	{"'", "say"},
	{":", "emote"},
}

// ResolveAliases replaces a leading alias with the verb it stands for.
func ResolveAliases(words []string) []string {
	if len(words) == 0 {
		return words
	}

	head := strings.ToLower(words[0])
	for _, a := range aliases {
		if head == a.short {
			return append([]string{a.verb}, words[1:]...)
		}
	}

	for _, a := range prefixAliases {
		if rest, ok := strings.CutPrefix(words[0], a.short); ok && rest != "" {
			return append([]string{a.verb, rest}, words[1:]...)
		}
	}

	return words
}

func aliasLines() []game.Line {
	lines := make([]game.Line, 0, len(aliases))
	for _, a := range aliases {
		lines = append(lines, game.NewLine(
			game.NewSpan(a.short).WithColor(game.ColorWhite),
			game.NewSpan(fmt.Sprintf(" → %s", a.verb)),
		))
	}
	return lines
}
