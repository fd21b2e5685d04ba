package display

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-mudcore/internal/game"
)

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
	ansiWhite  = "\x1b[97m"
	ansiOrange = "\x1b[38;5;208m"
)

var colors = map[string]string{
	game.ColorWhite:  ansiWhite,
	game.ColorBlue:   ansiBlue,
	game.ColorOrange: ansiOrange,
	game.ColorYellow: ansiYellow,
	game.ColorRed:    ansiRed,
}

func style(text string, attrs ...string) string {
	if len(attrs) == 0 {
		return text
	}
	return strings.Join(attrs, "") + text + ansiReset
}

// Line renders one line with ANSI styling.
func Line(l game.Line) string {
	var sb strings.Builder
	for _, s := range l.Spans {
		var attrs []string
		if s.Bold != nil && *s.Bold {
			attrs = append(attrs, ansiBold)
		}
		if s.Color != nil {
			if c, ok := colors[*s.Color]; ok {
				attrs = append(attrs, c)
			}
		}
		sb.WriteString(style(s.Text, attrs...))
	}
	return sb.String()
}

// Render turns a payload into wrapped terminal text, one output line per line
// followed by a vitals line when the payload carries a room snapshot.
func Render(p game.Payload, width int) string {
	var sb strings.Builder
	for _, l := range p.Lines {
		sb.WriteString(WrapTo(Line(l), width))
		sb.WriteString("\n")
	}
	if p.Room != nil {
		sb.WriteString(Status(p.Room.Self))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Status renders a player's vitals, red when below a quarter of their maximum.
func Status(self game.Occupant) string {
	text := fmt.Sprintf("[%d/%d hp]", self.Hp, self.MaxHp)
	if self.Hp*4 < self.MaxHp {
		return style(text, ansiRed)
	}
	return text
}
