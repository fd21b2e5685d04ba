package commands

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pixil98/go-mudcore/internal/game"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MaxChatLength is the longest say or emote accepted, in bytes.
const MaxChatLength = 128

func (h *Handler) say(_ context.Context, cc *CommandContext) error {
	text, err := chatText(cc, "Say what?")
	if err != nil {
		return err
	}
	text = ensurePunctuation(capitalize(text))

	p := cc.Actor
	h.out.Tell(p.Id, chatLine(fmt.Sprintf(`You say, "%s"`, text)))
	h.out.TellRoomExcept(p.RoomId, p.Id, chatLine(fmt.Sprintf(`%s says, "%s"`, p.Name, text)))
	return nil
}

func (h *Handler) emote(_ context.Context, cc *CommandContext) error {
	text, err := chatText(cc, "Emote what?")
	if err != nil {
		return err
	}
	text = ensurePunctuation(text)

	p := cc.Actor
	line := chatLine(fmt.Sprintf("%s %s", p.Name, text))
	h.out.Tell(p.Id, line)
	h.out.TellRoomExcept(p.RoomId, p.Id, line)
	return nil
}

func chatText(cc *CommandContext, empty string) (string, error) {
	text := cc.Text()
	switch {
	case text == "":
		return "", NewUserError(empty)
	case len(text) > MaxChatLength:
		return "", NewUserError("That message is too long.")
	case strings.IndexFunc(text, isPictographic) >= 0:
		return "", NewUserError("That message contains illegal characters.")
	}
	return text, nil
}

func chatLine(text string) game.Line {
	return game.NewSpan(text).WithColor(game.ColorYellow).Line()
}

func capitalize(text string) string {
	r, size := utf8.DecodeRuneInString(text)
	if r == utf8.RuneError {
		return text
	}
	return cases.Upper(language.Und).String(string(r)) + text[size:]
}

func ensurePunctuation(text string) string {
	r, _ := utf8.DecodeLastRuneInString(text)
	if r < utf8.RuneSelf && (unicode.IsPunct(r) || unicode.IsSymbol(r)) {
		return text
	}
	return text + "."
}

func isPictographic(r rune) bool {
	return unicode.Is(extendedPictographic, r)
}

// extendedPictographic is the Unicode Extended_Pictographic property, which the
// unicode package does not export.
var extendedPictographic = &unicode.RangeTable{
	R16: []unicode.Range16{
		{0x00a9, 0x00a9, 1},
		{0x00ae, 0x00ae, 1},
		{0x203c, 0x203c, 1},
		{0x2049, 0x2049, 1},
		{0x2122, 0x2122, 1},
		{0x2139, 0x2139, 1},
		{0x2194, 0x2199, 1},
		{0x21a9, 0x21aa, 1},
		{0x231a, 0x231b, 1},
		{0x2328, 0x2328, 1},
		{0x2388, 0x2388, 1},
		{0x23cf, 0x23cf, 1},
		{0x23e9, 0x23f3, 1},
		{0x23f8, 0x23fa, 1},
		{0x24c2, 0x24c2, 1},
		{0x25aa, 0x25ab, 1},
		{0x25b6, 0x25b6, 1},
		{0x25c0, 0x25c0, 1},
		{0x25fb, 0x25fe, 1},
		{0x2600, 0x2605, 1},
		{0x2607, 0x2612, 1},
		{0x2614, 0x2685, 1},
		{0x2690, 0x2705, 1},
		{0x2708, 0x2712, 1},
		{0x2714, 0x2714, 1},
		{0x2716, 0x2716, 1},
		{0x271d, 0x271d, 1},
		{0x2721, 0x2721, 1},
		{0x2728, 0x2728, 1},
		{0x2733, 0x2734, 1},
		{0x2744, 0x2744, 1},
		{0x2747, 0x2747, 1},
		{0x274c, 0x274c, 1},
		{0x274e, 0x274e, 1},
		{0x2753, 0x2755, 1},
		{0x2757, 0x2757, 1},
		{0x2763, 0x2767, 1},
		{0x2795, 0x2797, 1},
		{0x27a1, 0x27a1, 1},
		{0x27b0, 0x27b0, 1},
		{0x27bf, 0x27bf, 1},
		{0x2934, 0x2935, 1},
		{0x2b05, 0x2b07, 1},
		{0x2b1b, 0x2b1c, 1},
		{0x2b50, 0x2b50, 1},
		{0x2b55, 0x2b55, 1},
		{0x3030, 0x3030, 1},
		{0x303d, 0x303d, 1},
		{0x3297, 0x3297, 1},
		{0x3299, 0x3299, 1},
	},
	R32: []unicode.Range32{
		{0x1f000, 0x1f0ff, 1},
		{0x1f10d, 0x1f10f, 1},
		{0x1f12f, 0x1f12f, 1},
		{0x1f16c, 0x1f171, 1},
		{0x1f17e, 0x1f17f, 1},
		{0x1f18e, 0x1f18e, 1},
		{0x1f191, 0x1f19a, 1},
		{0x1f1ad, 0x1f1e5, 1},
		{0x1f201, 0x1f20f, 1},
		{0x1f21a, 0x1f21a, 1},
		{0x1f22f, 0x1f22f, 1},
		{0x1f232, 0x1f23a, 1},
		{0x1f23c, 0x1f23f, 1},
		{0x1f249, 0x1f3fa, 1},
		{0x1f400, 0x1f53d, 1},
		{0x1f546, 0x1f64f, 1},
		{0x1f680, 0x1f6ff, 1},
		{0x1f774, 0x1f77f, 1},
		{0x1f7d5, 0x1f7ff, 1},
		{0x1f80c, 0x1f80f, 1},
		{0x1f848, 0x1f84f, 1},
		{0x1f85a, 0x1f85f, 1},
		{0x1f888, 0x1f88f, 1},
		{0x1f8ae, 0x1f8ff, 1},
		{0x1f90c, 0x1f93a, 1},
		{0x1f93c, 0x1f945, 1},
		{0x1f947, 0x1faff, 1},
		{0x1fc00, 0x1fffd, 1},
	},
	LatinOffset: 2,
}
