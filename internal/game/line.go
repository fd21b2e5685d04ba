package game

import "strings"

// Colors understood by clients.
const (
	ColorWhite  = "white"
	ColorBlue   = "blue"
	ColorOrange = "orange"
	ColorYellow = "yellow"
	ColorRed    = "red"
)

// Span is a run of text with optional styling.
type Span struct {
	Text  string  `json:"text"`
	Bold  *bool   `json:"bold,omitempty"`
	Color *string `json:"color,omitempty"`
}

// Line is one line of output made of styled spans.
type Line struct {
	Spans []Span `json:"spans"`
}

// NewSpan creates an unstyled span.
func NewSpan(text string) Span {
	return Span{Text: text}
}

// WithBold returns a copy of the span rendered bold.
func (s Span) WithBold() Span {
	b := true
	s.Bold = &b
	return s
}

// WithColor returns a copy of the span with the given color.
func (s Span) WithColor(color string) Span {
	s.Color = &color
	return s
}

// Line wraps the span in a line of its own.
func (s Span) Line() Line {
	return Line{Spans: []Span{s}}
}

// NewLine builds a line from spans.
func NewLine(spans ...Span) Line {
	return Line{Spans: spans}
}

// TextLine is a line holding a single unstyled span.
func TextLine(text string) Line {
	return NewSpan(text).Line()
}

// Append returns a line with spans added at the end.
func (l Line) Append(spans ...Span) Line {
	out := make([]Span, 0, len(l.Spans)+len(spans))
	out = append(out, l.Spans...)
	out = append(out, spans...)
	return Line{Spans: out}
}

// String concatenates the span texts, dropping styling.
func (l Line) String() string {
	var sb strings.Builder
	for _, s := range l.Spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// AndSpans joins groups of spans as "a, b and c".
func AndSpans(groups [][]Span) []Span {
	var out []Span
	for i, g := range groups {
		switch {
		case i == 0:
		case i == len(groups)-1:
			out = append(out, NewSpan(" and "))
		default:
			out = append(out, NewSpan(", "))
		}
		out = append(out, g...)
	}
	return out
}
