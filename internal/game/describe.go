package game

// DescribeRoom renders the room as seen by viewer: its name, its description when one
// applies, who else is there and the exits currently open.
func (w *World) DescribeRoom(viewer PlayerId, room *Room) []Line {
	lines := []Line{NewSpan(room.Name).WithBold().Line()}

	if text, ok := w.EvalDescription(room.Description, room.Id); ok {
		lines = append(lines, TextLine(text))
	}

	var seen [][]Span
	for _, p := range w.Players.InRoom(room.Id) {
		if p.Id == viewer {
			continue
		}
		seen = append(seen, []Span{NewSpan(p.Name).WithColor(ColorBlue)})
	}
	for _, m := range w.Mobs.InRoom(room.Id) {
		seen = append(seen, []Span{NewSpan("a "), NewSpan(m.Template.Name).WithColor(ColorOrange)})
	}
	if len(seen) > 0 {
		lines = append(lines, NewLine(NewSpan("You see ")).Append(AndSpans(seen)...).Append(NewSpan(" here.")))
	}

	exits := w.VisibleExits(room)
	if len(exits) == 0 {
		lines = append(lines, TextLine("There are no exits here."))
	} else {
		groups := make([][]Span, 0, len(exits))
		for _, name := range exits {
			groups = append(groups, []Span{NewSpan(name).WithColor(ColorBlue)})
		}
		lines = append(lines, NewLine(NewSpan("You can go ")).Append(AndSpans(groups)...).Append(NewSpan(" from here.")))
	}

	return lines
}
