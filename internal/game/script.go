package game

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

type ConditionKind int

const (
	ConditionEquals ConditionKind = iota
	ConditionNotEquals
)

// Condition compares a room variable against a literal. Missing variables read as 0.
// In yaml: {equals: [var, value]} or {notEquals: [var, value]}.
type Condition struct {
	Kind  ConditionKind
	Var   string
	Value int
}

func Equals(v string, value int) *Condition {
	return &Condition{Kind: ConditionEquals, Var: v, Value: value}
}

func NotEquals(v string, value int) *Condition {
	return &Condition{Kind: ConditionNotEquals, Var: v, Value: value}
}

func (c *Condition) Validate() error {
	if c.Var == "" {
		return fmt.Errorf("condition: variable name is required")
	}
	return nil
}

func (c *Condition) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Equals    []any `yaml:"equals"`
		NotEquals []any `yaml:"notEquals"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	var err error
	switch {
	case raw.Equals != nil && raw.NotEquals != nil:
		return fmt.Errorf("line %d: condition must have exactly one of equals or notEquals", value.Line)
	case raw.Equals != nil:
		c.Kind = ConditionEquals
		c.Var, c.Value, err = varValuePair(raw.Equals)
	case raw.NotEquals != nil:
		c.Kind = ConditionNotEquals
		c.Var, c.Value, err = varValuePair(raw.NotEquals)
	default:
		return fmt.Errorf("line %d: condition must have one of equals or notEquals", value.Line)
	}
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	return nil
}

func varValuePair(raw []any) (string, int, error) {
	if len(raw) != 2 {
		return "", 0, fmt.Errorf("expected [variable, value], got %d elements", len(raw))
	}
	name, ok := raw[0].(string)
	if !ok {
		return "", 0, fmt.Errorf("variable name must be a string")
	}
	value, ok := raw[1].(int)
	if !ok {
		return "", 0, fmt.Errorf("value for %q must be an integer", name)
	}
	return name, value, nil
}

type StatementKind int

const (
	StatementSetRoomVar StatementKind = iota
	StatementResetRoomVarAfterTicks
	StatementTellSelf
	StatementTellOthers
	StatementTellRoom
)

// Statement is one step of a scripted room command.
type Statement struct {
	Kind  StatementKind
	Var   string
	Value int
	Delay TickDuration
	Text  string
}

func (s *Statement) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		SetRoomVar             []any `yaml:"setRoomVar"`
		ResetRoomVarAfterTicks *struct {
			Var     string `yaml:"var"`
			Ticks   int64  `yaml:"ticks"`
			Message string `yaml:"message"`
		} `yaml:"resetRoomVarAfterTicks"`
		TellSelf   *string `yaml:"tellSelf"`
		TellOthers *string `yaml:"tellOthers"`
		TellRoom   *string `yaml:"tellRoom"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	set := 0
	if raw.SetRoomVar != nil {
		set++
		name, v, err := varValuePair(raw.SetRoomVar)
		if err != nil {
			return fmt.Errorf("line %d: setRoomVar: %w", value.Line, err)
		}
		*s = Statement{Kind: StatementSetRoomVar, Var: name, Value: v}
	}
	if r := raw.ResetRoomVarAfterTicks; r != nil {
		set++
		if r.Var == "" {
			return fmt.Errorf("line %d: resetRoomVarAfterTicks: var is required", value.Line)
		}
		*s = Statement{Kind: StatementResetRoomVarAfterTicks, Var: r.Var, Delay: TickDuration(r.Ticks), Text: r.Message}
	}
	if raw.TellSelf != nil {
		set++
		*s = Statement{Kind: StatementTellSelf, Text: *raw.TellSelf}
	}
	if raw.TellOthers != nil {
		set++
		*s = Statement{Kind: StatementTellOthers, Text: *raw.TellOthers}
	}
	if raw.TellRoom != nil {
		set++
		*s = Statement{Kind: StatementTellRoom, Text: *raw.TellRoom}
	}

	if set != 1 {
		return fmt.Errorf("line %d: statement must have exactly one instruction, found %d", value.Line, set)
	}
	return nil
}

// EvalCondition evaluates c against the room's variables.
func (w *World) EvalCondition(c *Condition, room RoomId) bool {
	v := w.RoomVar(room, c.Var)
	switch c.Kind {
	case ConditionEquals:
		return v == c.Value
	case ConditionNotEquals:
		return v != c.Value
	default:
		panic(fmt.Sprintf("unknown condition kind %d", c.Kind))
	}
}

// conditionHolds treats an absent condition as true.
func (w *World) conditionHolds(c *Condition, room RoomId) bool {
	return c == nil || w.EvalCondition(c, room)
}

// EvalDescription renders a description. The second result is false when no
// fragment qualifies.
func (w *World) EvalDescription(d RoomDescription, room RoomId) (string, bool) {
	if !d.Dynamic {
		return d.Static, true
	}

	var fragments []string
	for _, f := range d.Fragments {
		if w.conditionHolds(f.Condition, room) {
			fragments = append(fragments, f.Fragment)
		}
	}
	if len(fragments) == 0 {
		return "", false
	}
	return strings.Join(fragments, " "), true
}

// VisibleExits lists the exits of a room whose guards currently hold.
func (w *World) VisibleExits(room *Room) []string {
	var out []string
	for _, name := range room.ExitNames() {
		if w.conditionHolds(room.Exits[name].Condition, room.Id) {
			out = append(out, name)
		}
	}
	return out
}

// RoomSpecificCommand is the outcome of resolving a verb against a room.
// Exactly one of Exit or Command is set.
type RoomSpecificCommand struct {
	Exit    *RoomId
	Command *RoomCommand
}

// ResolveRoomCommand matches a verb against the room's exits and object commands.
// Static exits win, then open conditional exits, then the first object (in
// declaration order) matching args that has an enabled command with this verb.
func (w *World) ResolveRoomCommand(verb, args string, roomId RoomId) (*RoomSpecificCommand, error) {
	room, ok := w.Rooms.Get(roomId)
	if !ok {
		return nil, fmt.Errorf("resolving room command: %w", ErrRoomNotFound)
	}

	if exit, ok := room.Exits[verb]; ok && exit.Condition == nil {
		to := exit.To
		return &RoomSpecificCommand{Exit: &to}, nil
	}
	if exit, ok := room.Exits[verb]; ok && w.EvalCondition(exit.Condition, roomId) {
		to := exit.To
		return &RoomSpecificCommand{Exit: &to}, nil
	}

	for i := range room.Objects {
		obj := &room.Objects[i]
		if !obj.Matches(args) {
			continue
		}
		for j := range obj.Commands {
			cmd := &obj.Commands[j]
			if cmd.Command == verb && w.conditionHolds(cmd.Condition, roomId) {
				return &RoomSpecificCommand{Command: cmd}, nil
			}
		}
	}

	return nil, nil
}
