package game

import (
	"fmt"
	"slices"

	"github.com/pixil98/go-errors"
	"gopkg.in/yaml.v3"
)

// Room is a static location loaded once at startup.
type Room struct {
	Id          RoomId              `yaml:"id"`
	Name        string              `yaml:"name"`
	Description RoomDescription     `yaml:"description"`
	Exits       map[string]RoomExit `yaml:"exits"`
	Objects     []RoomObject        `yaml:"objects,omitempty"`
	MobSpawns   []MobSpawn          `yaml:"mobSpawns,omitempty"`
}

// Key satisfies storage.Record.
func (r *Room) Key() RoomId {
	return r.Id
}

// Validate satisfies storage.ValidatingSpec. Exit destinations and spawn templates are
// checked against the other tables by NewDictionary.
func (r *Room) Validate() error {
	el := errors.NewErrorList()

	if r.Name == "" {
		el.Add(fmt.Errorf("room %d: name is required", r.Id))
	}
	for dir, exit := range r.Exits {
		if dir == "" {
			el.Add(fmt.Errorf("room %d: exit name is required", r.Id))
		}
		if exit.Condition != nil {
			el.Add(exit.Condition.Validate())
		}
	}
	for i, obj := range r.Objects {
		if obj.Name == "" {
			el.Add(fmt.Errorf("room %d: object %d: name is required", r.Id, i))
		}
		for j, cmd := range obj.Commands {
			if cmd.Command == "" {
				el.Add(fmt.Errorf("room %d: object %q: command %d: command is required", r.Id, obj.Name, j))
			}
		}
	}

	return el.Err()
}

// ExitNames returns the names of every exit in sorted order.
func (r *Room) ExitNames() []string {
	names := make([]string, 0, len(r.Exits))
	for name := range r.Exits {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ExitDirectionTo finds the exit that leads to the given room.
func (r *Room) ExitDirectionTo(to RoomId) (string, bool) {
	for _, name := range r.ExitNames() {
		if r.Exits[name].To == to {
			return name, true
		}
	}
	return "", false
}

// RoomExit leads to another room, optionally only while its condition holds.
// In yaml it is either a bare room id or a {to, condition} mapping.
type RoomExit struct {
	To        RoomId     `yaml:"to"`
	Condition *Condition `yaml:"condition,omitempty"`
}

func (e *RoomExit) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return value.Decode(&e.To)
	}

	var raw struct {
		To        *RoomId    `yaml:"to"`
		Condition *Condition `yaml:"condition"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.To == nil {
		return fmt.Errorf("line %d: exit requires a destination", value.Line)
	}
	e.To = *raw.To
	e.Condition = raw.Condition
	return nil
}

// RoomObject is scenery embedded in a room that can be looked at and carry commands.
type RoomObject struct {
	Name        string          `yaml:"name"`
	Aliases     []string        `yaml:"aliases,omitempty"`
	Description RoomDescription `yaml:"description"`
	Commands    []RoomCommand   `yaml:"commands,omitempty"`
}

// Matches reports whether str names this object.
func (o *RoomObject) Matches(str string) bool {
	return MatchesName(o.Name, o.Aliases, str)
}

// RoomCommand is a scripted verb attached to a room object.
type RoomCommand struct {
	Command    string      `yaml:"command"`
	Condition  *Condition  `yaml:"condition,omitempty"`
	Statements []Statement `yaml:"statements"`
}

// RoomDescription is either fixed text or a list of guarded fragments.
type RoomDescription struct {
	Static    string
	Fragments []DescriptionFragment
	Dynamic   bool
}

// DescriptionFragment is shown when its condition holds or it has none.
type DescriptionFragment struct {
	Fragment  string     `yaml:"fragment"`
	Condition *Condition `yaml:"condition,omitempty"`
}

func StaticDescription(text string) RoomDescription {
	return RoomDescription{Static: text}
}

func DynamicDescription(fragments ...DescriptionFragment) RoomDescription {
	return RoomDescription{Fragments: fragments, Dynamic: true}
}

func (d *RoomDescription) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		d.Dynamic = false
		return value.Decode(&d.Static)
	case yaml.SequenceNode:
		d.Dynamic = true
		return value.Decode(&d.Fragments)
	default:
		return fmt.Errorf("line %d: description must be text or a list of fragments", value.Line)
	}
}

// MobSpawn names a template to instantiate in a room at world initialization.
type MobSpawn struct {
	MobTemplateId MobTemplateId `yaml:"mobTemplateId"`
}
