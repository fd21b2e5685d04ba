package game

import (
	"slices"
)

// Occupant is a compact view of a player or mob for the room panel.
type Occupant struct {
	Name  string `json:"name"`
	Hp    int    `json:"hp"`
	MaxHp int    `json:"maxHp"`
}

// RoomSnapshot lists who is in the recipient's room.
type RoomSnapshot struct {
	Self   Occupant   `json:"self"`
	Others []Occupant `json:"others"`
	Mobs   []Occupant `json:"mobs"`
}

// Payload is everything one player is told after one event.
type Payload struct {
	Lines []Line        `json:"lines,omitempty"`
	Room  *RoomSnapshot `json:"room,omitempty"`
}

// Sink receives payloads for one connected player.
type Sink interface {
	Send(Payload) error
}

// Output collects what each player should be told while an event is processed.
// Lines for one player keep their enqueue order.
type Output struct {
	world *World

	lines          map[PlayerId][]Line
	changedRooms   map[RoomId]struct{}
	changedPlayers map[PlayerId]struct{}
}

// NewOutput creates the output layer for w and subscribes it to room changes.
func NewOutput(w *World) *Output {
	o := &Output{
		world:          w,
		lines:          map[PlayerId][]Line{},
		changedRooms:   map[RoomId]struct{}{},
		changedPlayers: map[PlayerId]struct{}{},
	}
	w.ObserveRoomChanges(o.MarkRoomChanged)
	return o
}

// Tell queues lines for one player.
func (o *Output) Tell(id PlayerId, lines ...Line) {
	o.lines[id] = append(o.lines[id], lines...)
}

// TellMany queues a line for each player.
func (o *Output) TellMany(ids []PlayerId, line Line) {
	for _, id := range ids {
		o.Tell(id, line)
	}
}

// TellRoom queues a line for every player in a room.
func (o *Output) TellRoom(room RoomId, line Line) {
	o.TellMany(o.world.Players.IdsInRoom(room), line)
}

// TellRoomExcept queues a line for every player in a room other than except.
func (o *Output) TellRoomExcept(room RoomId, except PlayerId, line Line) {
	o.TellMany(o.world.Players.IdsInRoomExcept(room, except), line)
}

// MarkRoomChanged asks for a fresh snapshot for everyone in the room.
func (o *Output) MarkRoomChanged(room RoomId) {
	o.changedRooms[room] = struct{}{}
}

// MarkPlayerChanged asks for a fresh snapshot for one player.
func (o *Output) MarkPlayerChanged(id PlayerId) {
	o.changedPlayers[id] = struct{}{}
}

// Pending returns the lines queued for a player.
func (o *Output) Pending(id PlayerId) []Line {
	return slices.Clone(o.lines[id])
}

// Flush hands every affected player their payload, in player id order, then clears
// all queued output. Snapshots are built only for players still in the world.
func (o *Output) Flush(deliver func(PlayerId, Payload)) {
	resync := map[PlayerId]struct{}{}
	for room := range o.changedRooms {
		for _, id := range o.world.Players.IdsInRoom(room) {
			resync[id] = struct{}{}
		}
	}
	for id := range o.changedPlayers {
		resync[id] = struct{}{}
	}

	recipients := make([]PlayerId, 0, len(o.lines)+len(resync))
	for id := range o.lines {
		recipients = append(recipients, id)
	}
	for id := range resync {
		if _, queued := o.lines[id]; !queued {
			recipients = append(recipients, id)
		}
	}
	slices.Sort(recipients)

	for _, id := range recipients {
		payload := Payload{Lines: o.lines[id]}
		if _, ok := resync[id]; ok {
			payload.Room = o.snapshot(id)
		}
		if len(payload.Lines) == 0 && payload.Room == nil {
			continue
		}
		deliver(id, payload)
	}

	clear(o.lines)
	clear(o.changedRooms)
	clear(o.changedPlayers)
}

func (o *Output) snapshot(id PlayerId) *RoomSnapshot {
	self, ok := o.world.Players.Get(id)
	if !ok {
		return nil
	}

	snap := &RoomSnapshot{
		Self:   Occupant{Name: self.Name, Hp: self.Hp, MaxHp: self.MaxHp},
		Others: []Occupant{},
		Mobs:   []Occupant{},
	}
	for _, p := range o.world.Players.InRoom(self.RoomId) {
		if p.Id == id {
			continue
		}
		snap.Others = append(snap.Others, Occupant{Name: p.Name, Hp: p.Hp, MaxHp: p.MaxHp})
	}
	for _, m := range o.world.Mobs.InRoom(self.RoomId) {
		snap.Mobs = append(snap.Mobs, Occupant{Name: m.Template.Name, Hp: m.Hp, MaxHp: m.Template.MaxHp})
	}
	return snap
}
