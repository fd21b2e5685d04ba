package game

// Target is something a player named in a room. At most one field is set.
type Target struct {
	Mob    *Mob
	Object *RoomObject
}

// Found reports whether the name resolved to anything.
func (t Target) Found() bool {
	return t.Mob != nil || t.Object != nil
}

// ResolveTarget finds what str names in a room. Mobs are checked before room objects,
// each in the order they appear.
func (w *World) ResolveTarget(room *Room, str string) Target {
	for _, m := range w.Mobs.InRoom(room.Id) {
		if m.Template.Matches(str) {
			return Target{Mob: &m}
		}
	}
	for i := range room.Objects {
		if room.Objects[i].Matches(str) {
			return Target{Object: &room.Objects[i]}
		}
	}
	return Target{}
}
