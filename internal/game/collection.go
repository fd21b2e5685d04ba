package game

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
)

// Entity is anything stored in a Collection: it has an identity, a room and vitals.
type Entity[K comparable] interface {
	Key() K
	Location() RoomId
	Vitals() (hp, maxHp int)
}

// Collection stores entities by id and keeps a per-room index of ids. An id is in the
// primary map exactly when it is in exactly one room bucket; Insert, Modify and Remove
// are the only mutation paths and maintain that together.
type Collection[K comparable, E Entity[K]] struct {
	kind     string
	byId     map[K]E
	byRoom   map[RoomId][]K
	onChange func(RoomId)
}

// NewCollection creates an empty collection. onChange, if set, is called with every room
// whose membership or occupant vitals change.
func NewCollection[K comparable, E Entity[K]](kind string, onChange func(RoomId)) *Collection[K, E] {
	return &Collection[K, E]{
		kind:     kind,
		byId:     map[K]E{},
		byRoom:   map[RoomId][]K{},
		onChange: onChange,
	}
}

// Len returns the number of entities.
func (c *Collection[K, E]) Len() int {
	return len(c.byId)
}

// Get returns a copy of the entity.
func (c *Collection[K, E]) Get(id K) (E, bool) {
	e, ok := c.byId[id]
	return e, ok
}

// MustGet returns the entity and panics when it is missing. Use it only for ids that
// were validated earlier in the same turn.
func (c *Collection[K, E]) MustGet(id K) E {
	e, ok := c.byId[id]
	if !ok {
		panic(fmt.Sprintf("%s %v: expected to exist", c.kind, id))
	}
	return e
}

// All iterates every entity in no particular order.
func (c *Collection[K, E]) All() iter.Seq2[K, E] {
	return func(yield func(K, E) bool) {
		for id, e := range c.byId {
			if !yield(id, e) {
				return
			}
		}
	}
}

// SortedIds returns every id in the collection in ascending order.
func SortedIds[K cmp.Ordered, E Entity[K]](c *Collection[K, E]) []K {
	ids := make([]K, 0, len(c.byId))
	for id := range c.byId {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// IdsInRoom returns the ids in a room in arrival order.
func (c *Collection[K, E]) IdsInRoom(room RoomId) []K {
	return slices.Clone(c.byRoom[room])
}

// IdsInRoomExcept returns the ids in a room other than except.
func (c *Collection[K, E]) IdsInRoomExcept(room RoomId, except K) []K {
	var out []K
	for _, id := range c.byRoom[room] {
		if id != except {
			out = append(out, id)
		}
	}
	return out
}

// InRoom returns copies of the entities in a room in arrival order.
func (c *Collection[K, E]) InRoom(room RoomId) []E {
	ids := c.byRoom[room]
	out := make([]E, 0, len(ids))
	for _, id := range ids {
		e, ok := c.byId[id]
		if !ok {
			panic(fmt.Sprintf("%s %v indexed in room %d without an entry", c.kind, id, room))
		}
		out = append(out, e)
	}
	return out
}

// Insert adds a new entity. Ids are unique by construction, so a duplicate panics.
func (c *Collection[K, E]) Insert(e E) {
	id := e.Key()
	if _, exists := c.byId[id]; exists {
		panic(fmt.Sprintf("%s %v inserted twice", c.kind, id))
	}
	c.byId[id] = e
	c.addToRoom(id, e.Location())
	c.changed(e.Location())
}

// Remove deletes an entity and returns it. Removing an unknown id is a no-op.
func (c *Collection[K, E]) Remove(id K) (E, bool) {
	e, ok := c.byId[id]
	if !ok {
		return e, false
	}
	delete(c.byId, id)
	c.removeFromRoom(id, e.Location())
	c.changed(e.Location())
	return e, true
}

// Modify applies f to the entity, moving it between room buckets when its room changes.
// Modifying an unknown id panics.
func (c *Collection[K, E]) Modify(id K, f func(*E)) {
	e, ok := c.byId[id]
	if !ok {
		panic(fmt.Sprintf("%s %v: modify of missing entity", c.kind, id))
	}

	beforeRoom := e.Location()
	beforeHp, beforeMax := e.Vitals()

	f(&e)
	if e.Key() != id {
		panic(fmt.Sprintf("%s %v: modify changed the id", c.kind, id))
	}
	c.byId[id] = e

	afterRoom := e.Location()
	if beforeRoom != afterRoom {
		c.removeFromRoom(id, beforeRoom)
		c.addToRoom(id, afterRoom)
		c.changed(beforeRoom)
		c.changed(afterRoom)
	}
	if hp, maxHp := e.Vitals(); hp != beforeHp || maxHp != beforeMax {
		c.changed(afterRoom)
	}
}

// CheckIndex verifies that the primary map and the room index agree.
func (c *Collection[K, E]) CheckIndex() error {
	seen := make(map[K]RoomId, len(c.byId))
	for room, ids := range c.byRoom {
		if len(ids) == 0 {
			return fmt.Errorf("%s: empty bucket for room %d", c.kind, room)
		}
		for _, id := range ids {
			if prev, dup := seen[id]; dup {
				return fmt.Errorf("%s %v: indexed in rooms %d and %d", c.kind, id, prev, room)
			}
			seen[id] = room
			e, ok := c.byId[id]
			if !ok {
				return fmt.Errorf("%s %v: indexed in room %d without an entry", c.kind, id, room)
			}
			if e.Location() != room {
				return fmt.Errorf("%s %v: indexed in room %d but located in %d", c.kind, id, room, e.Location())
			}
		}
	}
	if len(seen) != len(c.byId) {
		return fmt.Errorf("%s: %d entries but %d indexed", c.kind, len(c.byId), len(seen))
	}
	return nil
}

func (c *Collection[K, E]) changed(room RoomId) {
	if c.onChange != nil {
		c.onChange(room)
	}
}

func (c *Collection[K, E]) addToRoom(id K, room RoomId) {
	c.byRoom[room] = append(c.byRoom[room], id)
}

func (c *Collection[K, E]) removeFromRoom(id K, room RoomId) {
	ids, ok := c.byRoom[room]
	if !ok {
		panic(fmt.Sprintf("%s %v: room %d has no index bucket", c.kind, id, room))
	}
	i := slices.Index(ids, id)
	if i < 0 {
		panic(fmt.Sprintf("%s %v: not indexed in room %d", c.kind, id, room))
	}
	ids = slices.Delete(ids, i, i+1)
	if len(ids) == 0 {
		delete(c.byRoom, room)
		return
	}
	c.byRoom[room] = ids
}
