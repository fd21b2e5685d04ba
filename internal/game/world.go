package game

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/pixil98/go-mudcore/internal/storage"
)

// RoomVarReset is a delayed reset of a room variable to zero.
type RoomVarReset struct {
	Room    RoomId
	Var     string
	Message string
}

// MobRespawn is a delayed re-creation of a mob from its template.
type MobRespawn struct {
	Room     RoomId
	Template MobTemplateId
}

type roomVarKey struct {
	room RoomId
	name string
}

// World is the mutable simulation state. It is owned by a single goroutine and is
// not safe for concurrent use.
type World struct {
	Rooms        storage.Storer[RoomId, *Room]
	MobTemplates storage.Storer[MobTemplateId, *MobTemplate]

	Players *Collection[PlayerId, Player]
	Mobs    *Collection[MobId, Mob]

	roomVars  map[roomVarKey]int
	clock     Tick
	varResets *Schedule[RoomVarReset]
	respawns  *Schedule[MobRespawn]

	playerIds *IdSource[Player]
	mobIds    *IdSource[Mob]
	rng       *rand.Rand

	roomObservers []func(RoomId)
}

type WorldOpt func(*worldConfig)

type worldConfig struct {
	rng           *rand.Rand
	firstPlayerId uint64
	firstMobId    uint64
}

// WithRand sets the random source used for phase offsets and combat choices.
func WithRand(rng *rand.Rand) WorldOpt {
	return func(c *worldConfig) {
		c.rng = rng
	}
}

// WithFirstIds seeds the player and mob id sources.
func WithFirstIds(player, mob uint64) WorldOpt {
	return func(c *worldConfig) {
		c.firstPlayerId = player
		c.firstMobId = mob
	}
}

// NewWorld creates a world at tick zero with no players and no mobs. Call
// InitializeMobs to populate the rooms' spawn lists.
func NewWorld(dict *Dictionary, opts ...WorldOpt) *World {
	cfg := worldConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	w := &World{
		Rooms:        dict.Rooms,
		MobTemplates: dict.MobTemplates,
		roomVars:     map[roomVarKey]int{},
		varResets:    NewSchedule[RoomVarReset](),
		respawns:     NewSchedule[MobRespawn](),
		playerIds:    NewIdSource[Player](cfg.firstPlayerId),
		mobIds:       NewIdSource[Mob](cfg.firstMobId),
		rng:          cfg.rng,
	}
	w.Players = NewCollection[PlayerId, Player]("player", w.roomChanged)
	w.Mobs = NewCollection[MobId, Mob]("mob", w.roomChanged)
	return w
}

// ObserveRoomChanges registers f to be called for every room whose occupants or
// occupant vitals change.
func (w *World) ObserveRoomChanges(f func(RoomId)) {
	w.roomObservers = append(w.roomObservers, f)
}

func (w *World) roomChanged(room RoomId) {
	for _, f := range w.roomObservers {
		f(room)
	}
}

// Rand returns the world's random source.
func (w *World) Rand() *rand.Rand {
	return w.rng
}

// Room looks up a static room.
func (w *World) Room(id RoomId) (*Room, error) {
	room, ok := w.Rooms.Get(id)
	if !ok {
		return nil, fmt.Errorf("room %d: %w", id, ErrRoomNotFound)
	}
	return room, nil
}

// RoomVar reads a room variable. Unset variables read as zero.
func (w *World) RoomVar(room RoomId, name string) int {
	return w.roomVars[roomVarKey{room: room, name: name}]
}

// SetRoomVar stores a room variable. Setting zero removes the entry.
func (w *World) SetRoomVar(room RoomId, name string, value int) {
	key := roomVarKey{room: room, name: name}
	if value == 0 {
		delete(w.roomVars, key)
		return
	}
	w.roomVars[key] = value
}

// RoomVarCount returns the number of stored room variables.
func (w *World) RoomVarCount() int {
	return len(w.roomVars)
}

// Now returns the current tick.
func (w *World) Now() Tick {
	return w.clock
}

// Advance moves the clock forward one tick and returns the new tick.
func (w *World) Advance() Tick {
	w.clock = w.clock.Next()
	return w.clock
}

// ScheduleRoomVarReset arranges for r to fire after d ticks.
func (w *World) ScheduleRoomVarReset(d TickDuration, r RoomVarReset) Tick {
	at := w.clock.Add(d)
	w.varResets.Add(at, r)
	return at
}

// ScheduleRespawn arranges for r to fire after d ticks.
func (w *World) ScheduleRespawn(d TickDuration, r MobRespawn) Tick {
	at := w.clock.Add(d)
	w.respawns.Add(at, r)
	return at
}

// DueRoomVarResets removes and returns resets due at or before the current tick.
func (w *World) DueRoomVarResets() []RoomVarReset {
	return w.varResets.PopDue(w.clock)
}

// DueRespawns removes and returns respawns due at or before the current tick.
func (w *World) DueRespawns() []MobRespawn {
	return w.respawns.PopDue(w.clock)
}

// PendingRespawns returns the number of scheduled respawns.
func (w *World) PendingRespawns() int {
	return w.respawns.Len()
}

// PendingRoomVarResets returns the number of scheduled room variable resets.
func (w *World) PendingRoomVarResets() int {
	return w.varResets.Len()
}

// NewPlayerId allocates a player id.
func (w *World) NewPlayerId() PlayerId {
	return w.playerIds.Next()
}

// SpawnMob creates a mob from a template in a room.
func (w *World) SpawnMob(room RoomId, templateId MobTemplateId) (MobId, error) {
	if _, ok := w.Rooms.Get(room); !ok {
		return 0, fmt.Errorf("spawning mob in room %d: %w", room, ErrRoomNotFound)
	}
	template, ok := w.MobTemplates.Get(templateId)
	if !ok {
		return 0, fmt.Errorf("spawning mob template %d: %w", templateId, ErrMobNotFound)
	}

	id := w.mobIds.Next()
	w.Mobs.Insert(NewMob(id, room, *template, w.rng))
	return id, nil
}

// InitializeMobs spawns every room's mob list, visiting rooms in id order.
func (w *World) InitializeMobs() error {
	var ids []RoomId
	for id := range w.Rooms.GetAll() {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, roomId := range ids {
		room, _ := w.Rooms.Get(roomId)
		for _, spawn := range room.MobSpawns {
			if _, err := w.SpawnMob(roomId, spawn.MobTemplateId); err != nil {
				return fmt.Errorf("initializing mobs: %w", err)
			}
		}
	}
	return nil
}
