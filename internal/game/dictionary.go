package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-mudcore/internal/storage"
)

// Dictionary holds the immutable tables supplied by the data loader.
type Dictionary struct {
	Rooms        storage.Storer[RoomId, *Room]
	MobTemplates storage.Storer[MobTemplateId, *MobTemplate]
}

// NewDictionary checks that every exit and spawn refers to a loaded record.
func NewDictionary(rooms storage.Storer[RoomId, *Room], templates storage.Storer[MobTemplateId, *MobTemplate]) (*Dictionary, error) {
	d := &Dictionary{Rooms: rooms, MobTemplates: templates}
	if err := d.validate(); err != nil {
		return nil, fmt.Errorf("resolving references: %w", err)
	}
	return d, nil
}

func (d *Dictionary) validate() error {
	el := errors.NewErrorList()

	for id, room := range d.Rooms.GetAll() {
		for _, dir := range room.ExitNames() {
			if _, ok := d.Rooms.Get(room.Exits[dir].To); !ok {
				el.Add(fmt.Errorf("room %d: exit %q leads to unknown room %d", id, dir, room.Exits[dir].To))
			}
		}
		for _, spawn := range room.MobSpawns {
			if _, ok := d.MobTemplates.Get(spawn.MobTemplateId); !ok {
				el.Add(fmt.Errorf("room %d: spawn of unknown mob template %d", id, spawn.MobTemplateId))
			}
		}
	}

	return el.Err()
}
