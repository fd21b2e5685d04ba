package command

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-mudcore/internal/actor"
	"github.com/pixil98/go-mudcore/internal/combat"
	"github.com/pixil98/go-mudcore/internal/game"
)

type Config struct {
	Data      DataConfig       `json:"data"`
	World     WorldConfig      `json:"world"`
	Combat    combat.Config    `json:"combat"`
	Listeners []ListenerConfig `json:"listeners"`
	Delivery  DeliveryConfig   `json:"delivery"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if len(c.Listeners) == 0 {
		el.Add(fmt.Errorf("at least one listener is required"))
	}
	for i, l := range c.Listeners {
		if err := l.validate(); err != nil {
			el.Add(fmt.Errorf("listener %d: %w", i, err))
		}
	}

	el.Add(c.Data.validate())
	el.Add(c.World.validate())
	if err := c.Combat.Validate(); err != nil {
		el.Add(fmt.Errorf("combat: %w", err))
	}
	el.Add(c.Delivery.validate())

	return el.Err()
}

type WorldConfig struct {
	StartRoom   game.RoomId `json:"start_room"`
	RespawnRoom game.RoomId `json:"respawn_room"`
	QueueSize   int         `json:"queue_size,omitempty"`
}

func (c *WorldConfig) validate() error {
	if c.QueueSize < 0 {
		return fmt.Errorf("world: queue_size must not be negative")
	}
	return nil
}

// checkRooms makes sure the configured rooms exist once the data is loaded.
func (c *WorldConfig) checkRooms(dict *game.Dictionary) error {
	el := errors.NewErrorList()

	if _, ok := dict.Rooms.Get(c.StartRoom); !ok {
		el.Add(fmt.Errorf("world: start_room %d does not exist", c.StartRoom))
	}
	if _, ok := dict.Rooms.Get(c.RespawnRoom); !ok {
		el.Add(fmt.Errorf("world: respawn_room %d does not exist", c.RespawnRoom))
	}

	return el.Err()
}

func (c *WorldConfig) actorOpts() []actor.ActorOpt {
	if c.QueueSize == 0 {
		return nil
	}
	return []actor.ActorOpt{actor.WithQueueSize(c.QueueSize)}
}
