package command

import (
	"fmt"

	"github.com/pixil98/go-mudcore/internal/actor"
	"github.com/pixil98/go-mudcore/internal/combat"
	"github.com/pixil98/go-mudcore/internal/commands"
	"github.com/pixil98/go-mudcore/internal/driver"
	"github.com/pixil98/go-mudcore/internal/game"
	"github.com/pixil98/go-mudcore/internal/listener"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	// Load static data
	dict, err := cfg.Data.BuildDictionary()
	if err != nil {
		return nil, fmt.Errorf("loading data: %w", err)
	}
	err = cfg.World.checkRooms(dict)
	if err != nil {
		return nil, err
	}

	// Build the simulation
	world := game.NewWorld(dict)
	out := game.NewOutput(world)
	err = world.InitializeMobs()
	if err != nil {
		return nil, fmt.Errorf("spawning mobs: %w", err)
	}
	engine := combat.NewEngine(world, out, cfg.Combat.Rules(cfg.World.RespawnRoom))
	handler := commands.NewHandler(world, out, engine, cfg.World.StartRoom)
	mud := actor.NewActor(handler, out, cfg.World.actorOpts()...)

	// Durations in data and combat config are converted at game.TickInterval, so
	// the driver always runs at that rate.
	drv := driver.NewMudDriver([]driver.Ticker{mud}, driver.WithTickLength(game.TickInterval))

	workers := service.WorkerList{
		"actor":  mud,
		"driver": drv,
	}

	// Session delivery
	delivery, nats, err := cfg.Delivery.build()
	if err != nil {
		return nil, fmt.Errorf("creating delivery: %w", err)
	}
	if nats != nil {
		workers["nats"] = nats
	}
	cm := listener.NewConnectionManager(mud, listener.WithDelivery(delivery))

	// Create Listeners
	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		w, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = w
	}
	workers["listeners"] = &listeners

	return workers, nil
}
