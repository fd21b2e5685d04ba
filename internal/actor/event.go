package actor

import "github.com/pixil98/go-mudcore/internal/game"

// Event is something the actor applies to the world.
type Event interface {
	event()
}

// Connected asks for a new player. The new id is sent on Reply, which is closed
// without a value if the player could not be created. Reply should be buffered.
type Connected struct {
	Name  string
	Sink  game.Sink
	Reply chan<- game.PlayerId
}

// Disconnected removes a player and stops delivery to its sink.
type Disconnected struct {
	Player game.PlayerId
}

// Command is one line of input from a player.
type Command struct {
	Player game.PlayerId
	Line   string
}

// Tick advances the simulation clock.
type Tick struct{}

func (Connected) event()    {}
func (Disconnected) event() {}
func (Command) event()      {}
func (Tick) event()         {}
