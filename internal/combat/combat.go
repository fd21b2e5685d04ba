package combat

import (
	"fmt"

	"github.com/pixil98/go-mudcore/internal/game"
)

// Engine runs the aggro, targeting, damage, death and healing rules. Like the world
// it drives, it must only be used from the goroutine that owns the world.
type Engine struct {
	world *game.World
	out   *game.Output
	rules Rules
}

// NewEngine creates a combat engine over a world and its output layer.
func NewEngine(w *game.World, out *game.Output, rules Rules) *Engine {
	return &Engine{
		world: w,
		out:   out,
		rules: rules,
	}
}

// Rules returns the rules the engine plays by.
func (e *Engine) Rules() Rules {
	return e.rules
}

// NewPlayer builds a full-health player with a fresh attack phase.
func (e *Engine) NewPlayer(id game.PlayerId, name string, room game.RoomId) game.Player {
	return game.Player{
		Id:           id,
		Name:         name,
		RoomId:       room,
		Hp:           e.rules.PlayerMaxHp,
		MaxHp:        e.rules.PlayerMaxHp,
		AttackOffset: e.rules.PlayerAttackPeriod.RandomOffset(e.world.Rand()),
	}
}

// Kill makes the player attack the mob named target. Only the named mob becomes
// hostile to the player.
func (e *Engine) Kill(id game.PlayerId, target string) error {
	p, ok := e.world.Players.Get(id)
	if !ok {
		return fmt.Errorf("kill: %w", game.ErrPlayerNotFound)
	}
	room, err := e.world.Room(p.RoomId)
	if err != nil {
		return fmt.Errorf("kill: %w", err)
	}

	found := e.world.ResolveTarget(room, target)
	switch {
	case found.Mob != nil:
		e.engage(p, *found.Mob)
	case found.Object != nil:
		e.out.Tell(id, game.TextLine("You cannot kill that."))
	default:
		e.out.Tell(id, game.TextLine("You do not see that here."))
	}
	return nil
}

func (e *Engine) engage(p game.Player, m game.Mob) {
	mobId := m.Id
	e.world.Players.Modify(p.Id, func(p *game.Player) {
		p.AttackTarget = &mobId
	})
	e.world.Mobs.Modify(m.Id, func(m *game.Mob) {
		if m.HostileTo == nil {
			m.HostileTo = map[game.PlayerId]struct{}{}
		}
		m.HostileTo[p.Id] = struct{}{}
	})

	e.out.Tell(p.Id, game.TextLine(fmt.Sprintf("You attack the %s.", m.Template.Name)))
	e.out.TellRoomExcept(p.RoomId, p.Id, game.TextLine(fmt.Sprintf("%s attacks the %s.", p.Name, m.Template.Name)))
}

// Tick runs every combat rule that is due at the world's current tick.
func (e *Engine) Tick() {
	e.TickPlayerAttacks()
	e.TickMobAttacks()
	e.TickHealPlayers()
}

// TickPlayerAttacks lets every player whose attack phase falls on this tick act.
func (e *Engine) TickPlayerAttacks() {
	now := e.world.Now()

	for _, id := range game.SortedIds(e.world.Players) {
		p, ok := e.world.Players.Get(id)
		if !ok || !now.IsOnDivision(e.rules.PlayerAttackPeriod, p.AttackOffset) {
			continue
		}

		if p.AttackTarget == nil {
			for _, m := range e.world.Mobs.InRoom(p.RoomId) {
				if m.IsHostileTo(p.Id) {
					e.engage(p, m)
					break
				}
			}
			continue
		}

		m, ok := e.world.Mobs.Get(*p.AttackTarget)
		if !ok || m.RoomId != p.RoomId {
			e.world.Players.Modify(id, func(p *game.Player) {
				p.AttackTarget = nil
			})
			continue
		}

		e.playerHits(p, m)
	}
}

func (e *Engine) playerHits(p game.Player, m game.Mob) {
	name := m.Template.Name
	e.out.Tell(p.Id, game.TextLine(fmt.Sprintf("You hit the %s.", name)))
	e.out.TellRoomExcept(p.RoomId, p.Id, game.TextLine(fmt.Sprintf("%s hits the %s.", p.Name, name)))

	damage := e.rules.PlayerDamage
	if m.Hp > damage {
		e.world.Mobs.Modify(m.Id, func(m *game.Mob) {
			m.Hp -= damage
		})
		return
	}

	e.world.Mobs.Remove(m.Id)
	e.world.ScheduleRespawn(e.rules.MobRespawnDelay, game.MobRespawn{Room: m.RoomId, Template: m.Template.Id})
	e.out.TellRoom(m.RoomId, game.TextLine(fmt.Sprintf("The %s dies.", name)))

	for _, id := range game.SortedIds(e.world.Players) {
		if e.world.Players.MustGet(id).TargetsMob(m.Id) {
			e.world.Players.Modify(id, func(p *game.Player) {
				p.AttackTarget = nil
			})
		}
	}
}

// TickMobAttacks lets every mob whose attack phase falls on this tick act.
func (e *Engine) TickMobAttacks() {
	now := e.world.Now()

	for _, id := range game.SortedIds(e.world.Mobs) {
		m, ok := e.world.Mobs.Get(id)
		if !ok || !now.IsOnDivision(m.Template.AttackPeriod(), m.AttackOffset) {
			continue
		}

		e.world.Mobs.Modify(id, func(m *game.Mob) {
			for pid := range m.HostileTo {
				if _, ok := e.world.Players.Get(pid); !ok {
					delete(m.HostileTo, pid)
				}
			}
			if m.AttackTarget != nil {
				target, ok := e.world.Players.Get(*m.AttackTarget)
				if !ok || target.RoomId != m.RoomId {
					m.AttackTarget = nil
				}
			}
		})
		m = e.world.Mobs.MustGet(id)

		if m.AttackTarget == nil {
			e.pickTarget(m)
			continue
		}

		e.mobHits(m, e.world.Players.MustGet(*m.AttackTarget))
	}
}

func (e *Engine) pickTarget(m game.Mob) {
	var candidates []game.PlayerId
	for _, pid := range e.world.Players.IdsInRoom(m.RoomId) {
		if m.IsHostileTo(pid) {
			candidates = append(candidates, pid)
		}
	}
	if len(candidates) == 0 {
		return
	}

	target := e.world.Players.MustGet(candidates[e.world.Rand().IntN(len(candidates))])
	targetId := target.Id
	e.world.Mobs.Modify(m.Id, func(m *game.Mob) {
		m.AttackTarget = &targetId
	})

	e.out.Tell(target.Id, game.TextLine(fmt.Sprintf("The %s attacks you.", m.Template.Name)))
	e.out.TellRoomExcept(m.RoomId, target.Id, game.TextLine(fmt.Sprintf("The %s attacks %s.", m.Template.Name, target.Name)))
}

func (e *Engine) mobHits(m game.Mob, p game.Player) {
	name := m.Template.Name
	e.out.Tell(p.Id, game.TextLine(fmt.Sprintf("The %s hits you.", name)))
	e.out.TellRoomExcept(p.RoomId, p.Id, game.TextLine(fmt.Sprintf("The %s hits %s.", name, p.Name)))

	damage := m.Template.Damage
	if damage < p.Hp {
		e.world.Players.Modify(p.Id, func(p *game.Player) {
			p.Hp -= damage
		})
		return
	}

	e.killPlayer(p)
}

// killPlayer restores the player to full health in the respawn room and makes every
// mob forget them.
func (e *Engine) killPlayer(p game.Player) {
	e.out.Tell(p.Id, game.NewSpan("You die.").WithColor(game.ColorRed).Line())
	e.out.TellRoomExcept(p.RoomId, p.Id, game.TextLine(fmt.Sprintf("%s dies.", p.Name)))

	respawn, err := e.world.Room(e.rules.RespawnRoom)
	if err != nil {
		panic(fmt.Sprintf("respawn room %d: %v", e.rules.RespawnRoom, err))
	}

	e.world.Players.Modify(p.Id, func(p *game.Player) {
		p.Hp = p.MaxHp
		p.AttackTarget = nil
		p.RoomId = respawn.Id
	})

	for _, id := range game.SortedIds(e.world.Mobs) {
		m := e.world.Mobs.MustGet(id)
		if !m.IsHostileTo(p.Id) && !m.TargetsPlayer(p.Id) {
			continue
		}
		e.world.Mobs.Modify(id, func(m *game.Mob) {
			delete(m.HostileTo, p.Id)
			if m.TargetsPlayer(p.Id) {
				m.AttackTarget = nil
			}
		})
	}

	e.out.TellRoomExcept(respawn.Id, p.Id, game.TextLine(fmt.Sprintf("%s appears.", p.Name)))
	e.out.Tell(p.Id, e.world.DescribeRoom(p.Id, respawn)...)
}

// TickHealPlayers regenerates players that no mob is hostile to.
func (e *Engine) TickHealPlayers() {
	if !e.world.Now().IsOnDivision(e.rules.HealPeriod, 0) {
		return
	}

	hunted := map[game.PlayerId]struct{}{}
	for _, m := range e.world.Mobs.All() {
		for pid := range m.HostileTo {
			hunted[pid] = struct{}{}
		}
	}

	for _, id := range game.SortedIds(e.world.Players) {
		if _, ok := hunted[id]; ok {
			continue
		}
		p := e.world.Players.MustGet(id)
		if p.Hp >= p.MaxHp {
			continue
		}

		heal := max(1, p.MaxHp/e.rules.HealDivisor)
		e.world.Players.Modify(id, func(p *game.Player) {
			p.Hp = min(p.MaxHp, p.Hp+heal)
		})
	}
}

// Flee clears a player's attack target and reports whether one was set.
func (e *Engine) Flee(id game.PlayerId) bool {
	p, ok := e.world.Players.Get(id)
	if !ok || p.AttackTarget == nil {
		return false
	}
	e.world.Players.Modify(id, func(p *game.Player) {
		p.AttackTarget = nil
	})
	return true
}
