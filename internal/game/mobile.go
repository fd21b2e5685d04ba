package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/pixil98/go-errors"
)

// MobTemplate defines a kind of creature. Many Mob instances can be spawned from one template.
type MobTemplate struct {
	Id          MobTemplateId `yaml:"id"`
	Name        string        `yaml:"name"`
	Aliases     []string      `yaml:"aliases,omitempty"`
	Description string        `yaml:"description"`
	MaxHp       int           `yaml:"maxHp"`
	Damage      int           `yaml:"damage"`

	// AttackPeriodSecs is converted to ticks by AttackPeriod.
	AttackPeriodSecs float64 `yaml:"attackPeriod"`
}

// Key satisfies storage.Record.
func (t *MobTemplate) Key() MobTemplateId {
	return t.Id
}

// Validate satisfies storage.ValidatingSpec.
func (t *MobTemplate) Validate() error {
	el := errors.NewErrorList()
	if t.Name == "" {
		el.Add(fmt.Errorf("mob template %d: name is required", t.Id))
	}
	if t.MaxHp <= 0 {
		el.Add(fmt.Errorf("mob template %d: maxHp must be positive", t.Id))
	}
	if t.Damage < 0 {
		el.Add(fmt.Errorf("mob template %d: damage must not be negative", t.Id))
	}
	if t.AttackPeriod() < 1 {
		el.Add(fmt.Errorf("mob template %d: attackPeriod must be at least %s", t.Id, TickInterval))
	}
	return el.Err()
}

func (t *MobTemplate) AttackPeriod() TickDuration {
	return DurationFromSecs(t.AttackPeriodSecs)
}

// Matches reports whether str names this template.
func (t *MobTemplate) Matches(str string) bool {
	return MatchesName(t.Name, t.Aliases, str)
}

// Mob is a live creature spawned from a template.
type Mob struct {
	Id           MobId
	RoomId       RoomId
	Template     MobTemplate
	Hp           int
	AttackOffset TickDuration
	AttackTarget *PlayerId

	// HostileTo holds the players this mob will proactively target.
	HostileTo map[PlayerId]struct{}
}

// NewMob creates a full-health instance of a template with a random attack phase.
func NewMob(id MobId, room RoomId, template MobTemplate, rng *rand.Rand) Mob {
	return Mob{
		Id:           id,
		RoomId:       room,
		Template:     template,
		Hp:           template.MaxHp,
		AttackOffset: template.AttackPeriod().RandomOffset(rng),
		HostileTo:    map[PlayerId]struct{}{},
	}
}

func (m Mob) Key() MobId         { return m.Id }
func (m Mob) Location() RoomId   { return m.RoomId }
func (m Mob) Vitals() (int, int) { return m.Hp, m.Template.MaxHp }

// IsHostileTo reports whether the player is in the mob's hostile set.
func (m Mob) IsHostileTo(id PlayerId) bool {
	_, ok := m.HostileTo[id]
	return ok
}

// TargetsPlayer reports whether the mob is currently attacking id.
func (m Mob) TargetsPlayer(id PlayerId) bool {
	return m.AttackTarget != nil && *m.AttackTarget == id
}
