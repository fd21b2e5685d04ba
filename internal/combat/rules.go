package combat

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-mudcore/internal/game"
)

const (
	DefaultPlayerMaxHp        = 100
	DefaultPlayerDamage       = 5
	DefaultPlayerAttackPeriod = time.Second
	DefaultHealPeriod         = 2 * time.Second
	DefaultHealDivisor        = 20
	DefaultMobRespawnDelay    = 30 * time.Second
)

// Rules are the fixed numbers the combat engine plays by.
type Rules struct {
	PlayerMaxHp        int
	PlayerDamage       int
	PlayerAttackPeriod game.TickDuration
	HealPeriod         game.TickDuration
	HealDivisor        int
	MobRespawnDelay    game.TickDuration

	// RespawnRoom is where players wake up after dying.
	RespawnRoom game.RoomId
}

// DefaultRules returns the standard rules with players respawning in room.
func DefaultRules(room game.RoomId) Rules {
	return Rules{
		PlayerMaxHp:        DefaultPlayerMaxHp,
		PlayerDamage:       DefaultPlayerDamage,
		PlayerAttackPeriod: ticks(DefaultPlayerAttackPeriod),
		HealPeriod:         ticks(DefaultHealPeriod),
		HealDivisor:        DefaultHealDivisor,
		MobRespawnDelay:    ticks(DefaultMobRespawnDelay),
		RespawnRoom:        room,
	}
}

// Config holds optional overrides of the default rules. Durations use
// time.ParseDuration syntax.
type Config struct {
	PlayerMaxHp        int    `json:"player_max_hp,omitempty"`
	PlayerDamage       int    `json:"player_damage,omitempty"`
	PlayerAttackPeriod string `json:"player_attack_period,omitempty"`
	HealPeriod         string `json:"heal_period,omitempty"`
	HealDivisor        int    `json:"heal_divisor,omitempty"`
	MobRespawnDelay    string `json:"mob_respawn_delay,omitempty"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.PlayerMaxHp < 0 {
		el.Add(fmt.Errorf("player_max_hp must not be negative"))
	}
	if c.PlayerDamage < 0 {
		el.Add(fmt.Errorf("player_damage must not be negative"))
	}
	if c.HealDivisor < 0 {
		el.Add(fmt.Errorf("heal_divisor must not be negative"))
	}
	for name, v := range map[string]string{
		"player_attack_period": c.PlayerAttackPeriod,
		"heal_period":          c.HealPeriod,
		"mob_respawn_delay":    c.MobRespawnDelay,
	} {
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			el.Add(fmt.Errorf("parsing %s: %w", name, err))
		} else if d < game.TickInterval {
			el.Add(fmt.Errorf("%s must be at least %s", name, game.TickInterval))
		}
	}

	return el.Err()
}

// Rules applies the overrides on top of DefaultRules. Call Validate first.
func (c *Config) Rules(respawnRoom game.RoomId) Rules {
	r := DefaultRules(respawnRoom)
	if c.PlayerMaxHp > 0 {
		r.PlayerMaxHp = c.PlayerMaxHp
	}
	if c.PlayerDamage > 0 {
		r.PlayerDamage = c.PlayerDamage
	}
	if c.HealDivisor > 0 {
		r.HealDivisor = c.HealDivisor
	}
	if d, err := time.ParseDuration(c.PlayerAttackPeriod); err == nil {
		r.PlayerAttackPeriod = ticks(d)
	}
	if d, err := time.ParseDuration(c.HealPeriod); err == nil {
		r.HealPeriod = ticks(d)
	}
	if d, err := time.ParseDuration(c.MobRespawnDelay); err == nil {
		r.MobRespawnDelay = ticks(d)
	}
	return r
}

func ticks(d time.Duration) game.TickDuration {
	return game.DurationFromSecs(d.Seconds())
}
