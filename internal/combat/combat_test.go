package combat

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/pixil98/go-mudcore/internal/game"
	"github.com/pixil98/go-mudcore/internal/storage"
	"github.com/pixil98/go-testutil"
)

const (
	squareId game.RoomId = 0
	denId    game.RoomId = 1
)

type harness struct {
	w   *game.World
	out *game.Output
	e   *Engine
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	rooms, err := storage.NewMemoryStore[game.RoomId](
		&game.Room{
			Id:          squareId,
			Name:        "Square",
			Description: game.StaticDescription("A quiet square."),
			Exits:       map[string]game.RoomExit{"east": {To: denId}},
		},
		&game.Room{
			Id:          denId,
			Name:        "Den",
			Description: game.StaticDescription("It smells."),
			Exits:       map[string]game.RoomExit{"west": {To: squareId}},
			Objects:     []game.RoomObject{{Name: "barrel", Description: game.StaticDescription("A barrel.")}},
			MobSpawns:   []game.MobSpawn{{MobTemplateId: 0}},
		},
	)
	if err != nil {
		t.Fatalf("building rooms: %v", err)
	}
	templates, err := storage.NewMemoryStore[game.MobTemplateId](
		&game.MobTemplate{Id: 0, Name: "rat", Description: "A rat.", MaxHp: 12, Damage: 4, AttackPeriodSecs: 0.125},
	)
	if err != nil {
		t.Fatalf("building templates: %v", err)
	}
	dict, err := game.NewDictionary(rooms, templates)
	if err != nil {
		t.Fatalf("building dictionary: %v", err)
	}

	w := game.NewWorld(dict, game.WithRand(rand.New(rand.NewPCG(1, 1))))
	out := game.NewOutput(w)
	if err := w.InitializeMobs(); err != nil {
		t.Fatalf("initializing mobs: %v", err)
	}

	rules := DefaultRules(squareId)
	rules.PlayerAttackPeriod = 1
	rules.HealPeriod = 1

	h := &harness{w: w, out: out, e: NewEngine(w, out, rules)}
	h.flush()
	return h
}

func (h *harness) addPlayer(name string, room game.RoomId) game.PlayerId {
	id := h.w.NewPlayerId()
	h.w.Players.Insert(h.e.NewPlayer(id, name, room))
	return id
}

func (h *harness) rat() (game.Mob, bool) {
	ids := h.w.Mobs.IdsInRoom(denId)
	if len(ids) == 0 {
		return game.Mob{}, false
	}
	return h.w.Mobs.Get(ids[0])
}

func (h *harness) flush() map[game.PlayerId][]string {
	told := map[game.PlayerId][]string{}
	h.out.Flush(func(id game.PlayerId, p game.Payload) {
		for _, l := range p.Lines {
			told[id] = append(told[id], l.String())
		}
	})
	return told
}

func TestEngine_Kill(t *testing.T) {
	tests := map[string]struct {
		target     string
		expSelf    string
		expOther   string
		expHostile bool
	}{
		"mob": {
			target:     "rat",
			expSelf:    "You attack the rat.",
			expOther:   "Ann attacks the rat.",
			expHostile: true,
		},
		"mob ignoring case": {
			target:     "Rat",
			expSelf:    "You attack the rat.",
			expOther:   "Ann attacks the rat.",
			expHostile: true,
		},
		"room object": {
			target:  "barrel",
			expSelf: "You cannot kill that.",
		},
		"nothing": {
			target:  "dragon",
			expSelf: "You do not see that here.",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t)
			ann := h.addPlayer("Ann", denId)
			bob := h.addPlayer("Bob", denId)
			h.flush()

			err := h.e.Kill(ann, tt.target)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			told := h.flush()
			testutil.AssertEqual(t, "self", slices.Contains(told[ann], tt.expSelf), true)
			if tt.expOther != "" {
				testutil.AssertEqual(t, "other", slices.Contains(told[bob], tt.expOther), true)
			} else {
				testutil.AssertEqual(t, "other told nothing", len(told[bob]), 0)
			}

			rat, _ := h.rat()
			testutil.AssertEqual(t, "hostile", rat.IsHostileTo(ann), tt.expHostile)
			testutil.AssertEqual(t, "bob not hostile", rat.IsHostileTo(bob), false)

			p := h.w.Players.MustGet(ann)
			testutil.AssertEqual(t, "targeting", p.AttackTarget != nil, tt.expHostile)
		})
	}
}

func TestEngine_KillMissingPlayer(t *testing.T) {
	h := newHarness(t)

	err := h.e.Kill(99, "rat")
	testutil.AssertErrorContains(t, err, "player not found")
}

func TestEngine_PlayerKillsMob(t *testing.T) {
	h := newHarness(t)
	ann := h.addPlayer("Ann", denId)
	bob := h.addPlayer("Bob", denId)
	if err := h.e.Kill(ann, "rat"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h.flush()

	h.e.TickPlayerAttacks()
	rat, _ := h.rat()
	testutil.AssertEqual(t, "after first hit", rat.Hp, 7)

	h.e.TickPlayerAttacks()
	rat, _ = h.rat()
	testutil.AssertEqual(t, "after second hit", rat.Hp, 2)
	h.flush()

	h.e.TickPlayerAttacks()
	told := h.flush()

	_, alive := h.rat()
	testutil.AssertEqual(t, "rat removed", alive, false)
	testutil.AssertEqual(t, "room hears death", slices.Contains(told[bob], "The rat dies."), true)
	testutil.AssertEqual(t, "killer hears death", slices.Contains(told[ann], "The rat dies."), true)
	testutil.AssertEqual(t, "respawn scheduled", h.w.PendingRespawns(), 1)
	testutil.AssertEqual(t, "target cleared", h.w.Players.MustGet(ann).AttackTarget == nil, true)
	if err := h.w.Mobs.CheckIndex(); err != nil {
		t.Fatalf("index inconsistent: %v", err)
	}

	for range h.e.Rules().MobRespawnDelay {
		h.w.Advance()
	}
	due := h.w.DueRespawns()
	testutil.AssertEqual(t, "respawn due after delay", len(due), 1)
	testutil.AssertEqual(t, "respawn room", due[0].Room, denId)
}

func TestEngine_HostileMobPullsPlayerIntoCombat(t *testing.T) {
	h := newHarness(t)
	ann := h.addPlayer("Ann", denId)
	rat, _ := h.rat()
	h.w.Mobs.Modify(rat.Id, func(m *game.Mob) {
		m.HostileTo[ann] = struct{}{}
	})
	h.flush()

	h.e.TickPlayerAttacks()
	told := h.flush()

	testutil.AssertEqual(t, "engaged", h.w.Players.MustGet(ann).TargetsMob(rat.Id), true)
	testutil.AssertEqual(t, "message", slices.Contains(told[ann], "You attack the rat."), true)
	rat, _ = h.rat()
	testutil.AssertEqual(t, "no damage on engage", rat.Hp, 12)
}

func TestEngine_TargetLeftRoom(t *testing.T) {
	h := newHarness(t)
	ann := h.addPlayer("Ann", denId)
	if err := h.e.Kill(ann, "rat"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h.w.Players.Modify(ann, func(p *game.Player) { p.RoomId = squareId })
	h.flush()

	h.e.TickPlayerAttacks()
	told := h.flush()

	testutil.AssertEqual(t, "target cleared", h.w.Players.MustGet(ann).AttackTarget == nil, true)
	testutil.AssertEqual(t, "no flee notice", slices.Contains(told[ann], "You flee."), false)
	rat, _ := h.rat()
	testutil.AssertEqual(t, "rat untouched", rat.Hp, 12)
}

func TestEngine_MobAttacksPlayer(t *testing.T) {
	h := newHarness(t)
	ann := h.addPlayer("Ann", denId)
	bob := h.addPlayer("Bob", denId)
	if err := h.e.Kill(ann, "rat"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h.flush()

	h.e.TickMobAttacks()
	told := h.flush()
	rat, _ := h.rat()
	testutil.AssertEqual(t, "rat targets ann", rat.TargetsPlayer(ann), true)
	testutil.AssertEqual(t, "ann told", slices.Contains(told[ann], "The rat attacks you."), true)
	testutil.AssertEqual(t, "bob told", slices.Contains(told[bob], "The rat attacks Ann."), true)

	h.e.TickMobAttacks()
	told = h.flush()
	testutil.AssertEqual(t, "hp", h.w.Players.MustGet(ann).Hp, DefaultPlayerMaxHp-4)
	testutil.AssertEqual(t, "hit message", slices.Contains(told[ann], "The rat hits you."), true)
}

func TestEngine_PlayerDies(t *testing.T) {
	h := newHarness(t)
	ann := h.addPlayer("Ann", denId)
	bob := h.addPlayer("Bob", denId)
	cid := h.addPlayer("Cid", squareId)
	if err := h.e.Kill(ann, "rat"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h.e.TickMobAttacks()
	h.w.Players.Modify(ann, func(p *game.Player) { p.Hp = 4 })
	h.flush()

	h.e.TickMobAttacks()
	told := h.flush()

	p := h.w.Players.MustGet(ann)
	testutil.AssertEqual(t, "hp restored", p.Hp, p.MaxHp)
	testutil.AssertEqual(t, "target cleared", p.AttackTarget == nil, true)
	testutil.AssertEqual(t, "respawn room", p.RoomId, squareId)

	testutil.AssertEqual(t, "you die", slices.Contains(told[ann], "You die."), true)
	testutil.AssertEqual(t, "room hears death", slices.Contains(told[bob], "Ann dies."), true)
	testutil.AssertEqual(t, "respawn room hears arrival", slices.Contains(told[cid], "Ann appears."), true)
	testutil.AssertEqual(t, "respawn description", slices.Contains(told[ann], "Square"), true)
	testutil.AssertEqual(t, "death before description", slices.Index(told[ann], "You die.") < slices.Index(told[ann], "Square"), true)

	rat, _ := h.rat()
	testutil.AssertEqual(t, "rat forgets ann", rat.IsHostileTo(ann), false)
	testutil.AssertEqual(t, "rat idle", rat.AttackTarget == nil, true)
	if err := h.w.Players.CheckIndex(); err != nil {
		t.Fatalf("index inconsistent: %v", err)
	}
}

func TestEngine_MobForgetsDisconnectedPlayers(t *testing.T) {
	h := newHarness(t)
	ann := h.addPlayer("Ann", denId)
	if err := h.e.Kill(ann, "rat"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h.e.TickMobAttacks()
	h.w.Players.Remove(ann)

	h.e.TickMobAttacks()

	rat, _ := h.rat()
	testutil.AssertEqual(t, "hostile pruned", len(rat.HostileTo), 0)
	testutil.AssertEqual(t, "target cleared", rat.AttackTarget == nil, true)
}

func TestEngine_TickHealPlayers(t *testing.T) {
	h := newHarness(t)
	ann := h.addPlayer("Ann", squareId)
	bob := h.addPlayer("Bob", denId)
	if err := h.e.Kill(bob, "rat"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h.w.Players.Modify(ann, func(p *game.Player) { p.Hp = 50 })
	h.w.Players.Modify(bob, func(p *game.Player) { p.Hp = 50 })

	h.e.TickHealPlayers()
	testutil.AssertEqual(t, "ann healed", h.w.Players.MustGet(ann).Hp, 55)
	testutil.AssertEqual(t, "bob hunted", h.w.Players.MustGet(bob).Hp, 50)

	h.w.Players.Modify(ann, func(p *game.Player) { p.Hp = 98 })
	h.e.TickHealPlayers()
	testutil.AssertEqual(t, "capped", h.w.Players.MustGet(ann).Hp, 100)
}

func TestEngine_Flee(t *testing.T) {
	h := newHarness(t)
	ann := h.addPlayer("Ann", denId)

	testutil.AssertEqual(t, "idle", h.e.Flee(ann), false)

	if err := h.e.Kill(ann, "rat"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "engaged", h.e.Flee(ann), true)
	testutil.AssertEqual(t, "cleared", h.w.Players.MustGet(ann).AttackTarget == nil, true)
}
