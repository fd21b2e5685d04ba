package game

// Player is a connected user's avatar.
type Player struct {
	Id           PlayerId
	Name         string
	RoomId       RoomId
	Hp           int
	MaxHp        int
	AttackOffset TickDuration
	AttackTarget *MobId
}

func (p Player) Key() PlayerId      { return p.Id }
func (p Player) Location() RoomId   { return p.RoomId }
func (p Player) Vitals() (int, int) { return p.Hp, p.MaxHp }

// TargetsMob reports whether the player is currently attacking id.
func (p Player) TargetsMob(id MobId) bool {
	return p.AttackTarget != nil && *p.AttackTarget == id
}
