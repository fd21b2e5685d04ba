package game

import "strconv"

// Id identifies an entity of kind T. The type parameter only tags the value so that
// identifiers of different kinds cannot be compared or passed for one another.
type Id[T any] uint64

func (id Id[T]) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

type (
	PlayerId      = Id[Player]
	MobId         = Id[Mob]
	RoomId        = Id[Room]
	MobTemplateId = Id[MobTemplate]
)

// IdSource hands out strictly increasing identifiers for one entity kind.
// It is not safe for concurrent use; allocation happens on the actor goroutine.
type IdSource[T any] struct {
	next uint64
}

func NewIdSource[T any](first uint64) *IdSource[T] {
	return &IdSource[T]{next: first}
}

// Next returns a fresh identifier.
func (s *IdSource[T]) Next() Id[T] {
	id := Id[T](s.next)
	s.next++
	return id
}
