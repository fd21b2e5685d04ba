package game

import "errors"

var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrRoomNotFound   = errors.New("room not found")
	ErrMobNotFound    = errors.New("mob not found")
)
