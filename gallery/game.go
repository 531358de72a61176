// Package gallery is the simulation core of the shooting gallery: the
// Playing/GameOver state machine, target and scenery motion, hit detection,
// the countdown clock and the HUD digits. It has no rendering or windowing
// dependencies; a platform layer feeds it input and draws its entities.
package gallery

import "fmt"

// GameState is the top-level flow of a round.
type GameState int

const (
	Playing GameState = iota
	GameOver
)

func (s GameState) String() string {
	switch s {
	case Playing:
		return "Playing"
	case GameOver:
		return "GameOver"
	default:
		return fmt.Sprintf("GameState(%d)", int(s))
	}
}

// Vec2 is a point in world or screen space.
type Vec2 struct {
	X, Y float32
}

// Game is the round's authoritative state, kept as a storage singleton.
type Game struct {
	Score     uint
	TimeLeft  uint // whole seconds
	Ammo      uint // reset each round, never spent
	LastMouse Vec2 // world coordinates
}

// Scenery and target wrap limits along X.
const (
	cloudLimit      = 650
	backWaveLimit   = 660
	frontWaveLimit  = 660
	frontWaveReturn = -655
	targetLimit     = 650
)
