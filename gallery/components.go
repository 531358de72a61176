package gallery

import (
	"github.com/plus3/takeashot/ecs"
	"github.com/plus3/takeashot/gallery/atlas"
)

// Transform places a sprite in world space: origin at the viewport centre,
// y up. Z orders drawing, higher is nearer.
type Transform struct {
	X, Y, Z float32
	Scale   float32
	FlipX   bool
}

// At returns a unit-scale transform.
func At(x, y, z float32) Transform {
	return Transform{X: x, Y: y, Z: z, Scale: 1}
}

// Sprite selects one cell of a sprite sheet.
type Sprite struct {
	Sheet atlas.Sheet
	Index int
}

// Target is a shootable object moving right across the stall.
type Target struct {
	Speed  float32 // units per motion tick
	Points uint
	HitBox float32 // side of the square centred on the target
	UpDown bool
	StartY float32
}

// TargetStick is the decorative pole carrying a target.
type TargetStick struct {
	Speed  float32
	Target *ecs.EntityRef
}

type Cloud struct{}

type FrontWave struct{}

type BackWave struct{}

type Crosshair struct{}

type Rifle struct{}

// Camera survives teardown between rounds.
type Camera struct{}

// HUD is the root entity the clock and score digits hang from.
type HUD struct{}

type ClockDigit struct {
	Kind ClockKind
}

type ScoreDigit struct {
	Kind ScoreKind
}

// Overlay is the root of the final score screen.
type Overlay struct{}

// OverlayText is one line of the final score screen.
type OverlayText struct {
	Line int
	Text string
}

// NewRegistry registers every gallery component.
func NewRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Sprite](registry)
	ecs.RegisterComponent[Target](registry)
	ecs.RegisterComponent[TargetStick](registry)
	ecs.RegisterComponent[Cloud](registry)
	ecs.RegisterComponent[FrontWave](registry)
	ecs.RegisterComponent[BackWave](registry)
	ecs.RegisterComponent[Crosshair](registry)
	ecs.RegisterComponent[Rifle](registry)
	ecs.RegisterComponent[Camera](registry)
	ecs.RegisterComponent[HUD](registry)
	ecs.RegisterComponent[ClockDigit](registry)
	ecs.RegisterComponent[ScoreDigit](registry)
	ecs.RegisterComponent[Overlay](registry)
	ecs.RegisterComponent[OverlayText](registry)
	return registry
}
