package gallery

import (
	"fmt"
	"reflect"

	"github.com/charmbracelet/log"
	"github.com/plus3/takeashot/config"
	"github.com/plus3/takeashot/ecs"
	"github.com/plus3/takeashot/gallery/atlas"
)

// ResetGameSystem starts a round with a full clock and magazine.
type ResetGameSystem struct {
	TotalTime uint
	TotalAmmo uint

	Game ecs.Singleton[Game]
}

func (s *ResetGameSystem) Execute(frame *ecs.UpdateFrame) {
	game := s.Game.Get()
	game.Score = 0
	game.TimeLeft = s.TotalTime
	game.Ammo = s.TotalAmmo
}

func stallSprite(t Transform, index int) []any {
	return []any{t, Sprite{Sheet: atlas.Stall, Index: index}}
}

func scaled(t Transform, scale float32, flip bool) Transform {
	t.Scale = scale
	t.FlipX = flip
	return t
}

// SpawnStallSystem builds the booth: curtains, wooden frame, grass, the two
// rows of water, clouds and trees.
type SpawnStallSystem struct{}

func (s *SpawnStallSystem) Execute(frame *ecs.UpdateFrame) {
	cmd := frame.Commands

	for x := float32(-512); x <= 512; x += 256 {
		cmd.Spawn(stallSprite(At(x, 320, 2), atlas.StraightCurtain)...)
	}
	for x := float32(-540); x <= 540; x += 180 {
		cmd.Spawn(stallSprite(At(x, 63*4.3, 1), atlas.TopCurtain)...)
	}

	cmd.Spawn(stallSprite(scaled(At(-582, 100, 1.9), 1.3, false), atlas.SideCurtain)...)
	cmd.Spawn(stallSprite(scaled(At(582, 100, 1.9), 1.3, true), atlas.SideCurtain)...)
	cmd.Spawn(stallSprite(scaled(At(-640, 92, 1.95), 1.3, false), atlas.CurtainRope)...)
	cmd.Spawn(stallSprite(scaled(At(640, 92, 1.95), 1.3, true), atlas.CurtainRope)...)

	for x := float32(-384); x <= 384; x += 256 {
		cmd.Spawn(stallSprite(scaled(At(x, -395, 1.8), 2, false), atlas.WoodBackground)...)
	}
	for x := float32(-512); x <= 512; x += 256 {
		cmd.Spawn(stallSprite(At(x, 200, 1.7), atlas.WoodBackground)...)
	}

	for i := range 11 {
		x := float32(-660 + i*132)
		if i%2 == 0 {
			cmd.Spawn(stallSprite(scaled(At(x, 8, 1.73), 1, true), atlas.GrassDark)...)
		} else {
			cmd.Spawn(stallSprite(scaled(At(x, 0, 1.73), 1, true), atlas.GrassLight)...)
		}
	}

	for x := float32(-660); x <= 660; x += 132 {
		cmd.Spawn(append(stallSprite(At(x, -90, 1.75), atlas.WaterBack), BackWave{})...)
	}
	for x := float32(-620); x <= 620; x += 132 {
		cmd.Spawn(append(stallSprite(At(x, -120, 1.78), atlas.WaterFront), FrontWave{})...)
	}

	cmd.Spawn(append(stallSprite(At(-300, 220, 1.71), atlas.CloudSmall), Cloud{})...)
	cmd.Spawn(append(stallSprite(At(300, 260, 1.71), atlas.CloudLarge), Cloud{})...)
	cmd.Spawn(stallSprite(At(-530, 190, 1.71), atlas.TreeOak)...)
	cmd.Spawn(stallSprite(At(530, 130, 1.73), atlas.TreePine)...)
}

// SpawnRifleSystem places the rifle and crosshair at the screen centre.
type SpawnRifleSystem struct {
	Offset Vec2
}

func (s *SpawnRifleSystem) Execute(frame *ecs.UpdateFrame) {
	frame.Commands.Spawn(At(s.Offset.X, -s.Offset.Y, 4), Sprite{Sheet: atlas.Objects, Index: atlas.Rifle}, Rifle{})
	frame.Commands.Spawn(At(0, 0, 4), Sprite{Sheet: atlas.HUD, Index: atlas.Crosshair}, Crosshair{})
}

// SpawnTargetsSystem spawns the configured targets. Each stick is a child of
// its target and holds a reference back to it.
type SpawnTargetsSystem struct {
	Targets []config.TargetConfig
}

func (s *SpawnTargetsSystem) Execute(frame *ecs.UpdateFrame) {
	for _, tc := range s.Targets {
		target := frame.Storage.Spawn(
			At(tc.X, tc.Y, tc.Z),
			Sprite{Sheet: atlas.Objects, Index: tc.Sprite},
			Target{Speed: tc.Speed, Points: tc.Points, HitBox: tc.HitBox, UpDown: tc.UpDown, StartY: tc.Y},
		)
		if tc.Stick == nil {
			continue
		}
		frame.Storage.SpawnChild(target,
			At(tc.Stick.X, tc.Stick.Y, tc.Stick.Z),
			Sprite{Sheet: atlas.Objects, Index: tc.Stick.Sprite},
			TargetStick{Speed: tc.Speed, Target: frame.Storage.CreateEntityRef(target)},
		)
	}
}

const hudY = 330

// SpawnHUDSystem builds the clock (top left) and score (top right) under a
// single HUD root. Digits start from the current Game values.
type SpawnHUDSystem struct {
	Game ecs.Singleton[Game]
}

func (s *SpawnHUDSystem) Execute(frame *ecs.UpdateFrame) {
	game := s.Game.Get()
	root := frame.Storage.Spawn(HUD{})
	hud := func(x float32, index int, extra ...any) {
		components := append([]any{At(x, hudY, 3), Sprite{Sheet: atlas.HUD, Index: index}}, extra...)
		frame.Commands.SpawnChild(root, components...)
	}

	for i, kind := range []ClockKind{ClockMinute, ClockColon, ClockTen, ClockSecond} {
		index, ok := kind.Index(game.TimeLeft)
		if !ok {
			index = atlas.Colon
		}
		hud(-600+float32(i)*28, index, ClockDigit{Kind: kind})
	}

	hud(400, atlas.ScoreLabel)
	hud(470, atlas.Colon)
	for i, kind := range []ScoreKind{ScoreThousand, ScoreHundred, ScoreTen, ScoreOne} {
		hud(498+float32(i)*28, kind.Index(game.Score), ScoreDigit{Kind: kind})
	}
}

// FinalScoreSystem shows the final score screen, then clears the score and
// clock for the next round.
type FinalScoreSystem struct {
	TotalTime uint
	Logger    *log.Logger

	Game ecs.Singleton[Game]
}

func (s *FinalScoreSystem) Execute(frame *ecs.UpdateFrame) {
	game := s.Game.Get()
	s.Logger.Info("round over", "score", game.Score)

	root := frame.Storage.Spawn(Overlay{})
	frame.Commands.SpawnChild(root, OverlayText{Line: 0, Text: fmt.Sprintf("Final Score: %d", game.Score)})
	frame.Commands.SpawnChild(root, OverlayText{Line: 1, Text: "You Won! Press Spacebar to Play Again"})

	game.Score = 0
	game.TimeLeft = s.TotalTime
}

var cameraType = reflect.TypeFor[Camera]()

// TeardownSystem despawns every entity except the camera, subtrees included,
// and compacts storage once the despawns are applied.
type TeardownSystem struct {
	Logger *log.Logger
}

func (s *TeardownSystem) Execute(frame *ecs.UpdateFrame) {
	storage := frame.Storage
	before := storage.Count()
	for id := range storage.Entities() {
		if storage.HasComponent(id, cameraType) {
			continue
		}
		frame.Commands.DespawnRecursive(id)
	}
	frame.Commands.Defer(func() {
		removed := before - storage.Count()
		storage.Compact()
		s.Logger.Debug("teardown", "removed", removed, "remaining", storage.Count())
	})
}
