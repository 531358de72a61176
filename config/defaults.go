package config

import (
	_ "embed"
	"time"

	"github.com/plus3/takeashot/gallery/atlas"
)

//go:embed defaults/takeashot.yaml
var defaultYAML []byte

// Default returns the built-in configuration: a 90 second round over the
// classic five-target layout.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "Take a Shot!",
			Width:  1280,
			Height: 720,
		},
		Game: GameConfig{
			TotalTime:        90,
			TotalAmmo:        3,
			CrosshairOffsetX: 100,
			CrosshairOffsetY: 200,
		},
		Timing: TimingConfig{
			MotionStep:    100 * time.Millisecond,
			CountdownStep: time.Second,
		},
		Assets: AssetsConfig{Dir: "assets/textures"},
		Audio:  AudioConfig{Enabled: true, Volume: 0.5},
		Log:    LogConfig{Level: "info"},
		Targets: []TargetConfig{
			{
				Name: "yellow duck", X: -300, Y: 50, Z: 1.77,
				Sprite: atlas.DuckYellow, Speed: 3, Points: 10, HitBox: 99,
				Stick: &StickConfig{X: -305, Y: -55, Z: 1.76, Sprite: atlas.StickWood},
			},
			{
				Name: "brown duck", X: 300, Y: 70, Z: 1.74,
				Sprite: atlas.DuckBrown, Speed: 15, Points: 20, HitBox: 99,
				Stick: &StickConfig{X: 295, Y: -35, Z: 1.73, Sprite: atlas.StickWood},
			},
			{
				Name: "colored target", X: 0, Y: 183, Z: 1.72,
				Sprite: atlas.TargetColored, Speed: 25, Points: 25, HitBox: 128,
				Stick: &StickConfig{X: 0, Y: 60, Z: 1.71, Sprite: atlas.StickMetal},
			},
			{
				Name: "red target", X: 300, Y: 203, Z: 1.72,
				Sprite: atlas.TargetRed, Speed: 50, Points: 50, HitBox: 128,
				Stick: &StickConfig{X: 300, Y: 80, Z: 1.71, Sprite: atlas.StickMetal},
			},
			{
				Name: "white target", X: -300, Y: 120, Z: 1.72,
				Sprite: atlas.TargetWhite, Speed: 100, Points: 250, HitBox: 128,
				UpDown: true,
			},
		},
	}
}
