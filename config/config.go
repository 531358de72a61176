// Package config provides YAML-based configuration for the shooting gallery:
// window size, game rules, tick rates, assets, audio, logging and the target
// layout.
package config

import "time"

// Config is the complete runtime configuration.
type Config struct {
	Window  WindowConfig   `yaml:"window"`
	Game    GameConfig     `yaml:"game"`
	Timing  TimingConfig   `yaml:"timing"`
	Assets  AssetsConfig   `yaml:"assets"`
	Audio   AudioConfig    `yaml:"audio"`
	Log     LogConfig      `yaml:"log"`
	Targets []TargetConfig `yaml:"targets"`
}

// WindowConfig defines the logical viewport. World coordinates are screen
// coordinates shifted by half the viewport.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// GameConfig defines round rules.
type GameConfig struct {
	TotalTime        uint    `yaml:"total_time"` // seconds per round
	TotalAmmo        uint    `yaml:"total_ammo"`
	CrosshairOffsetX float32 `yaml:"crosshair_offset_x"`
	CrosshairOffsetY float32 `yaml:"crosshair_offset_y"`
}

// TimingConfig defines the fixed tick lengths.
type TimingConfig struct {
	MotionStep    time.Duration `yaml:"motion_step"`
	CountdownStep time.Duration `yaml:"countdown_step"`
}

// AssetsConfig locates the sprite sheet images.
type AssetsConfig struct {
	Dir string `yaml:"dir"`
}

// AudioConfig controls sound effects.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0.0 = silent, 1.0 = full
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// TargetConfig places one target. Positions are world coordinates.
type TargetConfig struct {
	Name   string       `yaml:"name"`
	X      float32      `yaml:"x"`
	Y      float32      `yaml:"y"`
	Z      float32      `yaml:"z"`
	Sprite int          `yaml:"sprite"`
	Speed  float32      `yaml:"speed"`
	Points uint         `yaml:"points"`
	HitBox float32      `yaml:"hit_box"`
	UpDown bool         `yaml:"up_down"`
	Stick  *StickConfig `yaml:"stick,omitempty"`
}

// StickConfig places the decorative stick that travels with a target.
type StickConfig struct {
	X      float32 `yaml:"x"`
	Y      float32 `yaml:"y"`
	Z      float32 `yaml:"z"`
	Sprite int     `yaml:"sprite"`
}
