package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/plus3/takeashot/gallery/atlas"
	"gopkg.in/yaml.v3"
)

// Load loads the configuration and validates it.
// Search order: customPath -> ~/.takeashot/config.yaml -> ./configs/takeashot.yaml -> embedded default
//
// Files are decoded over Default(), so a file only needs the keys it changes.
// An explicit customPath that cannot be read or parsed is an error; the other
// locations are skipped when missing or malformed.
func Load(customPath string) (Config, string, error) {
	cfg, source, err := load(customPath)
	if err != nil {
		return cfg, source, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, source, fmt.Errorf("config: %s: %w", source, err)
	}
	return cfg, source, nil
}

func load(customPath string) (Config, string, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := decodeFile(customPath)
		if err != nil {
			return cfg, customPath, err
		}
		return cfg, customPath, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if cfg, err := decodeFile(userCfgPath); err == nil {
			return cfg, userCfgPath, nil
		}
	}

	// Try local configs directory
	localPath := filepath.Join("configs", "takeashot.yaml")
	if cfg, err := decodeFile(localPath); err == nil {
		return cfg, localPath, nil
	}

	// Use embedded default YAML
	cfg := Default()
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), "builtin", nil
	}
	return cfg, "embedded", nil
}

func decodeFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".takeashot", filename)
}

// Validate reports every problem with the configuration at once.
func (c Config) Validate() error {
	var errs []error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Game.TotalTime == 0 {
		errs = append(errs, errors.New("game.total_time must be at least one second"))
	}
	if c.Timing.MotionStep <= 0 {
		errs = append(errs, fmt.Errorf("timing.motion_step %s must be positive", c.Timing.MotionStep))
	}
	if c.Timing.CountdownStep <= 0 {
		errs = append(errs, fmt.Errorf("timing.countdown_step %s must be positive", c.Timing.CountdownStep))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio.volume %.2f must be within [0, 1]", c.Audio.Volume))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	objects := len(atlas.Rects(atlas.Objects))
	for i, target := range c.Targets {
		name := target.Name
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("#%d", i)
		}
		if target.Sprite < 0 || target.Sprite >= objects {
			errs = append(errs, fmt.Errorf("target %s: sprite %d out of range", name, target.Sprite))
		}
		if target.HitBox <= 0 {
			errs = append(errs, fmt.Errorf("target %s: hit_box must be positive", name))
		}
		if target.Speed < 0 {
			errs = append(errs, fmt.Errorf("target %s: speed must not be negative", name))
		}
		if target.Stick != nil && (target.Stick.Sprite < 0 || target.Stick.Sprite >= objects) {
			errs = append(errs, fmt.Errorf("target %s: stick sprite %d out of range", name, target.Stick.Sprite))
		}
	}

	return errors.Join(errs...)
}
