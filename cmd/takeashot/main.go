// takeashot is a 2D shooting gallery: aim with the mouse, shoot the moving
// targets before the clock runs out.
//
// Usage:
//
//	takeashot              - Play in a window
//	takeashot soak         - Run the simulation headless and print a report
//
// Global flags:
//
//	--config <path>     - Custom config YAML
//	--log-level <lvl>   - debug, info, warn or error (overrides config)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/plus3/takeashot/config"
	"github.com/plus3/takeashot/platform"
	"github.com/plus3/takeashot/sfx"
)

var (
	// Global flags
	flagConfig   string
	flagLogLevel string

	// Play flags
	flagAssets string
	flagMute   bool
	flagDebug  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "takeashot",
	Short: "Take a Shot! - a shooting gallery",
	Long: `Take a Shot! is a carnival shooting gallery. Move the mouse to aim and
click to fire; every target under the crosshair scores. When the clock
reaches zero the final score is shown. Press Space to play again.

Controls:
  Mouse      - Aim
  Left click - Fire
  Space      - Restart after the round
  F1         - Toggle debug panels (with --debug)
  Esc        - Quit

Examples:
  takeashot
  takeashot --assets ./assets/textures --mute
  takeashot --config ./my-gallery.yaml --debug
  takeashot soak --duration 30m`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (overrides config)")

	rootCmd.Flags().StringVar(&flagAssets, "assets", "", "Sprite sheet directory (overrides config)")
	rootCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound effects")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "Show debug panels")

	rootCmd.AddCommand(soakCmd)
}

// setup loads the configuration, applies flag overrides and builds the logger.
func setup() (config.Config, *log.Logger, error) {
	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		return cfg, nil, err
	}

	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagAssets != "" {
		cfg.Assets.Dir = flagAssets
	}
	if flagMute {
		cfg.Audio.Enabled = false
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}

	logger, err := newLogger(cfg.Log.Level)
	if err != nil {
		return cfg, nil, err
	}
	logger.Debug("config loaded", "source", source)
	return cfg, logger, nil
}

func newLogger(level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "takeashot",
		Level:           lvl,
	}), nil
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	player, err := sfx.New(cfg.Audio, logger.WithPrefix("sfx"))
	if err != nil {
		logger.Warn("continuing without sound", "err", err)
		player = sfx.Muted()
	}
	defer player.Close()

	return platform.Run(cfg, platform.Options{
		Debug:  flagDebug,
		Player: player,
		Logger: logger,
	})
}
