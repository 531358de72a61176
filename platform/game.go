// Package platform runs the gallery simulation in an ebiten window: it polls
// input, plays sound effects and draws sprites from the loaded atlas.
package platform

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/takeashot/config"
	"github.com/plus3/takeashot/gallery"
	"github.com/plus3/takeashot/sfx"
)

// Options tunes Run beyond the loaded configuration.
type Options struct {
	Debug  bool
	Player *sfx.Player
	Logger *log.Logger
}

// Game adapts a gallery.Simulation to ebiten.Game.
type Game struct {
	sim      *gallery.Simulation
	input    *InputAdapter
	renderer *Renderer
	player   *sfx.Player
	debug    *debugWorld
	logger   *log.Logger

	width, height int
}

func NewGame(sim *gallery.Simulation, a *Atlas, opts Options) *Game {
	cfg := sim.Config()
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Player == nil {
		opts.Player = sfx.Muted()
	}
	viewport := gallery.Vec2{X: float32(cfg.Window.Width), Y: float32(cfg.Window.Height)}
	return &Game{
		sim:      sim,
		input:    NewInputAdapter(cfg.Window.Height),
		renderer: NewRenderer(a, viewport),
		player:   opts.Player,
		logger:   opts.Logger,
		width:    cfg.Window.Width,
		height:   cfg.Window.Height,
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	dt := 1.0 / float64(ebiten.TPS())

	captured := false
	if g.debug != nil {
		if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
			g.debug.Toggle()
		}
		captured = g.debug.WantsMouse()
	}

	g.input.Poll(g.sim.Input(), captured)
	g.sim.Update(dt)
	g.player.PlayShots(g.sim.Shots().Frame)

	if g.debug != nil {
		g.debug.Update(dt)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.sim)
	if g.debug != nil {
		g.debug.Draw(screen)
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	if g.debug != nil {
		g.debug.Layout(g.width, g.height)
	}
	return g.width, g.height
}

// Run loads the assets, opens the window and blocks until it closes.
func Run(cfg config.Config, opts Options) error {
	a, err := LoadAtlas(cfg.Assets.Dir)
	if err != nil {
		return err
	}

	sim := gallery.New(cfg, opts.Logger)
	game := NewGame(sim, a, opts)

	if opts.Debug {
		game.debug = newDebugWorld(sim, cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
	} else {
		ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
		ebiten.SetWindowTitle(cfg.Window.Title)
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)

	game.logger.Info("window open", "title", cfg.Window.Title, "width", cfg.Window.Width, "height", cfg.Window.Height, "debug", opts.Debug)
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("platform: %w", err)
	}
	game.logger.Info("window closed", "frames", sim.Frames(), "score", sim.Game().Score)
	return nil
}
