package gallery

import (
	"io"
	"iter"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/plus3/takeashot/config"
	"github.com/plus3/takeashot/ecs"
)

// Simulation owns one gallery world: its storage, scheduler, state machine
// and singletons. It is not safe for concurrent use; the platform calls Update
// once per frame.
type Simulation struct {
	cfg    config.Config
	logger *log.Logger

	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	states    *ecs.StateMachine[GameState]

	game  *ecs.Singleton[Game]
	input *ecs.Singleton[InputQueue]
	shots *ecs.Singleton[ShotLog]

	frames uint64
}

// New builds a simulation from cfg. The first Update enters Playing and
// spawns the first round. A nil logger discards output.
func New(cfg config.Config, logger *log.Logger) *Simulation {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	storage := ecs.NewStorage(NewRegistry())
	s := &Simulation{
		cfg:       cfg,
		logger:    logger,
		storage:   storage,
		scheduler: ecs.NewScheduler(storage),
		states:    ecs.NewStateMachine(Playing),
		game: ecs.NewSingleton(storage, Game{
			TimeLeft: cfg.Game.TotalTime,
			Ammo:     cfg.Game.TotalAmmo,
		}),
		input: ecs.NewSingleton[InputQueue](storage),
		shots: ecs.NewSingleton[ShotLog](storage),
	}

	storage.Spawn(Camera{})
	s.registerSystems()
	return s
}

func (s *Simulation) registerSystems() {
	viewport := Vec2{X: float32(s.cfg.Window.Width), Y: float32(s.cfg.Window.Height)}
	offset := Vec2{X: s.cfg.Game.CrosshairOffsetX, Y: s.cfg.Game.CrosshairOffsetY}

	s.states.OnEnter(Playing,
		&ResetGameSystem{TotalTime: s.cfg.Game.TotalTime, TotalAmmo: s.cfg.Game.TotalAmmo},
		&SpawnStallSystem{},
		&SpawnRifleSystem{Offset: offset},
		&SpawnTargetsSystem{Targets: s.cfg.Targets},
		&SpawnHUDSystem{},
	)
	s.states.OnUpdate(Playing,
		&CursorSystem{Viewport: viewport, Offset: offset},
		&FireSystem{Logger: s.logger},
		&ScoreDisplaySystem{},
	)
	s.states.OnExit(Playing, &TeardownSystem{Logger: s.logger})

	s.states.OnEnter(GameOver, &FinalScoreSystem{TotalTime: s.cfg.Game.TotalTime, Logger: s.logger})
	s.states.OnUpdate(GameOver, &RestartSystem{States: s.states})
	s.states.OnExit(GameOver, &TeardownSystem{Logger: s.logger})

	s.states.Observe(func(from, to GameState) {
		s.logger.Info("state transition", "from", from, "to", to, "frame", s.frames)
	})
	s.scheduler.AddStates(s.states)

	s.scheduler.RegisterFixed(s.cfg.Timing.MotionStep,
		&AmbientSystem{States: s.states},
		&TargetMotionSystem{States: s.states},
	)
	s.scheduler.RegisterFixed(s.cfg.Timing.CountdownStep, &CountdownSystem{States: s.states})
}

// Update advances the simulation by dt seconds using the input queued since
// the previous Update, then clears that input.
func (s *Simulation) Update(dt float64) {
	s.frames++
	s.shots.Get().Frame = s.shots.Get().Frame[:0]
	s.scheduler.Once(dt)
	s.input.Get().reset()
}

// Input returns the queue the platform pushes this frame's events into.
func (s *Simulation) Input() *InputQueue {
	return s.input.Get()
}

// Game returns a copy of the round state.
func (s *Simulation) Game() Game {
	return *s.game.Get()
}

// State returns the current game state.
func (s *Simulation) State() GameState {
	return s.states.Current()
}

// Shots returns the shot log; Frame covers the most recent Update.
func (s *Simulation) Shots() *ShotLog {
	return s.shots.Get()
}

// Frames returns the number of Update calls so far.
func (s *Simulation) Frames() uint64 {
	return s.frames
}

func (s *Simulation) Storage() *ecs.Storage {
	return s.storage
}

func (s *Simulation) Scheduler() *ecs.Scheduler {
	return s.scheduler
}

// Config returns the configuration the simulation was built with.
func (s *Simulation) Config() config.Config {
	return s.cfg
}

// Drawable is a sprite ready to be drawn.
type Drawable struct {
	Transform
	Sprite
}

// Drawables yields every sprite entity ordered back to front by Z.
func (s *Simulation) Drawables() iter.Seq[Drawable] {
	view := ecs.NewView[struct {
		*Transform
		*Sprite
	}](s.storage)

	var items []Drawable
	for item := range view.Iter() {
		items = append(items, Drawable{Transform: *item.Transform, Sprite: *item.Sprite})
	}
	slices.SortStableFunc(items, func(a, b Drawable) int {
		switch {
		case a.Z < b.Z:
			return -1
		case a.Z > b.Z:
			return 1
		default:
			return 0
		}
	})
	return slices.Values(items)
}

// OverlayLines returns the final score screen text, top line first, or nil
// when the screen is not shown.
func (s *Simulation) OverlayLines() []string {
	view := ecs.NewView[struct {
		*OverlayText
	}](s.storage)

	var texts []OverlayText
	for item := range view.Iter() {
		texts = append(texts, *item.OverlayText)
	}
	slices.SortFunc(texts, func(a, b OverlayText) int { return a.Line - b.Line })

	var lines []string
	for _, text := range texts {
		lines = append(lines, text.Text)
	}
	return lines
}
