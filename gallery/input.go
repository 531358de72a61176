package gallery

import (
	"github.com/charmbracelet/log"
	"github.com/plus3/takeashot/ecs"
	"github.com/plus3/takeashot/gallery/atlas"
)

// EventKind distinguishes queued input events.
type EventKind int

const (
	CursorMoved EventKind = iota
	ButtonChanged
)

// MouseButton identifies a mouse button.
type MouseButton int

const (
	ButtonLeft MouseButton = iota
	ButtonRight
	ButtonMiddle
)

// InputEvent is one edge reported by the platform. Cursor positions are
// screen coordinates with the origin at the bottom-left and y up.
type InputEvent struct {
	Kind    EventKind
	X, Y    float32
	Button  MouseButton
	Pressed bool
}

// InputQueue collects the events of one frame. The simulation clears it after
// every Update.
type InputQueue struct {
	Events         []InputEvent
	RestartPressed bool
}

// MoveCursor queues an absolute cursor position.
func (q *InputQueue) MoveCursor(x, y float32) {
	q.Events = append(q.Events, InputEvent{Kind: CursorMoved, X: x, Y: y})
}

// Press queues a button press edge.
func (q *InputQueue) Press(button MouseButton) {
	q.Events = append(q.Events, InputEvent{Kind: ButtonChanged, Button: button, Pressed: true})
}

// Release queues a button release edge.
func (q *InputQueue) Release(button MouseButton) {
	q.Events = append(q.Events, InputEvent{Kind: ButtonChanged, Button: button})
}

// Restart flags the restart key as pressed this frame.
func (q *InputQueue) Restart() {
	q.RestartPressed = true
}

func (q *InputQueue) reset() {
	q.Events = q.Events[:0]
	q.RestartPressed = false
}

// ScreenToWorld maps a bottom-left-origin screen position into world space
// centred on the viewport.
func ScreenToWorld(screen, viewport Vec2) Vec2 {
	return Vec2{X: screen.X - viewport.X/2, Y: screen.Y - viewport.Y/2}
}

// CursorSystem moves the crosshair to the cursor and the rifle to a fixed
// offset below-right of it, remembering the aim point for FireSystem.
type CursorSystem struct {
	Viewport Vec2
	Offset   Vec2

	Input     ecs.Singleton[InputQueue]
	Game      ecs.Singleton[Game]
	Crosshair ecs.Query[struct {
		*Transform
		*Crosshair
	}]
	Rifle ecs.Query[struct {
		*Transform
		*Rifle
	}]
}

func (s *CursorSystem) Execute(frame *ecs.UpdateFrame) {
	game := s.Game.Get()
	for _, event := range s.Input.Get().Events {
		if event.Kind != CursorMoved {
			continue
		}
		aim := ScreenToWorld(Vec2{event.X, event.Y}, s.Viewport)
		for rifle := range s.Rifle.Iter() {
			rifle.Transform.X = aim.X + s.Offset.X
			rifle.Transform.Y = aim.Y - s.Offset.Y
		}
		for crosshair := range s.Crosshair.Iter() {
			crosshair.Transform.X = aim.X
			crosshair.Transform.Y = aim.Y
		}
		game.LastMouse = aim
	}
}

// Shot is the outcome of one trigger pull.
type Shot struct {
	Aim    Vec2
	Hits   int
	Points uint
}

// ShotLog records trigger pulls. Frame holds the current Update's shots for
// sound effects; the totals span the simulation's lifetime.
type ShotLog struct {
	Frame       []Shot
	TotalShots  int
	TotalHits   int
	TotalPoints uint
}

func (l *ShotLog) record(shot Shot) {
	l.Frame = append(l.Frame, shot)
	l.TotalShots++
	l.TotalHits += shot.Hits
	l.TotalPoints += shot.Points
}

// FireSystem scores a left-button press against every target under the aim
// point. Every hit target scores; there is no ammo check. Any other button
// event puts the rifle and crosshair back to their idle sprites.
type FireSystem struct {
	Logger *log.Logger

	Input   ecs.Singleton[InputQueue]
	Game    ecs.Singleton[Game]
	Shots   ecs.Singleton[ShotLog]
	Targets ecs.Query[struct {
		*Transform
		*Target
	}]
	Rifle ecs.Query[struct {
		*Sprite
		*Rifle
	}]
	Crosshair ecs.Query[struct {
		*Sprite
		*Crosshair
	}]
}

func (s *FireSystem) Execute(frame *ecs.UpdateFrame) {
	game := s.Game.Get()
	for _, event := range s.Input.Get().Events {
		if event.Kind != ButtonChanged {
			continue
		}
		if event.Button != ButtonLeft || !event.Pressed {
			s.setSprites(atlas.Rifle, atlas.Crosshair)
			continue
		}

		shot := Shot{Aim: game.LastMouse}
		for target := range s.Targets.Iter() {
			if IsHit(game.LastMouse, Vec2{target.Transform.X, target.Transform.Y}, target.HitBox) {
				game.Score += target.Points
				shot.Hits++
				shot.Points += target.Points
			}
		}
		s.Shots.Get().record(shot)
		if shot.Hits > 0 {
			s.Logger.Debug("hit", "targets", shot.Hits, "points", shot.Points, "score", game.Score)
		}

		s.setSprites(atlas.RifleFired, atlas.CrosshairFired)
	}
}

func (s *FireSystem) setSprites(rifle, crosshair int) {
	for item := range s.Rifle.Iter() {
		item.Sprite.Index = rifle
	}
	for item := range s.Crosshair.Iter() {
		item.Sprite.Index = crosshair
	}
}

// RestartSystem starts a new round when the restart key is pressed on the
// final score screen.
type RestartSystem struct {
	States *ecs.StateMachine[GameState]
	Input  ecs.Singleton[InputQueue]
}

func (s *RestartSystem) Execute(frame *ecs.UpdateFrame) {
	if !s.Input.Get().RestartPressed {
		return
	}
	if _, pending := s.States.Pending(); pending {
		return
	}
	s.States.Set(Playing)
}
