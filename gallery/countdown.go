package gallery

import "github.com/plus3/takeashot/ecs"

// CountdownSystem runs on the countdown tick. With time left it takes a
// second off the clock and refreshes the clock digits; at zero it requests
// GameOver instead, so the round ends one tick after the clock reads 0:00.
type CountdownSystem struct {
	States *ecs.StateMachine[GameState]

	Game   ecs.Singleton[Game]
	Digits ecs.Query[struct {
		*Sprite
		*ClockDigit
	}]
}

func (s *CountdownSystem) Execute(frame *ecs.UpdateFrame) {
	if s.States.Current() != Playing {
		return
	}
	if _, pending := s.States.Pending(); pending {
		return
	}

	game := s.Game.Get()
	if game.TimeLeft == 0 {
		s.States.Set(GameOver)
		return
	}
	game.TimeLeft--

	for digit := range s.Digits.Iter() {
		if index, ok := digit.Kind.Index(game.TimeLeft); ok {
			digit.Sprite.Index = index
		}
	}
}

// ScoreDisplaySystem keeps the score digits in step with the score.
type ScoreDisplaySystem struct {
	Game   ecs.Singleton[Game]
	Digits ecs.Query[struct {
		*Sprite
		*ScoreDigit
	}]
}

func (s *ScoreDisplaySystem) Execute(frame *ecs.UpdateFrame) {
	score := s.Game.Get().Score
	for digit := range s.Digits.Iter() {
		digit.Sprite.Index = digit.Kind.Index(score)
	}
}
