package gallery

import "github.com/plus3/takeashot/ecs"

// advanceCloud drifts a cloud right by one unit, jumping back to the left
// edge once it passes the right one.
func advanceCloud(x float32) float32 {
	x++
	if x > cloudLimit {
		x = -cloudLimit
	}
	return x
}

func advanceBackWave(x float32) float32 {
	x -= 2
	if x < -backWaveLimit {
		x = backWaveLimit
	}
	return x
}

func advanceFrontWave(x float32) float32 {
	x += 2
	if x > frontWaveLimit {
		x = frontWaveReturn
	}
	return x
}

// advanceTarget moves a target or stick right by speed with a hard reset to
// the left edge.
func advanceTarget(x, speed float32) float32 {
	x += speed
	if x > targetLimit {
		x = -targetLimit
	}
	return x
}

// bobTarget alternates an up/down target between its start height and half
// of it.
func bobTarget(y, startY float32) float32 {
	if y == startY {
		return startY / 2
	}
	return startY
}

// AmbientSystem scrolls clouds and water on the motion tick.
type AmbientSystem struct {
	States *ecs.StateMachine[GameState]

	Clouds ecs.Query[struct {
		*Transform
		*Cloud
	}]
	BackWaves ecs.Query[struct {
		*Transform
		*BackWave
	}]
	FrontWaves ecs.Query[struct {
		*Transform
		*FrontWave
	}]
}

func (s *AmbientSystem) Execute(frame *ecs.UpdateFrame) {
	if s.States.Current() != Playing {
		return
	}

	for cloud := range s.Clouds.Iter() {
		cloud.Transform.X = advanceCloud(cloud.Transform.X)
	}
	for wave := range s.BackWaves.Iter() {
		wave.Transform.X = advanceBackWave(wave.Transform.X)
	}
	for wave := range s.FrontWaves.Iter() {
		wave.Transform.X = advanceFrontWave(wave.Transform.X)
	}
}

// TargetMotionSystem moves targets and their sticks on the motion tick.
// A stick whose target has gone is removed.
type TargetMotionSystem struct {
	States *ecs.StateMachine[GameState]

	Targets ecs.Query[struct {
		*Transform
		*Target
	}]
	Sticks ecs.Query[struct {
		ecs.EntityId
		*Transform
		*TargetStick
	}]
}

func (s *TargetMotionSystem) Execute(frame *ecs.UpdateFrame) {
	if s.States.Current() != Playing {
		return
	}

	for target := range s.Targets.Iter() {
		target.Transform.X = advanceTarget(target.Transform.X, target.Speed)
		if target.UpDown {
			target.Transform.Y = bobTarget(target.Transform.Y, target.StartY)
		}
	}

	for stick := range s.Sticks.Iter() {
		if stick.Target != nil {
			if _, ok := frame.Storage.ResolveEntityRef(stick.Target); !ok {
				frame.Commands.Delete(stick.EntityId)
				continue
			}
		}
		stick.Transform.X = advanceTarget(stick.Transform.X, stick.Speed)
	}
}
