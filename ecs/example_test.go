package ecs_test

import (
	"fmt"
	"time"

	"github.com/plus3/takeashot/ecs"
)

func ExampleView() {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Position{X: -300}, Velocity{DX: 3})

	view := ecs.NewView[movingView](storage)
	for range 4 {
		for item := range view.Iter() {
			item.Position.X += item.Velocity.DX
		}
	}

	for item := range view.Iter() {
		fmt.Println(item.Position.X)
	}
	// Output: -288
}

func ExampleScheduler_RegisterFixed() {
	storage := ecs.NewStorage(newTestRegistry())
	clock := ecs.NewSingleton(storage, Counter{Ticks: 3})

	scheduler := ecs.NewScheduler(storage)
	scheduler.RegisterFixed(time.Second, ecs.SystemFunc(func(*ecs.UpdateFrame) {
		clock.Get().Ticks--
		fmt.Println("tick", clock.Get().Ticks)
	}))

	for range 5 {
		scheduler.Once(0.5)
	}
	// Output:
	// tick 2
	// tick 1
}

func ExampleStateMachine() {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	states := ecs.NewStateMachine("playing")
	states.OnEnter("playing", ecs.SystemFunc(func(*ecs.UpdateFrame) { fmt.Println("spawn targets") }))
	states.OnExit("playing", ecs.SystemFunc(func(*ecs.UpdateFrame) { fmt.Println("teardown") }))
	states.OnEnter("over", ecs.SystemFunc(func(*ecs.UpdateFrame) { fmt.Println("show score") }))
	states.Observe(func(from, to string) { fmt.Println(from, "->", to) })
	scheduler.AddStates(states)

	scheduler.Once(0)
	states.Set("over")
	scheduler.Once(0)
	// Output:
	// spawn targets
	// teardown
	// playing -> over
	// show score
}
