package ecs_test

import "github.com/plus3/takeashot/ecs"

type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Label struct {
	Value string
}

type Points int

type Marker struct{}

type Counter struct {
	Ticks int
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Label](registry)
	ecs.RegisterComponent[Points](registry)
	ecs.RegisterComponent[Marker](registry)
	return registry
}
