package ecs_test

import (
	"testing"

	"github.com/plus3/takeashot/ecs"
)

func BenchmarkSpawn(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())
	for b.Loop() {
		storage.Spawn(Position{X: 1}, Velocity{DX: 1})
	}
}

func BenchmarkQueryIterate(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())
	for i := range 1000 {
		storage.Spawn(Position{X: float32(i)}, Velocity{DX: 1})
		storage.Spawn(Position{X: float32(i)}, Velocity{DX: 1}, Label{})
	}
	query := ecs.NewQuery[movingView](storage)

	for b.Loop() {
		query.Execute()
		for item := range query.Iter() {
			item.Position.X += item.Velocity.DX
		}
	}
}

func BenchmarkDespawnRecursive(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())
	for b.Loop() {
		root := storage.Spawn(Label{Value: "hud"})
		for range 8 {
			storage.SpawnChild(root, Position{})
		}
		storage.DespawnRecursive(root)
	}
}
