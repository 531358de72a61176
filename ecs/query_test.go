package ecs_test

import (
	"testing"

	"github.com/plus3/takeashot/ecs"
	"github.com/stretchr/testify/assert"
)

func TestQuerySnapshot(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Position{X: 1}, Velocity{})

	query := ecs.NewQuery[movingView](storage)
	assert.Panics(t, func() { query.Iter() })
	assert.Panics(t, func() { query.Entities() })

	query.Execute()
	assert.Equal(t, 1, query.Len())

	storage.Spawn(Position{X: 2}, Velocity{})
	assert.Equal(t, 1, query.Len(), "snapshot is not refreshed until Execute")

	query.Execute()
	assert.Equal(t, 2, query.Len())
}

func TestQuerySeesNewArchetypes(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	query := ecs.NewQuery[movingView](storage)

	query.Execute()
	assert.Equal(t, 0, query.Len())

	storage.Spawn(Position{}, Velocity{}, Marker{})
	query.Execute()

	count := 0
	for item := range query.Iter() {
		assert.NotNil(t, item.Position)
		count++
	}
	assert.Equal(t, 1, count)
	for id := range query.Entities() {
		assert.True(t, storage.Alive(id))
	}
}

func TestQueryPointersWriteThrough(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 1}, Velocity{DX: 2})

	query := ecs.NewQuery[movingView](storage)
	query.Execute()
	for item := range query.Iter() {
		item.Position.X += item.Velocity.DX
	}

	assert.Equal(t, float32(3), ecs.ReadComponent[Position](storage, id).X)
}
