package ecs_test

import (
	"reflect"
	"runtime"
	"testing"

	"github.com/plus3/takeashot/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityRefLifecycle(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 1})
	ref := storage.CreateEntityRef(id)
	require.NotNil(t, ref)

	resolved, ok := storage.ResolveEntityRef(ref)
	require.True(t, ok)
	assert.Equal(t, id, resolved)
	assert.Same(t, ref, storage.CreateEntityRef(id), "one ref per entity while it is held")

	storage.Delete(id)
	_, ok = storage.ResolveEntityRef(ref)
	assert.False(t, ok)
	assert.Equal(t, ecs.EntityId(0), ref.Id)
	assert.Nil(t, ref.Archetype)
}

func TestEntityRefForDeadEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{})
	storage.Delete(id)

	assert.Nil(t, storage.CreateEntityRef(id))
	_, ok := storage.ResolveEntityRef(nil)
	assert.False(t, ok)
}

func TestEntityRefFollowsArchetypeMoves(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 5})
	ref := storage.CreateEntityRef(id)

	moved := storage.AddComponent(id, Velocity{DX: 1})
	resolved, ok := storage.ResolveEntityRef(ref)
	require.True(t, ok)
	assert.Equal(t, moved, resolved)

	back := storage.RemoveComponent(moved, reflect.TypeFor[Velocity]())
	resolved, ok = storage.ResolveEntityRef(ref)
	require.True(t, ok)
	assert.Equal(t, back, resolved)
	assert.Equal(t, float32(5), ecs.ReadComponent[Position](storage, resolved).X)
}

func TestInvalidateEntityRef(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{})
	ref := storage.CreateEntityRef(id)

	assert.True(t, storage.InvalidateEntityRef(ref))
	assert.False(t, storage.InvalidateEntityRef(ref))
	assert.True(t, storage.Alive(id), "invalidating a ref leaves the entity alone")

	fresh := storage.CreateEntityRef(id)
	assert.NotSame(t, ref, fresh)
}

func TestEntityRefCollected(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{})
	storage.CreateEntityRef(id)
	runtime.GC()

	ref := storage.CreateEntityRef(id)
	require.NotNil(t, ref)
	resolved, ok := storage.ResolveEntityRef(ref)
	assert.True(t, ok)
	assert.Equal(t, id, resolved)
}
