package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/takeashot/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// commandsFor runs fn as a system in a single scheduler pass so that its
// commands are flushed the way systems see them.
func commandsFor(storage *ecs.Storage, fn func(commands *ecs.Commands)) {
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(ecs.SystemFunc(func(frame *ecs.UpdateFrame) {
		fn(frame.Commands)
	}))
	scheduler.Once(0)
}

func TestCommandsAreDeferred(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	commandsFor(storage, func(commands *ecs.Commands) {
		commands.Spawn(Position{X: 1})
		assert.True(t, commands.Pending())
		assert.Equal(t, 0, storage.Count(), "spawn is not applied until flush")
	})

	assert.Equal(t, 1, storage.Count())
}

func TestCommandsFlushOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	doomed := storage.Spawn(Position{X: 1})
	tagged := storage.Spawn(Position{X: 2})
	stripped := storage.Spawn(Position{X: 3}, Velocity{})

	var seen int
	commandsFor(storage, func(commands *ecs.Commands) {
		commands.Defer(func() { seen = storage.Count() })
		commands.Spawn(Label{Value: "new"})
		commands.AddComponent(tagged, Marker{})
		commands.AddComponent(doomed, Marker{})
		commands.RemoveComponent(stripped, reflect.TypeFor[Velocity]())
		commands.Delete(doomed)
	})

	assert.Equal(t, 3, seen, "defers run after every other operation")
	assert.False(t, storage.Alive(doomed))
	assert.Equal(t, 1, ecs.NewView[struct {
		*Position
		*Marker
	}](storage).Count())
	assert.Equal(t, 0, ecs.NewView[movingView](storage).Count())
}

func TestCommandsDespawnRecursive(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	root := storage.Spawn(Label{Value: "overlay"})
	commandsFor(storage, func(commands *ecs.Commands) {
		commands.SpawnChild(root, Label{Value: "Final Score: 0"})
		commands.SpawnChild(root, Label{Value: "Press space"})
	})
	require.Len(t, storage.Children(root), 2)

	commandsFor(storage, func(commands *ecs.Commands) {
		commands.DespawnRecursive(root)
		commands.DespawnRecursive(root)
		commands.AddComponent(root, Marker{})
	})
	assert.Equal(t, 0, storage.Count())
}

func TestCommandsDeferCanQueueMore(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	commands := &ecs.Commands{}

	commands.Defer(func() { commands.Spawn(Position{}) })
	commands.Flush(storage)
	assert.Equal(t, 0, storage.Count())
	assert.True(t, commands.Pending())

	commands.Flush(storage)
	assert.Equal(t, 1, storage.Count())
	assert.False(t, commands.Pending())
}
