package ecs

import "reflect"

// Commands buffers structural changes made while systems run. The Scheduler
// flushes them after the systems of a pass (or a transition phase) finish.
type Commands struct {
	spawns   []spawnCommand
	deletes  []EntityId
	despawns []EntityId
	adds     []addComponentCommand
	removes  []removeComponentCommand
	defers   []func()
}

func newCommands() *Commands {
	return &Commands{}
}

type spawnCommand struct {
	parent     EntityId
	components []any
}

type addComponentCommand struct {
	entity    EntityId
	component any
}

type removeComponentCommand struct {
	entity   EntityId
	compType reflect.Type
}

// Defer queues fn to run after all other queued operations.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Spawn queues an entity spawn with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, spawnCommand{components: components})
}

// SpawnChild queues a spawn linked under an existing parent.
func (c *Commands) SpawnChild(parent EntityId, components ...any) {
	c.spawns = append(c.spawns, spawnCommand{parent: parent, components: components})
}

// Delete queues removal of a single entity.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// DespawnRecursive queues removal of an entity and all of its descendants.
func (c *Commands) DespawnRecursive(entity EntityId) {
	c.despawns = append(c.despawns, entity)
}

// AddComponent queues a component addition.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.adds = append(c.adds, addComponentCommand{entity: entity, component: component})
}

// RemoveComponent queues a component removal.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.removes = append(c.removes, removeComponentCommand{entity: entity, compType: compType})
}

// Pending reports whether any operation is queued.
func (c *Commands) Pending() bool {
	return len(c.spawns)+len(c.deletes)+len(c.despawns)+len(c.adds)+len(c.removes)+len(c.defers) > 0
}

// Flush applies queued operations to storage in the order deletes, recursive
// despawns, removes, adds, spawns, defers, then resets the buffer. Adds and
// removes aimed at entities deleted in the same flush are dropped.
func (c *Commands) Flush(storage *Storage) {
	deleted := make(map[EntityId]bool)

	for _, id := range c.deletes {
		storage.Delete(id)
		deleted[id] = true
	}

	for _, id := range c.despawns {
		storage.DespawnRecursive(id)
		deleted[id] = true
	}

	for _, cmd := range c.removes {
		if !deleted[cmd.entity] {
			storage.RemoveComponent(cmd.entity, cmd.compType)
		}
	}

	for _, cmd := range c.adds {
		if !deleted[cmd.entity] {
			storage.AddComponent(cmd.entity, cmd.component)
		}
	}

	for _, cmd := range c.spawns {
		if cmd.parent != 0 {
			storage.SpawnChild(cmd.parent, cmd.components...)
		} else {
			storage.Spawn(cmd.components...)
		}
	}

	defers := c.defers
	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.despawns = c.despawns[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = nil

	for _, fn := range defers {
		fn()
	}
}
