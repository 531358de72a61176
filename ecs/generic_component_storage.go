package ecs

import (
	"iter"
	"reflect"
)

// ComponentRegistry knows how to build a column for each registered component
// type. Every Storage owns one, so independent simulations never share state.
type ComponentRegistry struct {
	factories map[reflect.Type]func() iComponentStorage
}

// NewComponentRegistry creates an empty component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() iComponentStorage),
	}
}

// RegisterComponent makes T usable as a component. Spawning an entity with an
// unregistered type panics.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() iComponentStorage {
		return &genericComponentStorage[T]{}
	}
}

// Registered reports whether t has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) getFactory(t reflect.Type) func() iComponentStorage {
	return r.factories[t]
}

const genericBlockSize = 64

// genericComponentStorage keeps components of type T in fixed-size blocks so
// pointers handed out by Get stay valid while the column grows.
type genericComponentStorage[T any] struct {
	blocks    [][genericBlockSize]T
	filled    [][genericBlockSize]bool
	freeSlots []int
	nextIndex int
	count     int
}

func blockOf(index int) (int, int) {
	return index / genericBlockSize, index % genericBlockSize
}

// Append stores item in a free slot (reusing deleted slots first) and returns
// the slot index, or -1 when item is not a T or *T.
func (cs *genericComponentStorage[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return -1
	}

	var index int
	if n := len(cs.freeSlots); n > 0 {
		index = cs.freeSlots[n-1]
		cs.freeSlots = cs.freeSlots[:n-1]
	} else {
		index = cs.nextIndex
		cs.nextIndex++
	}

	b, s := blockOf(index)
	for b >= len(cs.blocks) {
		cs.blocks = append(cs.blocks, [genericBlockSize]T{})
		cs.filled = append(cs.filled, [genericBlockSize]bool{})
	}

	cs.blocks[b][s] = value
	cs.filled[b][s] = true
	cs.count++
	return index
}

// Get returns a *T for the slot, or nil if the slot is empty.
func (cs *genericComponentStorage[T]) Get(index int) any {
	if !cs.Has(index) {
		return nil
	}
	b, s := blockOf(index)
	return &cs.blocks[b][s]
}

// Delete empties the slot. Deleting an empty slot is a no-op.
func (cs *genericComponentStorage[T]) Delete(index int) {
	if !cs.Has(index) {
		return
	}
	b, s := blockOf(index)
	var zero T
	cs.blocks[b][s] = zero
	cs.filled[b][s] = false
	cs.freeSlots = append(cs.freeSlots, index)
	cs.count--
}

// Has reports whether the slot holds a component.
func (cs *genericComponentStorage[T]) Has(index int) bool {
	if index < 0 {
		return false
	}
	b, s := blockOf(index)
	if b >= len(cs.filled) {
		return false
	}
	return cs.filled[b][s]
}

// Len returns the number of occupied slots.
func (cs *genericComponentStorage[T]) Len() int {
	return cs.count
}

// Compact packs occupied slots to the front and returns old→new indices.
func (cs *genericComponentStorage[T]) Compact() map[int]int {
	moved := make(map[int]int, cs.count)

	if cs.count == 0 {
		cs.blocks = nil
		cs.filled = nil
		cs.freeSlots = nil
		cs.nextIndex = 0
		return moved
	}

	numBlocks := (cs.count + genericBlockSize - 1) / genericBlockSize
	blocks := make([][genericBlockSize]T, numBlocks)
	filled := make([][genericBlockSize]bool, numBlocks)

	write := 0
	for read := range cs.Iter() {
		rb, rs := blockOf(read)
		wb, ws := blockOf(write)
		blocks[wb][ws] = cs.blocks[rb][rs]
		filled[wb][ws] = true
		moved[read] = write
		write++
	}

	cs.blocks = blocks
	cs.filled = filled
	cs.freeSlots = nil
	cs.nextIndex = write
	return moved
}

// Iter yields occupied slot indices in ascending order.
func (cs *genericComponentStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < cs.nextIndex; i++ {
			b, s := blockOf(i)
			if b >= len(cs.filled) || !cs.filled[b][s] {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}
