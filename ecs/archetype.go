package ecs

import (
	"reflect"
	"slices"
	"weak"

	"github.com/kamstrup/intmap"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// Archetype holds every entity that has exactly the same set of component
// types. Columns are parallel: slot i of every column belongs to one entity.
type Archetype struct {
	id       uint32
	types    []reflect.Type
	storages []iComponentStorage
	refs     *intmap.Map[EntityId, weak.Pointer[EntityRef]]
}

// NewArchetype creates an archetype for the given sorted component types.
// It panics if any type is not registered.
func NewArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:       id,
		types:    types,
		storages: make([]iComponentStorage, len(types)),
		refs:     intmap.New[EntityId, weak.Pointer[EntityRef]](64),
	}

	for idx, typ := range types {
		factory := registry.getFactory(typ)
		if factory == nil {
			panic("component type " + typ.String() + " not registered")
		}
		a.storages[idx] = factory()
	}

	return a
}

func (a *Archetype) columnOf(compType reflect.Type) int {
	for i, typ := range a.types {
		if typ == compType {
			return i
		}
	}
	return -1
}

// Spawn appends one entity and returns its slot index.
func (a *Archetype) Spawn(components []any) uint32 {
	slot := -1
	for _, comp := range components {
		col := a.columnOf(componentType(comp))
		if col == -1 {
			continue
		}
		slot = a.storages[col].Append(comp)
	}
	if slot < 0 {
		panic("archetype spawn stored no components")
	}
	return uint32(slot)
}

// GetComponent returns a pointer to the entity's component of compType, or nil.
func (a *Archetype) GetComponent(entityIndex uint32, compType reflect.Type) any {
	col := a.columnOf(compType)
	if col == -1 {
		return nil
	}
	return a.storages[col].Get(int(entityIndex))
}

// Alive reports whether the slot currently holds an entity.
func (a *Archetype) Alive(entityIndex uint32) bool {
	if len(a.storages) == 0 {
		return false
	}
	return a.storages[0].Has(int(entityIndex))
}

// Delete frees the entity's slot and invalidates any EntityRef to it.
func (a *Archetype) Delete(entityIndex uint32) {
	entityId := NewEntityId(a.id, entityIndex)

	if weakPtr, ok := a.refs.Get(entityId); ok {
		if ref := weakPtr.Value(); ref != nil {
			ref.Id = 0
			ref.Archetype = nil
		}
		a.refs.Del(entityId)
	}

	for _, storage := range a.storages {
		storage.Delete(int(entityIndex))
	}
}

// HasComponent checks if this archetype has the given component type
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

// ID returns the archetype's identifier
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types of this archetype
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities in the archetype.
func (a *Archetype) Len() int {
	if len(a.storages) == 0 {
		return 0
	}
	return a.storages[0].Len()
}

// Compact removes holes left by deletions. Live EntityRefs are moved to the
// new slots; the returned map gives old→new entity IDs for entities that moved.
func (a *Archetype) Compact() map[EntityId]EntityId {
	moved := make(map[EntityId]EntityId)
	if len(a.storages) == 0 {
		return moved
	}

	indexMap := a.storages[0].Compact()
	for _, storage := range a.storages[1:] {
		storage.Compact()
	}

	refs := make(map[EntityId]weak.Pointer[EntityRef])
	for oldIdx, newIdx := range indexMap {
		oldId := NewEntityId(a.id, uint32(oldIdx))
		newId := NewEntityId(a.id, uint32(newIdx))
		if oldId != newId {
			moved[oldId] = newId
		}
		if weakPtr, ok := a.refs.Get(oldId); ok {
			if ref := weakPtr.Value(); ref != nil {
				ref.Id = newId
				refs[newId] = weakPtr
			}
		}
	}

	a.refs.Clear()
	for id, weakPtr := range refs {
		a.refs.Put(id, weakPtr)
	}
	return moved
}

// Iter yields the IDs of all live entities in this archetype
func (a *Archetype) Iter() func(yield func(EntityId) bool) {
	return func(yield func(EntityId) bool) {
		if len(a.storages) == 0 {
			return
		}
		for index := range a.storages[0].Iter() {
			if !yield(NewEntityId(a.id, uint32(index))) {
				return
			}
		}
	}
}
