package ecs

import (
	"iter"
	"maps"
	"reflect"
	"slices"
	"sort"
	"unsafe"
	"weak"

	"github.com/kamstrup/intmap"
)

// Storage owns every archetype, singleton and parent/child link of one world.
type Storage struct {
	archetypes map[uint32]*Archetype
	registry   *ComponentRegistry
	singletons map[reflect.Type]*singletonEntry

	parents  *intmap.Map[EntityId, EntityId]
	children *intmap.Map[EntityId, []EntityId]
}

type singletonEntry struct {
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// NewStorage creates an empty world backed by the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: make(map[uint32]*Archetype),
		registry:   registry,
		singletons: make(map[reflect.Type]*singletonEntry),
		parents:    intmap.New[EntityId, EntityId](64),
		children:   intmap.New[EntityId, []EntityId](64),
	}
}

// Registry returns the component registry the storage was built with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

func (s *Storage) CreateEntityRef(id EntityId) *EntityRef {
	archetype := s.archetypes[id.ArchetypeId()]
	if archetype == nil || !archetype.Alive(id.Index()) {
		return nil
	}

	if weakPtr, ok := archetype.refs.Get(id); ok {
		if ref := weakPtr.Value(); ref != nil {
			return ref
		}
		archetype.refs.Del(id)
	}

	ref := &EntityRef{
		Id:        id,
		Archetype: archetype,
	}
	archetype.refs.Put(id, weak.Make(ref))
	return ref
}

func (s *Storage) ResolveEntityRef(ref *EntityRef) (EntityId, bool) {
	if ref == nil || ref.Id == 0 {
		return 0, false
	}
	return ref.Id, true
}

func (s *Storage) InvalidateEntityRef(ref *EntityRef) bool {
	if ref == nil || ref.Id == 0 {
		return false
	}

	if archetype := s.archetypes[ref.Id.ArchetypeId()]; archetype != nil {
		archetype.refs.Del(ref.Id)
	}

	ref.Id = 0
	ref.Archetype = nil
	return true
}

// GetArchetype returns the archetype holding exactly these component types, if any
func (s *Storage) GetArchetype(components ...any) *Archetype {
	types := extractComponentTypes(components)
	return s.archetypes[hashTypesToUint32(types)]
}

// GetArchetypeByTypes is GetArchetype keyed by reflect.Type
func (s *Storage) GetArchetypeByTypes(types []reflect.Type) *Archetype {
	sorted := slices.Clone(types)
	sort.Sort(byTypeName(sorted))
	return s.archetypes[hashTypesToUint32(sorted)]
}

// Archetypes yields every archetype in the storage
func (s *Storage) Archetypes() iter.Seq[*Archetype] {
	return func(yield func(*Archetype) bool) {
		for _, archetype := range s.archetypes {
			if !yield(archetype) {
				return
			}
		}
	}
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	id := hashTypesToUint32(types)
	archetype, exists := s.archetypes[id]
	if !exists {
		archetype = NewArchetype(id, types, s.registry)
		s.archetypes[id] = archetype
	}
	return archetype
}

// Spawn creates a new entity with the provided components
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	archetype := s.archetypeFor(extractComponentTypes(components))
	return NewEntityId(archetype.id, archetype.Spawn(components))
}

// SpawnChild spawns an entity and links it under parent, so that
// DespawnRecursive(parent) removes it too.
func (s *Storage) SpawnChild(parent EntityId, components ...any) EntityId {
	child := s.Spawn(components...)
	s.SetParent(child, parent)
	return child
}

// SetParent links child under parent, detaching it from any previous parent.
func (s *Storage) SetParent(child, parent EntityId) {
	s.detach(child)
	s.parents.Put(child, parent)
	kids, _ := s.children.Get(parent)
	s.children.Put(parent, append(kids, child))
}

// Parent returns the entity's parent, if it has one.
func (s *Storage) Parent(id EntityId) (EntityId, bool) {
	return s.parents.Get(id)
}

// Children returns a copy of the entity's direct children.
func (s *Storage) Children(id EntityId) []EntityId {
	kids, _ := s.children.Get(id)
	return slices.Clone(kids)
}

func (s *Storage) detach(child EntityId) {
	parent, ok := s.parents.Get(child)
	if !ok {
		return
	}
	s.parents.Del(child)
	kids, _ := s.children.Get(parent)
	for i, kid := range kids {
		if kid == child {
			kids = append(kids[:i], kids[i+1:]...)
			break
		}
	}
	if len(kids) == 0 {
		s.children.Del(parent)
	} else {
		s.children.Put(parent, kids)
	}
}

// relink moves hierarchy bookkeeping from an entity's old ID to its new one.
func (s *Storage) relink(oldId, newId EntityId) {
	s.relinkAll(map[EntityId]EntityId{oldId: newId})
}

type hierarchyLinks struct {
	parent    EntityId
	hasParent bool
	kids      []EntityId
}

// relinkAll applies a batch of ID moves to the hierarchy. A new ID may be
// another entry's old ID, so every link is read before any is written.
func (s *Storage) relinkAll(moved map[EntityId]EntityId) {
	remap := func(id EntityId) EntityId {
		if newId, ok := moved[id]; ok {
			return newId
		}
		return id
	}

	snapshot := make(map[EntityId]hierarchyLinks, len(moved))
	for oldId := range moved {
		var links hierarchyLinks
		links.parent, links.hasParent = s.parents.Get(oldId)
		links.kids, _ = s.children.Get(oldId)
		if links.hasParent || links.kids != nil {
			snapshot[oldId] = links
		}
	}
	for oldId := range snapshot {
		s.parents.Del(oldId)
		s.children.Del(oldId)
	}

	// parents that stay put but hold moved children
	stayed := make(map[EntityId]struct{})
	for oldId, links := range snapshot {
		newId := moved[oldId]
		if links.hasParent {
			s.parents.Put(newId, remap(links.parent))
			if _, ok := moved[links.parent]; !ok {
				stayed[links.parent] = struct{}{}
			}
		}
		if links.kids != nil {
			kids := make([]EntityId, len(links.kids))
			for i, kid := range links.kids {
				kids[i] = remap(kid)
				s.parents.Put(kids[i], newId)
			}
			s.children.Put(newId, kids)
		}
	}
	for parent := range stayed {
		kids, _ := s.children.Get(parent)
		for i, kid := range kids {
			kids[i] = remap(kid)
		}
	}
}

// Alive reports whether id currently names a live entity
func (s *Storage) Alive(id EntityId) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return false
	}
	return archetype.Alive(id.Index())
}

// Delete removes the entity's components. Its children are orphaned, not
// removed; use DespawnRecursive for subtrees.
func (s *Storage) Delete(id EntityId) {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return
	}

	s.detach(id)
	if kids, ok := s.children.Get(id); ok {
		for _, kid := range kids {
			s.parents.Del(kid)
		}
		s.children.Del(id)
	}
	archetype.Delete(id.Index())
}

// DespawnRecursive removes the entity and its whole subtree and returns how
// many entities were removed. Already-removed entities are skipped.
func (s *Storage) DespawnRecursive(id EntityId) int {
	removed := 0
	for _, kid := range s.Children(id) {
		removed += s.DespawnRecursive(kid)
	}
	if s.Alive(id) {
		removed++
		s.Delete(id)
	} else {
		s.detach(id)
		s.children.Del(id)
	}
	return removed
}

// Entities yields the ID of every live entity
func (s *Storage) Entities() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		for _, archetype := range s.archetypes {
			for id := range archetype.Iter() {
				if !yield(id) {
					return
				}
			}
		}
	}
}

// Count returns the number of live entities
func (s *Storage) Count() int {
	total := 0
	for _, archetype := range s.archetypes {
		total += archetype.Len()
	}
	return total
}

// Compact compacts every archetype. Entity IDs may change; EntityRefs and
// parent/child links follow their entities.
func (s *Storage) Compact() {
	moved := make(map[EntityId]EntityId)
	for _, archetype := range s.archetypes {
		maps.Copy(moved, archetype.Compact())
	}
	if len(moved) > 0 {
		s.relinkAll(moved)
	}
}

// moveEntity respawns the entity into the archetype for newTypes using the
// given components, carrying its EntityRef and hierarchy along.
func (s *Storage) moveEntity(id EntityId, oldArchetype *Archetype, newTypes []reflect.Type, components []any) EntityId {
	newArchetype := s.archetypeFor(newTypes)
	newId := NewEntityId(newArchetype.id, newArchetype.Spawn(components))

	if weakPtr, ok := oldArchetype.refs.Get(id); ok {
		if ref := weakPtr.Value(); ref != nil {
			ref.Id = newId
			ref.Archetype = newArchetype
			newArchetype.refs.Put(newId, weakPtr)
		}
		oldArchetype.refs.Del(id)
	}

	for _, storage := range oldArchetype.storages {
		storage.Delete(int(id.Index()))
	}
	s.relink(id, newId)
	return newId
}

// AddComponent adds (or replaces) a component and returns the entity's new ID
func (s *Storage) AddComponent(id EntityId, component any) EntityId {
	oldArchetype := s.archetypes[id.ArchetypeId()]
	if oldArchetype == nil || !oldArchetype.Alive(id.Index()) {
		return 0
	}

	compType := componentType(component)
	if oldArchetype.HasComponent(compType) {
		ptr := oldArchetype.GetComponent(id.Index(), compType)
		reflect.ValueOf(ptr).Elem().Set(reflect.Indirect(reflect.ValueOf(component)))
		return id
	}

	newTypes := append(slices.Clone(oldArchetype.types), compType)
	sort.Sort(byTypeName(newTypes))

	components := make([]any, 0, len(newTypes))
	for _, typ := range newTypes {
		if typ == compType {
			components = append(components, component)
		} else {
			components = append(components, oldArchetype.GetComponent(id.Index(), typ))
		}
	}

	return s.moveEntity(id, oldArchetype, newTypes, components)
}

// RemoveComponent removes a component and returns the entity's new ID. An
// entity left with no components is deleted and 0 is returned.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) EntityId {
	oldArchetype := s.archetypes[id.ArchetypeId()]
	if oldArchetype == nil || !oldArchetype.Alive(id.Index()) {
		return 0
	}
	if !oldArchetype.HasComponent(compType) {
		return id
	}

	newTypes := make([]reflect.Type, 0, len(oldArchetype.types)-1)
	for _, typ := range oldArchetype.types {
		if typ != compType {
			newTypes = append(newTypes, typ)
		}
	}

	if len(newTypes) == 0 {
		s.Delete(id)
		return 0
	}

	components := make([]any, 0, len(newTypes))
	for _, typ := range newTypes {
		components = append(components, oldArchetype.GetComponent(id.Index(), typ))
	}

	return s.moveEntity(id, oldArchetype, newTypes, components)
}

// GetComponent returns a pointer to the entity's component of compType, or nil
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return nil
	}
	return archetype.GetComponent(id.Index(), compType)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return false
	}
	return archetype.HasComponent(compType)
}

// AddSingleton stores value as the singleton of its type, overwriting any
// previous value in place so existing Singleton accessors stay valid.
func (s *Storage) AddSingleton(value any) {
	t := reflect.TypeOf(value)
	if entry, ok := s.singletons[t]; ok {
		entry.value.Elem().Set(reflect.ValueOf(value))
		return
	}

	ptr := reflect.New(t)
	ptr.Elem().Set(reflect.ValueOf(value))
	s.singletons[t] = &singletonEntry{
		value:   ptr,
		dataPtr: ptr.UnsafePointer(),
	}
}

// RemoveSingleton drops the singleton of type t.
func (s *Storage) RemoveSingleton(t reflect.Type) {
	delete(s.singletons, t)
}

// ReadSingleton points *out at the singleton of the pointed-to type. out must
// be a **T. It returns false when no such singleton exists.
func (s *Storage) ReadSingleton(out any) bool {
	outValue := reflect.ValueOf(out)
	if outValue.Kind() != reflect.Ptr || outValue.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton expects a pointer to a pointer")
	}

	entry := s.getSingletonEntry(outValue.Elem().Type().Elem())
	if entry == nil {
		return false
	}
	outValue.Elem().Set(entry.value)
	return true
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

// componentType returns the component's value type, looking through pointers.
func componentType(comp any) reflect.Type {
	t := reflect.TypeOf(comp)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// extractComponentTypes returns the sorted component types of components
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		compType := componentType(comp)

		switch compType.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}

		types = append(types, compType)
	}
	sort.Sort(byTypeName(types))
	return types
}

// hashTypesToUint32 is FNV-1a over the runtime type pointers of sorted types
func hashTypesToUint32(types []reflect.Type) uint32 {
	var h uint32 = 2166136261
	const prime uint32 = 16777619

	for _, t := range types {
		ptr := uintptr(dataPointer(t))
		val := uint32(ptr)
		if unsafe.Sizeof(uintptr(0)) == 8 {
			val ^= uint32(uint64(ptr) >> 32)
		}
		h ^= val
		h *= prime
	}

	return h
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's T component, or nil if it has none
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
