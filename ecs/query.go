package ecs

import "iter"

// Query is a View whose matches are snapshotted once per system run. The
// Scheduler calls Execute before running the owning system, so Iter inside
// Execute never sees entities spawned by deferred Commands mid-frame.
type Query[T any] struct {
	view               *View[T]
	storage            *Storage
	cachedArchetypes   []*Archetype
	lastArchetypeCount int

	cachedEntities   []EntityId
	cachedComponents []T
	cacheValid       bool
}

// NewQuery creates a Query bound to storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds or rebinds the Query to a storage.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.cachedArchetypes = nil
	q.lastArchetypeCount = -1
	q.cacheValid = false
}

// Execute rebuilds the snapshot of matching entities.
func (q *Query[T]) Execute() {
	if count := len(q.storage.archetypes); count != q.lastArchetypeCount {
		q.cachedArchetypes = q.cachedArchetypes[:0]
		for _, archetype := range q.storage.archetypes {
			if q.view.matchesArchetype(archetype) {
				q.cachedArchetypes = append(q.cachedArchetypes, archetype)
			}
		}
		q.lastArchetypeCount = count
	}

	q.cachedEntities = q.cachedEntities[:0]
	q.cachedComponents = q.cachedComponents[:0]

	for _, archetype := range q.cachedArchetypes {
		for id, item := range q.view.iterArchetype(archetype) {
			q.cachedEntities = append(q.cachedEntities, id)
			q.cachedComponents = append(q.cachedComponents, item)
		}
	}

	q.cacheValid = true
}

// Iter yields the snapshot's view structs.
// Panics if Execute has not been called.
func (q *Query[T]) Iter() iter.Seq[T] {
	if !q.cacheValid {
		panic("Query.Iter() called before Query.Execute()")
	}

	return func(yield func(T) bool) {
		for i := range q.cachedComponents {
			if !yield(q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Entities yields the IDs of the snapshot's entities.
// Panics if Execute has not been called.
func (q *Query[T]) Entities() iter.Seq[EntityId] {
	if !q.cacheValid {
		panic("Query.Entities() called before Query.Execute()")
	}

	return func(yield func(EntityId) bool) {
		for _, id := range q.cachedEntities {
			if !yield(id) {
				return
			}
		}
	}
}

// Len returns the number of entities in the snapshot.
func (q *Query[T]) Len() int {
	return len(q.cachedEntities)
}
