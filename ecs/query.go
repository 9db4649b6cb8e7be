package ecs

import (
	"iter"
	"reflect"
)

// Query wraps a View with caching for repeated iteration.
//
// Queries cache the matching archetypes and rebuild that cache only when the
// storage's archetype set changes. Execute snapshots the matching entities for
// the current frame; Iter and Values then walk the snapshot. A Query owned by
// a system also knows when that system last ran, which drives the added and
// changed filters and the Added/Changed helpers.
type Query[T any] struct {
	view               *View[T]
	storage            *Storage
	cachedArchetypes   []*Archetype
	lastArchetypeCount int
	lastRun            Tick

	cachedEntities   []EntityId
	cachedComponents []T
	cacheValid       bool
}

// NewQuery creates a new Query with archetype-level caching.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init initializes or re-initializes the Query with a storage.
// Called by the Scheduler during system registration.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.cachedArchetypes = nil
	q.lastArchetypeCount = -1
	q.lastRun = 0
	q.cacheValid = false
}

func (q *Query[T]) prepare(lastRun Tick) {
	q.lastRun = lastRun
	q.Execute()
}

// SetLastRun sets the tick that added/changed filters compare against: the
// last tick the caller has already seen. Only components stamped after it
// match. The Scheduler does this for system-owned queries; manual drivers call
// it before Execute.
func (q *Query[T]) SetLastRun(tick Tick) {
	q.lastRun = tick
}

// LastRun returns the tick the filters currently compare against.
func (q *Query[T]) LastRun() Tick {
	return q.lastRun
}

// UpdateArchetypes refreshes the archetype cache if archetypes were created
// since the last refresh. Execute calls it; it is exported for callers that
// hold a Query across structural changes without iterating.
func (q *Query[T]) UpdateArchetypes() {
	if currentCount := len(q.storage.archetypes); currentCount != q.lastArchetypeCount {
		q.cachedArchetypes = nil
		q.lastArchetypeCount = currentCount
	}
	if q.cachedArchetypes != nil {
		return
	}

	q.cachedArchetypes = make([]*Archetype, 0)
	for _, archetype := range q.storage.Archetypes() {
		if q.view.matchesArchetype(archetype) {
			q.cachedArchetypes = append(q.cachedArchetypes, archetype)
		}
	}
}

// Execute builds the entity and component caches for this frame.
// Called automatically by the Scheduler before the owning system runs.
func (q *Query[T]) Execute() {
	q.UpdateArchetypes()

	q.cachedEntities = q.cachedEntities[:0]
	q.cachedComponents = q.cachedComponents[:0]

	for _, archetype := range q.cachedArchetypes {
		for id, item := range q.view.iterArchetype(archetype, q.lastRun) {
			q.cachedEntities = append(q.cachedEntities, id)
			q.cachedComponents = append(q.cachedComponents, item)
		}
	}

	q.cacheValid = true
}

// Len returns the number of entities captured by the last Execute.
func (q *Query[T]) Len() int {
	return len(q.cachedEntities)
}

// Added reports whether the entity's compType component was added since the
// owning system last ran.
func (q *Query[T]) Added(id EntityId, compType reflect.Type) bool {
	ticks, ok := q.storage.ComponentTicks(id, compType)
	return ok && ticks.IsAdded(q.lastRun)
}

// Changed reports whether the entity's compType component was added or written
// since the owning system last ran.
func (q *Query[T]) Changed(id EntityId, compType reflect.Type) bool {
	ticks, ok := q.storage.ComponentTicks(id, compType)
	return ok && ticks.IsChanged(q.lastRun)
}

// Iter returns an iterator over entity IDs and component data.
// Panics if Execute() has not been called.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	if !q.cacheValid {
		panic("Query.Iter() called before Query.Execute()")
	}

	return func(yield func(EntityId, T) bool) {
		for i := range q.cachedEntities {
			if !yield(q.cachedEntities[i], q.cachedComponents[i]) {
				return
			}
		}
	}
}

// IterCached walks the cached archetypes directly instead of the Execute
// snapshot, so it sees spawns and deletes made since Execute inside already
// known archetypes. Archetypes created after the last UpdateArchetypes are not
// visited. Panics if UpdateArchetypes has never run.
func (q *Query[T]) IterCached() iter.Seq2[EntityId, T] {
	if q.cachedArchetypes == nil {
		panic("Query.IterCached() called before Query.UpdateArchetypes()")
	}

	return func(yield func(EntityId, T) bool) {
		for _, archetype := range q.cachedArchetypes {
			for id, item := range q.view.iterArchetype(archetype, q.lastRun) {
				if !yield(id, item) {
					return
				}
			}
		}
	}
}

// Values returns an iterator over component data only.
// Panics if Execute() has not been called.
func (q *Query[T]) Values() iter.Seq[T] {
	if !q.cacheValid {
		panic("Query.Values() called before Query.Execute()")
	}

	return func(yield func(T) bool) {
		for i := range q.cachedComponents {
			if !yield(q.cachedComponents[i]) {
				return
			}
		}
	}
}
