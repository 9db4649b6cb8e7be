package ecs

import (
	"iter"
	"reflect"
)

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage instance has its own ComponentRegistry, allowing multiple
// independent worlds (a simulation world and a render world, for example)
// to coexist without interference.
type ComponentRegistry struct {
	factories map[reflect.Type]func() iComponentStorage
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() iComponentStorage),
	}
}

// RegisterComponent registers a new component type with the given registry.
// This must be called for each component type before it can be spawned.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() iComponentStorage {
		return &genericComponentStorage[T]{}
	}
}

// IsRegistered reports whether T has been registered.
func IsRegistered[T any](r *ComponentRegistry) bool {
	_, ok := r.factories[reflect.TypeFor[T]()]
	return ok
}

// getFactory returns the factory function for a given component type.
// Returns nil if the type is not registered.
func (r *ComponentRegistry) getFactory(t reflect.Type) func() iComponentStorage {
	return r.factories[t]
}

const genericBlockSize = 64

type componentSlot[T any] struct {
	value  T
	ticks  ComponentTicks
	filled bool
}

// genericComponentStorage stores components of type T in fixed-size blocks so
// that pointers handed out by Get stay valid while the storage grows.
type genericComponentStorage[T any] struct {
	blocks    []*[genericBlockSize]componentSlot[T]
	freeSlots []int
	nextIndex int
	count     int
}

func (cs *genericComponentStorage[T]) slot(index int) *componentSlot[T] {
	if index < 0 || index >= cs.nextIndex {
		return nil
	}
	return &cs.blocks[index/genericBlockSize][index%genericBlockSize]
}

// Append adds a component to storage and returns its index.
func (cs *genericComponentStorage[T]) Append(item any, ticks ComponentTicks) int {
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
		if index/genericBlockSize >= len(cs.blocks) {
			cs.blocks = append(cs.blocks, new([genericBlockSize]componentSlot[T]))
		}
	}

	*cs.slot(index) = componentSlot[T]{value: value, ticks: ticks, filled: true}
	cs.count++
	return index
}

// Get returns a pointer to the component at the given index.
func (cs *genericComponentStorage[T]) Get(index int) any {
	s := cs.slot(index)
	if s == nil || !s.filled {
		return nil
	}
	return &s.value
}

// Ticks returns the change ticks of the component at the given index.
func (cs *genericComponentStorage[T]) Ticks(index int) *ComponentTicks {
	s := cs.slot(index)
	if s == nil || !s.filled {
		return nil
	}
	return &s.ticks
}

// Delete marks a component slot as empty.
func (cs *genericComponentStorage[T]) Delete(index int) {
	s := cs.slot(index)
	if s == nil || !s.filled {
		return
	}
	*s = componentSlot[T]{}
	cs.freeSlots = append(cs.freeSlots, index)
	cs.count--
}

// Has checks if a component exists at the given index.
func (cs *genericComponentStorage[T]) Has(index int) bool {
	s := cs.slot(index)
	return s != nil && s.filled
}

// Len returns the number of occupied slots.
func (cs *genericComponentStorage[T]) Len() int {
	return cs.count
}

// Compact moves every occupied slot to the front and returns old→new indices.
func (cs *genericComponentStorage[T]) Compact() map[int]int {
	indexMap := make(map[int]int, cs.count)
	blocks := make([]*[genericBlockSize]componentSlot[T], 0, (cs.count+genericBlockSize-1)/genericBlockSize)

	writePos := 0
	for readPos := range cs.nextIndex {
		s := cs.slot(readPos)
		if !s.filled {
			continue
		}
		if writePos/genericBlockSize >= len(blocks) {
			blocks = append(blocks, new([genericBlockSize]componentSlot[T]))
		}
		blocks[writePos/genericBlockSize][writePos%genericBlockSize] = *s
		indexMap[readPos] = writePos
		writePos++
	}

	cs.blocks = blocks
	cs.freeSlots = nil
	cs.nextIndex = writePos
	return indexMap
}

func (cs *genericComponentStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := range cs.nextIndex {
			if cs.slot(i).filled && !yield(i) {
				return
			}
		}
	}
}
