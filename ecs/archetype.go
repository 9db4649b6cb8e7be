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

// Archetype represents a unique combination of component types. All storages of
// an archetype are appended to and deleted from together, so one index addresses
// every component of an entity.
type Archetype struct {
	id       uint32
	types    []reflect.Type
	storages []iComponentStorage
	refs     *intmap.Map[EntityId, weak.Pointer[EntityRef]]
}

// NewArchetype creates a new archetype with the given ID and sorted component types
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

func (a *Archetype) storageIndex(compType reflect.Type) int {
	return slices.Index(a.types, compType)
}

// Spawn inserts one entity. components must hold exactly one value per
// archetype type; ticks supplies the change ticks for each component type.
// Returns the storage position, which is the entity index.
func (a *Archetype) Spawn(components []any, ticks func(reflect.Type) ComponentTicks) uint32 {
	storagePos := -1
	for _, comp := range components {
		compType := componentType(comp)
		idx := a.storageIndex(compType)
		if idx == -1 {
			panic("component type " + compType.String() + " is not part of archetype")
		}
		storagePos = a.storages[idx].Append(comp, ticks(compType))
	}
	return uint32(storagePos)
}

// GetComponent returns the component of the given type for the entity at
// entityIndex, or nil.
func (a *Archetype) GetComponent(entityIndex uint32, compType reflect.Type) any {
	idx := a.storageIndex(compType)
	if idx == -1 {
		return nil
	}
	return a.storages[idx].Get(int(entityIndex))
}

// ComponentTicks returns the change ticks of one component of the entity at
// entityIndex, or nil when the entity does not have it.
func (a *Archetype) ComponentTicks(entityIndex uint32, compType reflect.Type) *ComponentTicks {
	idx := a.storageIndex(compType)
	if idx == -1 {
		return nil
	}
	return a.storages[idx].Ticks(int(entityIndex))
}

// Delete frees an entity's slots and invalidates any EntityRef pointing at it.
// Indices of other entities remain stable.
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
	return a.storageIndex(compType) != -1
}

// ID returns the archetype's unique identifier
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types for this archetype
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

// Compact removes empty slots from every storage. EntityRefs are rewritten to
// the new indices; plain EntityIds held elsewhere become stale.
func (a *Archetype) Compact() {
	if len(a.storages) == 0 {
		return
	}

	indexMap := a.storages[0].Compact()
	for _, storage := range a.storages[1:] {
		storage.Compact()
	}

	moved := make(map[EntityId]weak.Pointer[EntityRef])
	for oldIdx, newIdx := range indexMap {
		weakPtr, ok := a.refs.Get(NewEntityId(a.id, uint32(oldIdx)))
		if !ok {
			continue
		}
		if ref := weakPtr.Value(); ref != nil {
			newId := NewEntityId(a.id, uint32(newIdx))
			ref.Id = newId
			moved[newId] = weakPtr
		}
	}

	a.refs.Clear()
	for id, weakPtr := range moved {
		a.refs.Put(id, weakPtr)
	}
}

// Iter returns an iterator over all valid EntityIds in this archetype
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
