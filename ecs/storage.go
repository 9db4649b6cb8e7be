package ecs

import (
	"reflect"
	"sort"
	"unsafe"
	"weak"
)

// Storage is the main ECS storage: archetype tables, singletons and the change tick.
type Storage struct {
	archetypes map[uint32]*Archetype
	registry   *ComponentRegistry
	singletons map[reflect.Type]*singletonEntry
	tick       Tick
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: make(map[uint32]*Archetype),
		registry:   registry,
		singletons: make(map[reflect.Type]*singletonEntry),
		tick:       1,
	}
}

// Tick returns the current change tick. Spawns and writes are stamped with it.
func (s *Storage) Tick() Tick {
	return s.tick
}

// AdvanceTick moves the change tick forward and returns the new value. The
// Scheduler calls it before every system run; code driving a Storage without a
// Scheduler calls it between logical steps.
func (s *Storage) AdvanceTick() Tick {
	s.tick++
	return s.tick
}

// Registry returns the component registry the storage was created with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

func (s *Storage) CreateEntityRef(id EntityId) *EntityRef {
	archetype := s.archetypes[id.ArchetypeId()]
	if archetype == nil {
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

// GetArchetype returns an archetype storage (if one exists)
func (s *Storage) GetArchetype(components ...any) *Archetype {
	types := extractComponentTypes(components)
	return s.archetypes[hashTypesToUint32(types)]
}

// GetArchetypeById returns the archetype with the given id, or nil.
func (s *Storage) GetArchetypeById(id uint32) *Archetype {
	return s.archetypes[id]
}

// Archetypes returns every archetype ordered by id, including empty ones.
func (s *Storage) Archetypes() []*Archetype {
	archetypes := make([]*Archetype, 0, len(s.archetypes))
	for _, archetype := range s.archetypes {
		archetypes = append(archetypes, archetype)
	}
	sort.Slice(archetypes, func(i, j int) bool { return archetypes[i].id < archetypes[j].id })
	return archetypes
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	archetypeId := hashTypesToUint32(types)
	archetype, exists := s.archetypes[archetypeId]
	if !exists {
		archetype = NewArchetype(archetypeId, types, s.registry)
		s.archetypes[archetypeId] = archetype
	}
	return archetype
}

// Spawn creates a new entity with the provided components, all stamped as
// added at the current tick.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	archetype := s.archetypeFor(extractComponentTypes(components))
	ticks := newComponentTicks(s.tick)
	entityIndex := archetype.Spawn(components, func(reflect.Type) ComponentTicks { return ticks })
	return NewEntityId(archetype.id, entityIndex)
}

// Delete removes all data related to the entity ID
func (s *Storage) Delete(id EntityId) {
	if archetype, ok := s.archetypes[id.ArchetypeId()]; ok {
		archetype.Delete(id.Index())
	}
}

// Clear deletes every entity while keeping archetypes, singletons and the tick.
func (s *Storage) Clear() {
	for _, archetype := range s.archetypes {
		for id := range archetype.Iter() {
			archetype.Delete(id.Index())
		}
	}
}

// moveEntity re-homes an entity into the archetype for newTypes. Components
// that survive the move keep their ticks; extra is stamped as added now.
func (s *Storage) moveEntity(id EntityId, newTypes []reflect.Type, extra any) EntityId {
	oldArchetype := s.archetypes[id.ArchetypeId()]
	weakPtr, hasRef := oldArchetype.refs.Get(id)

	if len(newTypes) == 0 {
		oldArchetype.Delete(id.Index())
		return 0
	}

	newArchetype := s.archetypeFor(newTypes)
	extraType := reflect.Type(nil)
	if extra != nil {
		extraType = componentType(extra)
	}

	components := make([]any, 0, len(newTypes))
	for _, typ := range newTypes {
		if typ == extraType {
			components = append(components, extra)
		} else {
			components = append(components, oldArchetype.GetComponent(id.Index(), typ))
		}
	}

	now := newComponentTicks(s.tick)
	newIndex := newArchetype.Spawn(components, func(typ reflect.Type) ComponentTicks {
		if typ == extraType {
			return now
		}
		return *oldArchetype.ComponentTicks(id.Index(), typ)
	})
	newId := NewEntityId(newArchetype.id, newIndex)

	if hasRef {
		if ref := weakPtr.Value(); ref != nil {
			ref.Id = newId
			ref.Archetype = newArchetype
		}
		oldArchetype.refs.Del(id)
		newArchetype.refs.Put(newId, weakPtr)
	}

	oldArchetype.Delete(id.Index())
	return newId
}

// AddComponent moves the entity to the archetype that also holds component and
// returns its new id. Adding a type the entity already has overwrites the value
// and marks it changed.
func (s *Storage) AddComponent(id EntityId, component any) EntityId {
	oldArchetype := s.archetypes[id.ArchetypeId()]
	compType := componentType(component)

	if oldArchetype.HasComponent(compType) {
		reflect.ValueOf(oldArchetype.GetComponent(id.Index(), compType)).Elem().Set(reflect.Indirect(reflect.ValueOf(component)))
		s.MarkChanged(id, compType)
		return id
	}

	newTypes := make([]reflect.Type, 0, len(oldArchetype.types)+1)
	newTypes = append(newTypes, oldArchetype.types...)
	newTypes = append(newTypes, compType)
	sort.Sort(byTypeName(newTypes))

	return s.moveEntity(id, newTypes, component)
}

// RemoveComponent moves the entity to the archetype without compType and
// returns its new id, or 0 when no components remain.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) EntityId {
	oldArchetype := s.archetypes[id.ArchetypeId()]

	newTypes := make([]reflect.Type, 0, len(oldArchetype.types))
	for _, typ := range oldArchetype.types {
		if typ != compType {
			newTypes = append(newTypes, typ)
		}
	}

	return s.moveEntity(id, newTypes, nil)
}

// GetComponent returns the component for the given entity ID and component type
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
	return ok && archetype.GetComponent(id.Index(), compType) != nil
}

// ComponentTicks returns the change ticks of one component of an entity.
func (s *Storage) ComponentTicks(id EntityId, compType reflect.Type) (ComponentTicks, bool) {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return ComponentTicks{}, false
	}
	ticks := archetype.ComponentTicks(id.Index(), compType)
	if ticks == nil {
		return ComponentTicks{}, false
	}
	return *ticks, true
}

// MarkChanged stamps a component as written at the current tick. Call it after
// mutating a component through a pointer obtained from a View or Query.
func (s *Storage) MarkChanged(id EntityId, compType reflect.Type) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return false
	}
	ticks := archetype.ComponentTicks(id.Index(), compType)
	if ticks == nil {
		return false
	}
	ticks.Changed = s.tick
	return true
}

func componentType(comp any) reflect.Type {
	compType := reflect.TypeOf(comp)
	if compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}
	return compType
}

// extractComponentTypes extracts and sorts component types from a slice of components
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		compType := componentType(comp)

		// Components are value types: structs or primitives, never references.
		switch compType.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}

		types = append(types, compType)
	}
	sort.Sort(byTypeName(types))
	return types
}

// hashTypesToUint32 generates a uint32 hash for a sorted slice of types
func hashTypesToUint32(types []reflect.Type) uint32 {
	var h uint32 = 2166136261     // FNV-1a 32-bit offset basis
	const prime uint32 = 16777619 // FNV-1a 32-bit prime

	for _, t := range types {
		ptr := uintptr((*iface)(unsafe.Pointer(&t)).data)
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

// ReadComponent returns the entity's T, or nil. It does not mark the component changed.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}

// WriteComponent returns the entity's T, or nil, and marks it changed at the
// current tick whether or not the caller ends up modifying it.
func WriteComponent[T any](storage *Storage, entityId EntityId) *T {
	comp := ReadComponent[T](storage, entityId)
	if comp != nil {
		storage.MarkChanged(entityId, reflect.TypeFor[T]())
	}
	return comp
}
