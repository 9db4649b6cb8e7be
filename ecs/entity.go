package ecs

import "strconv"

// EntityId encodes both the archetype ID (upper 32 bits) and the entity index (lower 32 bits).
// An entity's id changes when components are added or removed; hold an
// EntityRef to follow it across such moves.
type EntityId uint64

// NewEntityId creates an EntityId from an archetype ID and entity index
func NewEntityId(archetypeId uint32, index uint32) EntityId {
	return EntityId(uint64(archetypeId)<<32 | uint64(index))
}

// ArchetypeId extracts the archetype ID from the entity ID
func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

// Index extracts the entity index from the entity ID
func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// String formats the id as archetype:index in hex/decimal, for logs.
func (e EntityId) String() string {
	return strconv.FormatUint(uint64(e.ArchetypeId()), 16) + ":" + strconv.FormatUint(uint64(e.Index()), 10)
}

// EntityRef is a stable reference to an entity
type EntityRef struct {
	Id        EntityId
	Archetype *Archetype
}
