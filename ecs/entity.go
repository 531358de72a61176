package ecs

// EntityId packs the archetype ID into the upper 32 bits and the slot index
// within that archetype into the lower 32 bits. The zero value never names a
// live entity.
type EntityId uint64

// NewEntityId builds an EntityId from an archetype ID and slot index
func NewEntityId(archetypeId uint32, index uint32) EntityId {
	return EntityId(uint64(archetypeId)<<32 | uint64(index))
}

// ArchetypeId extracts the archetype ID from the entity ID
func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

// Index extracts the slot index from the entity ID
func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// EntityRef is a handle that keeps pointing at the same entity while it moves
// between archetypes or slots. Id is zero once the entity is gone.
type EntityRef struct {
	Id        EntityId
	Archetype *Archetype
}
