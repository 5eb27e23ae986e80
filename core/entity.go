package core

// Entity is a unique identifier for an entity
// The same handle addresses the entity's body inside the physics engine
// Zero is never issued and means "no entity"
type Entity uint64

// EntityNone is the empty handle
const EntityNone Entity = 0
