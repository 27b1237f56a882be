// Package ecs is a small sparse entity-component store.
//
// Entities are opaque ids allocated per store. Components live in typed
// tables keyed by entity; an entity's presence in one table says nothing
// about the others. Queries intersect table presence and walk entities in
// insertion order.
package ecs

// Entity identifies a simulated object. Ids are allocated per store, strictly
// increasing, and never reused.
type Entity uint64

// Nil is the zero entity; no live entity has this id.
const Nil Entity = 0
