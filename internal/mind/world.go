package mind

import "github.com/google/uuid"

// TileKind is the static terrain classification the AI core cares about.
// Content definition (which creature stands where, what a tile looks like)
// lives in external layers; the core only needs traversal semantics.
type TileKind int

const (
	TileFloor TileKind = iota
	TileWall
	TileDoor
	TileHazardMild   // e.g. rubble, shallow water
	TileHazardSevere // e.g. fire, acid
)

// MapView is the read-only terrain query surface the core plans against.
// Implementations must be stable for the duration of a single ProcessTurn
// call; the core never mutates terrain.
type MapView interface {
	Size() (w, h int)
	InBounds(p Position) bool
	TileAt(p Position) TileKind
	// Opaque reports whether the tile blocks line of sight. Walls are opaque;
	// closed doors are opaque; everything else is transparent.
	Opaque(p Position) bool
}

// EntityKind separates creatures from ground items in registry queries.
type EntityKind int

const (
	KindCreature EntityKind = iota
	KindItem
)

// Entity is the read-only handle the core holds on anything in the world.
// Identity is by ID; a handle whose ID no longer resolves in the registry is
// a vanished target and goals must treat it as invalid.
type Entity interface {
	ID() uuid.UUID
	Kind() EntityKind
	Pos() Position
	Alive() bool
	Faction() string
}

// WorldView bundles the entity-registry queries the core consumes each turn.
// All methods are read-only snapshots; mutation happens only through the
// Action contract.
type WorldView interface {
	// OccupantAt returns the living creature standing on p, or nil.
	OccupantAt(p Position) Entity
	// EntitiesWithin returns every entity within Chebyshev distance r of p,
	// in a deterministic order.
	EntitiesWithin(p Position, r int) []Entity
	// ByID resolves a handle; ok is false when the entity no longer exists.
	ByID(id uuid.UUID) (Entity, bool)
	// Hostile reports whether a and b belong to opposing factions.
	Hostile(a, b Entity) bool
}

// ActionResult reports the outcome of executing an action.
type ActionResult struct {
	OK       bool
	Message  string
	TurnCost int
}

// Action is the two-phase execution contract supplied by the external
// action layer. CanExecute must be pure; Execute performs the mutation.
// Goals never bypass this contract.
type Action interface {
	CanExecute(actor *Actor, world WorldView) bool
	Execute(actor *Actor, world WorldView) ActionResult
}

// ActionSet is the factory surface an actor is wired with at construction
// (two-phase setup: actors first, cross-references and actions second).
type ActionSet struct {
	Move   func(d Direction) Action
	Attack func(target Entity) Action
	Ranged func(target Entity) Action
	Heal   func() Action
	Pickup func(item Entity) Action
}
