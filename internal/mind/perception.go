package mind

import "sort"

// Sighting is one visible entity with its precomputed Chebyshev distance.
type Sighting struct {
	Entity   Entity
	Distance int
}

// Perception is the per-turn context for one acting entity: the FOV result
// plus visible enemies, allies, and items sorted nearest-first, and read-only
// handles into the world query services. It is rebuilt every ProcessTurn and
// never persisted; goals needing cross-turn memory keep it in their own
// fields.
type Perception struct {
	Actor  *Actor
	Map    MapView
	World  WorldView
	Tuning *Tuning
	Turn   int

	Visible map[Position]bool
	Enemies []Sighting
	Allies  []Sighting
	Items   []Sighting
}

// BuildPerception computes the actor's FOV and classifies everything inside
// it. The world handles stay attached so goals can run follow-up queries
// (occupancy, hostility) without re-deriving them.
func BuildPerception(actor *Actor, m MapView, world WorldView, tuning *Tuning, turn int) *Perception {
	ctx := &Perception{
		Actor:  actor,
		Map:    m,
		World:  world,
		Tuning: tuning,
		Turn:   turn,
	}
	ctx.Visible = ComputeVisible(m, actor.Pos(), actor.VisionRange, actor.VisionMetric)

	for _, e := range world.EntitiesWithin(actor.Pos(), actor.VisionRange) {
		if e.ID() == actor.ID() {
			continue
		}
		if !ctx.Visible[e.Pos()] {
			continue
		}
		s := Sighting{Entity: e, Distance: actor.Pos().Chebyshev(e.Pos())}
		switch {
		case e.Kind() == KindItem:
			ctx.Items = append(ctx.Items, s)
		case !e.Alive():
			// Corpses are scenery.
		case world.Hostile(actor, e):
			ctx.Enemies = append(ctx.Enemies, s)
		default:
			ctx.Allies = append(ctx.Allies, s)
		}
	}
	sortSightings(ctx.Enemies)
	sortSightings(ctx.Allies)
	sortSightings(ctx.Items)
	return ctx
}

// sortSightings orders nearest-first, with entity ID as a deterministic
// tie-break so equal-distance targets never reorder between runs.
func sortSightings(s []Sighting) {
	sort.SliceStable(s, func(i, j int) bool {
		if s[i].Distance != s[j].Distance {
			return s[i].Distance < s[j].Distance
		}
		return s[i].Entity.ID().String() < s[j].Entity.ID().String()
	})
}

// NearestEnemy returns the closest visible hostile, or nil.
func (ctx *Perception) NearestEnemy() Entity {
	if len(ctx.Enemies) == 0 {
		return nil
	}
	return ctx.Enemies[0].Entity
}

// NearestAlly returns the closest visible friendly creature, or nil.
func (ctx *Perception) NearestAlly() Entity {
	if len(ctx.Allies) == 0 {
		return nil
	}
	return ctx.Allies[0].Entity
}

// CanSee reports whether the entity's cell is inside this turn's FOV.
func (ctx *Perception) CanSee(e Entity) bool {
	return e != nil && ctx.Visible[e.Pos()]
}

// Resolve re-checks a stored handle against the registry. Goals holding
// targets across turns call this instead of trusting stale pointers.
func (ctx *Perception) Resolve(e Entity) (Entity, bool) {
	if e == nil {
		return nil, false
	}
	return ctx.World.ByID(e.ID())
}

// CostMapFor builds the actor-specific traversal grid from the current
// occupant snapshot. The acting entity's own cell is not treated as occupied.
func (ctx *Perception) CostMapFor() *CostMap {
	self := ctx.Actor.Pos()
	occupied := func(p Position) bool {
		if p == self {
			return false
		}
		return ctx.World.OccupantAt(p) != nil
	}
	return BuildCostMap(ctx.Actor.Caps, ctx.Map, occupied, ctx.Tuning.Costs)
}
