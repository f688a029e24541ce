package mind

// costImpassable marks a cell the requesting actor cannot enter at any price.
const costImpassable = -1

// CostMap is a per-call traversal cost grid for one requesting actor. It is
// derived from static terrain, the current occupant snapshot, and the actor's
// capability profile, and is thrown away after the path-find: occupants move
// every turn, so caching across turns would plan against stale positions.
type CostMap struct {
	w, h  int
	cells []int
}

// BuildCostMap derives the traversal grid. occupied reports whether another
// creature currently stands on a cell; the builder never inspects entity
// state beyond that. Occupied cells are strongly discouraged, not forbidden,
// so paths can squeeze past a crowd when no clear lane exists.
func BuildCostMap(profile CapabilityProfile, m MapView, occupied func(Position) bool, policy CostPolicy) *CostMap {
	w, h := m.Size()
	cm := &CostMap{w: w, h: h, cells: make([]int, w*h)}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := Position{X: x, Y: y}
			cost := terrainCost(profile, m.TileAt(p), policy)
			if cost != costImpassable && occupied != nil && occupied(p) {
				cost += policy.Occupied
			}
			cm.cells[y*w+x] = cost
		}
	}
	return cm
}

func terrainCost(profile CapabilityProfile, tile TileKind, policy CostPolicy) int {
	switch tile {
	case TileWall:
		if profile.CanBurrow {
			return policy.BurrowWall
		}
		return costImpassable
	case TileDoor:
		if !profile.CanOpenDoors {
			return costImpassable
		}
		return policy.Door
	case TileHazardMild:
		if profile.CanFly {
			return policy.Floor
		}
		return policy.HazardMild
	case TileHazardSevere:
		if profile.CanFly {
			return policy.Floor
		}
		return policy.HazardSevere
	default:
		return policy.Floor
	}
}

// Size returns the grid dimensions.
func (cm *CostMap) Size() (int, int) {
	return cm.w, cm.h
}

// InBounds reports whether p lies on the grid.
func (cm *CostMap) InBounds(p Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < cm.w && p.Y < cm.h
}

// CostAt returns the traversal cost of entering p, or costImpassable.
func (cm *CostMap) CostAt(p Position) int {
	if !cm.InBounds(p) {
		return costImpassable
	}
	return cm.cells[p.Y*cm.w+p.X]
}

// Passable reports whether the requesting actor may enter p at all.
func (cm *CostMap) Passable(p Position) bool {
	return cm.CostAt(p) != costImpassable
}

func (cm *CostMap) index(p Position) int {
	return p.Y*cm.w + p.X
}
