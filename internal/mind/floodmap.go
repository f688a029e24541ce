package mind

import "container/heap"

// DistanceUnreachable is the sentinel for cells no source can reach.
const DistanceUnreachable = -1

// DistanceField is a multi-source Dijkstra flood map: each cell holds the
// cheapest cost of travelling from the nearest source, under the same cost
// semantics as FindPath. It answers "which of several goals is closest"
// (nearest living ally, nearest exit) in a single build, where running A* per
// candidate would be wasteful.
type DistanceField struct {
	w, h  int
	cells []int
}

// BuildDistanceField floods outward from all sources at once. Sources sit at
// distance 0 regardless of their own tile cost; expansion pays the cost of
// the cell being entered. Rebuilt per query, never cached.
func BuildDistanceField(cm *CostMap, sources []Position) *DistanceField {
	w, h := cm.Size()
	df := &DistanceField{w: w, h: h, cells: make([]int, w*h)}
	for i := range df.cells {
		df.cells[i] = DistanceUnreachable
	}

	open := &searchQueue{}
	heap.Init(open)
	seq := 0
	for _, src := range sources {
		if !cm.InBounds(src) {
			continue
		}
		seq++
		heap.Push(open, &searchNode{pos: src, g: 0, f: 0, order: seq})
	}

	for open.Len() > 0 {
		cur := heap.Pop(open).(*searchNode)
		idx := cur.pos.Y*w + cur.pos.X
		if df.cells[idx] != DistanceUnreachable {
			continue
		}
		df.cells[idx] = cur.g

		for _, d := range Directions {
			next := cur.pos.Add(d)
			stepCost := cm.CostAt(next)
			if stepCost == costImpassable {
				continue
			}
			if df.cells[next.Y*w+next.X] != DistanceUnreachable {
				continue
			}
			seq++
			g := cur.g + stepCost
			heap.Push(open, &searchNode{pos: next, g: g, f: g, order: seq})
		}
	}
	return df
}

// DistanceAt returns the field value at p, or DistanceUnreachable.
func (df *DistanceField) DistanceAt(p Position) int {
	if p.X < 0 || p.Y < 0 || p.X >= df.w || p.Y >= df.h {
		return DistanceUnreachable
	}
	return df.cells[p.Y*df.w+p.X]
}

// StepToward returns the neighbour of cur with a strictly lower field value,
// i.e. one gradient-descent step toward the nearest source. Ties resolve in
// the fixed Directions scan order. Returns cur unchanged when no neighbour
// improves (at a source, or cut off from every source).
func (df *DistanceField) StepToward(cur Position) Position {
	best := cur
	bestDist := df.DistanceAt(cur)
	if bestDist == DistanceUnreachable {
		// Off-field: any reachable neighbour is an improvement.
		bestDist = int(^uint(0) >> 1)
	}
	for _, d := range Directions {
		next := cur.Add(d)
		dist := df.DistanceAt(next)
		if dist == DistanceUnreachable {
			continue
		}
		if dist < bestDist {
			best = next
			bestDist = dist
		}
	}
	return best
}
