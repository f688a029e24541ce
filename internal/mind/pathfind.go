package mind

import "container/heap"

// A* over a capability-weighted cost map. 8-directional with uniform step
// weight (a diagonal costs the same as an orthogonal move before cost-map
// multipliers), so the Chebyshev distance is an admissible heuristic.

type searchNode struct {
	pos    Position
	g      int // accumulated cost from start
	f      int // g + heuristic
	order  int // insertion sequence, breaks f/g ties deterministically
	index  int // heap bookkeeping
	parent *searchNode
}

type searchQueue []*searchNode

func (q searchQueue) Len() int { return len(q) }

func (q searchQueue) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	if q[i].g != q[j].g {
		return q[i].g < q[j].g
	}
	return q[i].order < q[j].order
}

func (q searchQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *searchQueue) Push(x any) {
	n := x.(*searchNode)
	n.index = len(*q)
	*q = append(*q, n)
}

func (q *searchQueue) Pop() any {
	old := *q
	n := old[len(old)-1]
	old[len(old)-1] = nil
	n.index = -1
	*q = old[:len(old)-1]
	return n
}

// FindPath returns the cheapest cell sequence from start to goal under the
// cost map, excluding start and including goal, or nil when goal is
// unreachable. The goal cell is never treated as blocked by occupancy so
// melee approaches can path onto their target and stop adjacent.
func FindPath(cm *CostMap, start, goal Position) []Position {
	if !cm.InBounds(start) || !cm.InBounds(goal) {
		return nil
	}
	if !cm.Passable(goal) {
		return nil
	}
	if start == goal {
		return []Position{}
	}

	open := &searchQueue{}
	heap.Init(open)
	seq := 0
	root := &searchNode{pos: start, g: 0, f: start.Chebyshev(goal)}
	heap.Push(open, root)

	bestG := map[int]int{cm.index(start): 0}
	closed := make(map[int]bool)

	for open.Len() > 0 {
		cur := heap.Pop(open).(*searchNode)
		if cur.pos == goal {
			return reconstructPath(cur)
		}
		k := cm.index(cur.pos)
		if closed[k] {
			continue
		}
		closed[k] = true

		for _, d := range Directions {
			next := cur.pos.Add(d)
			stepCost := cm.CostAt(next)
			if stepCost == costImpassable {
				continue
			}
			nk := cm.index(next)
			if closed[nk] {
				continue
			}
			g := cur.g + stepCost
			if prev, ok := bestG[nk]; ok && g >= prev {
				continue
			}
			bestG[nk] = g
			seq++
			heap.Push(open, &searchNode{
				pos:    next,
				g:      g,
				f:      g + next.Chebyshev(goal),
				order:  seq,
				parent: cur,
			})
		}
	}
	return nil
}

// reconstructPath walks parent links back to the start node, which is
// dropped: callers already stand on it.
func reconstructPath(end *searchNode) []Position {
	var cells []Position
	for n := end; n.parent != nil; n = n.parent {
		cells = append(cells, n.pos)
	}
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}
	return cells
}
