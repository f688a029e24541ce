package mind

// Recursive shadowcasting over 8 symmetric octants. Each octant is scanned
// row by row; a wall narrows the open slope window and spawns a recursive
// scan for the still-lit remainder. Pure function of the map snapshot.

// octantTransforms maps the scan-space (dx,dy) of one octant into grid space.
// Rows are the xx/xy/yx/yy multipliers, columns the eight octants.
var octantTransforms = [4][8]int{
	{1, 0, 0, -1, -1, 0, 0, 1},
	{0, 1, -1, 0, 0, -1, 1, 0},
	{0, 1, 1, 0, 0, -1, -1, 0},
	{1, 0, 0, 1, -1, 0, 0, -1},
}

// ComputeVisible returns the set of positions visible from origin within
// radius under the chosen metric. The origin itself is always included.
// A wall cell is itself visible but blocks propagation beyond it along its
// octant. Complexity O(radius²).
func ComputeVisible(m MapView, origin Position, radius int, metric DistanceMetric) map[Position]bool {
	visible := make(map[Position]bool)
	if radius <= 0 || !m.InBounds(origin) {
		return visible
	}
	visible[origin] = true

	for oct := 0; oct < 8; oct++ {
		castShadow(m, origin, 1, 1.0, 0.0, radius, metric,
			octantTransforms[0][oct], octantTransforms[1][oct],
			octantTransforms[2][oct], octantTransforms[3][oct], visible)
	}
	return visible
}

func castShadow(m MapView, origin Position, row int, start, end float64, radius int, metric DistanceMetric, xx, xy, yx, yy int, visible map[Position]bool) {
	if start < end {
		return
	}

	for j := row; j <= radius; j++ {
		dx, dy := -j-1, -j
		blocked := false
		newStart := start

		for dx <= 0 {
			dx++
			if dx > 0 {
				break
			}

			// Slope window for this cell.
			leftSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rightSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)
			if start < rightSlope {
				continue
			}
			if end > leftSlope {
				break
			}

			cell := Position{
				X: origin.X + dx*xx + dy*xy,
				Y: origin.Y + dx*yx + dy*yy,
			}
			inBounds := m.InBounds(cell)
			if inBounds && metric.WithinRange(origin, cell, radius) {
				visible[cell] = true
			}

			opaque := !inBounds || m.Opaque(cell)
			if blocked {
				if opaque {
					newStart = rightSlope
					continue
				}
				blocked = false
				start = newStart
			} else if opaque && j < radius {
				blocked = true
				castShadow(m, origin, j+1, start, leftSlope, radius, metric, xx, xy, yx, yy, visible)
				newStart = rightSlope
			}
		}
		if blocked {
			break
		}
	}
}

// Visible is the single-pair convenience used by goals: can a see b.
func Visible(m MapView, from, to Position, radius int, metric DistanceMetric) bool {
	return ComputeVisible(m, from, radius, metric)[to]
}
