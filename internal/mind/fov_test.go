package mind

import "testing"

func openRoom() *DungeonMap {
	return MustParseMap([]string{
		"#############",
		"#...........#",
		"#...........#",
		"#...........#",
		"#...........#",
		"#...........#",
		"#...........#",
		"#...........#",
		"#...........#",
		"#...........#",
		"#...........#",
		"#############",
	})
}

func TestComputeVisibleOriginAlwaysIncluded(t *testing.T) {
	m := openRoom()
	origin := Position{X: 6, Y: 6}
	vis := ComputeVisible(m, origin, 4, MetricEuclidean)
	if !vis[origin] {
		t.Fatal("origin must be visible")
	}
}

func TestComputeVisibleZeroRadius(t *testing.T) {
	m := openRoom()
	vis := ComputeVisible(m, Position{X: 6, Y: 6}, 0, MetricEuclidean)
	if len(vis) != 0 {
		t.Fatalf("radius 0 should see nothing, got %d cells", len(vis))
	}
}

func TestComputeVisibleOpenRoomFullCoverage(t *testing.T) {
	m := openRoom()
	origin := Position{X: 6, Y: 6}
	vis := ComputeVisible(m, origin, 4, MetricChebyshev)
	for y := origin.Y - 4; y <= origin.Y+4; y++ {
		for x := origin.X - 4; x <= origin.X+4; x++ {
			p := Position{X: x, Y: y}
			if !vis[p] {
				t.Errorf("open room: %s should be visible from %s", p, origin)
			}
		}
	}
}

func TestComputeVisibleWallBlocksButIsSeen(t *testing.T) {
	m := MustParseMap([]string{
		"###########",
		"#.........#",
		"#.........#",
		"#....#....#",
		"#.........#",
		"#.........#",
		"###########",
	})
	origin := Position{X: 2, Y: 3}
	vis := ComputeVisible(m, origin, 8, MetricChebyshev)

	pillar := Position{X: 5, Y: 3}
	if !vis[pillar] {
		t.Errorf("the blocking wall itself should be visible")
	}
	behind := Position{X: 8, Y: 3}
	if vis[behind] {
		t.Errorf("%s is behind the pillar and must be shadowed", behind)
	}
}

func TestComputeVisibleStraightLineSymmetry(t *testing.T) {
	m := MustParseMap([]string{
		"###########",
		"#.........#",
		"#.........#",
		"#....#....#",
		"#.........#",
		"#.........#",
		"###########",
	})
	a := Position{X: 2, Y: 3}
	b := Position{X: 8, Y: 3}
	aSeesB := Visible(m, a, b, 8, MetricChebyshev)
	bSeesA := Visible(m, b, a, 8, MetricChebyshev)
	if aSeesB != bSeesA {
		t.Errorf("pillar-occluded pair must be symmetric: a→b=%v b→a=%v", aSeesB, bSeesA)
	}
	if aSeesB {
		t.Errorf("pillar between %s and %s should block both directions", a, b)
	}
}

func TestComputeVisibleMonotonicInRadius(t *testing.T) {
	m := MustParseMap([]string{
		"###########",
		"#.........#",
		"#..#......#",
		"#.........#",
		"#.....#...#",
		"#.........#",
		"###########",
	})
	origin := Position{X: 1, Y: 1}
	small := ComputeVisible(m, origin, 3, MetricEuclidean)
	large := ComputeVisible(m, origin, 6, MetricEuclidean)
	for p := range small {
		if !large[p] {
			t.Errorf("cell %s visible at radius 3 but not at radius 6", p)
		}
	}
}

func TestComputeVisibleMetricShape(t *testing.T) {
	m := openRoom()
	origin := Position{X: 6, Y: 6}
	corner := Position{X: 10, Y: 10} // Chebyshev 4, Euclidean sqrt(32)

	if !ComputeVisible(m, origin, 4, MetricChebyshev)[corner] {
		t.Errorf("square metric should include the diagonal corner %s", corner)
	}
	if ComputeVisible(m, origin, 4, MetricEuclidean)[corner] {
		t.Errorf("circular metric should exclude the diagonal corner %s", corner)
	}
}
