package mind

import "testing"

func TestBuildCostMapTerrainByProfile(t *testing.T) {
	m := MustParseMap([]string{
		"#######",
		"#.+~^.#",
		"#######",
	})
	policy := DefaultTuning().Costs

	floor := Position{X: 1, Y: 1}
	door := Position{X: 2, Y: 1}
	mild := Position{X: 3, Y: 1}
	severe := Position{X: 4, Y: 1}
	wall := Position{X: 3, Y: 0}

	cases := []struct {
		name    string
		profile CapabilityProfile
		at      Position
		want    int
	}{
		{"walker floor", GroundProfile(), floor, policy.Floor},
		{"walker door", GroundProfile(), door, policy.Door},
		{"walker mild hazard", GroundProfile(), mild, policy.HazardMild},
		{"walker severe hazard", GroundProfile(), severe, policy.HazardSevere},
		{"walker wall", GroundProfile(), wall, costImpassable},
		{"beast door", BeastProfile(), door, costImpassable},
		{"wraith mild hazard", WraithProfile(), mild, policy.Floor},
		{"wraith severe hazard", WraithProfile(), severe, policy.Floor},
		{"wraith wall", WraithProfile(), wall, costImpassable},
		{"sapper wall", SapperProfile(), wall, policy.BurrowWall},
		{"sapper door", SapperProfile(), door, policy.Door},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cm := BuildCostMap(tc.profile, m, nil, policy)
			if got := cm.CostAt(tc.at); got != tc.want {
				t.Errorf("cost at %s = %d, want %d", tc.at, got, tc.want)
			}
		})
	}
}

func TestBuildCostMapOccupiedSurcharge(t *testing.T) {
	m := MustParseMap([]string{
		"#####",
		"#...#",
		"#####",
	})
	policy := DefaultTuning().Costs
	crowded := Position{X: 2, Y: 1}
	cm := BuildCostMap(GroundProfile(), m, func(p Position) bool { return p == crowded }, policy)

	if got, want := cm.CostAt(crowded), policy.Floor+policy.Occupied; got != want {
		t.Errorf("occupied floor cost %d, want %d", got, want)
	}
	if !cm.Passable(crowded) {
		t.Error("occupied cells are discouraged, not forbidden")
	}
	if got := cm.CostAt(Position{X: 1, Y: 1}); got != policy.Floor {
		t.Errorf("empty floor cost %d, want %d", got, policy.Floor)
	}
}

func TestBuildCostMapOccupiedWallStaysImpassable(t *testing.T) {
	m := MustParseMap([]string{
		"#####",
		"#...#",
		"#####",
	})
	policy := DefaultTuning().Costs
	wall := Position{X: 0, Y: 0}
	cm := BuildCostMap(GroundProfile(), m, func(p Position) bool { return p == wall }, policy)
	if cm.Passable(wall) {
		t.Error("occupancy must never make an impassable cell enterable")
	}
}

func TestCostMapOutOfBounds(t *testing.T) {
	m := MustParseMap([]string{
		"###",
		"#.#",
		"###",
	})
	cm := groundCostMap(m, nil)
	if got := cm.CostAt(Position{X: -1, Y: 0}); got != costImpassable {
		t.Errorf("out-of-bounds cost %d, want impassable", got)
	}
	if cm.InBounds(Position{X: 3, Y: 1}) {
		t.Error("x=3 is off a width-3 grid")
	}
}
