package mind

import (
	"strings"
	"testing"
)

// End-to-end planner scenarios driven through the headless harness. On
// failure the full sim log is dumped so the goal history can be read back.

func dumpSimLog(t *testing.T, ts *TestSim) {
	t.Helper()
	if !t.Failed() {
		return
	}
	for _, e := range ts.SimLog.Entries() {
		t.Log(e.String())
	}
	t.Log(ts.SimLog.Summary(ts.CurrentTurn(), ts.Actors))
}

func stackContains(a *Actor, name string) bool {
	for _, g := range a.Stack.Goals() {
		if g.Name() == name {
			return true
		}
	}
	return false
}

// A hunter chases visible prey; the prey slips into a sealed chamber and out
// of sight. The approach fails back through the kill intent and the hunter
// settles into wandering instead of marching to a stale cell.
func TestScenarioChaseAndLose(t *testing.T) {
	ts := NewTestSim(
		WithMap(
			"############",
			"#..........#",
			"#.########.#",
			"#.#......#.#",
			"#.########.#",
			"#..........#",
			"############",
		),
		WithBeast("hunter", "red", 1, 1),
		WithBeast("prey", "blue", 6, 1),
	)
	defer dumpSimLog(t, ts)

	ts.RunTurns(1)
	hunter := ts.ActorByName("hunter")
	if !stackContains(hunter, "kill") || !stackContains(hunter, "approach") {
		t.Fatalf("hunter should be prosecuting the chase, stack: %s", hunter.Stack)
	}
	if hunter.Pos() != (Position{X: 2, Y: 1}) {
		t.Errorf("hunter should have stepped toward the prey, at %s", hunter.Pos())
	}

	// The prey vanishes into the sealed inner chamber.
	ts.ActorByName("prey").SetPos(Position{X: 5, Y: 3})

	ts.RunTurns(2)
	if stackContains(hunter, "kill") {
		t.Errorf("losing sight must abandon the kill, stack: %s", hunter.Stack)
	}
	if stackContains(hunter, "approach") {
		t.Errorf("no approach should survive a vanished target, stack: %s", hunter.Stack)
	}
	if hunter.Stack.Len() < 1 || hunter.Stack.Goals()[0].Name() != "bored" {
		t.Errorf("stack must stay rooted, got: %s", hunter.Stack)
	}
}

// An approach through a one-lane corridor hits a blocking ally. The atomic
// move fails back to the approach, which replans once the lane clears.
func TestScenarioBlockedPathRecovery(t *testing.T) {
	ts := NewTestSim(
		WithMap(
			"#######",
			"#.....#",
			"#######",
		),
		WithGuard("walker", "red", 1, 1),
		WithGuard("statue", "red", 2, 1),
	)
	defer dumpSimLog(t, ts)

	walker := ts.ActorByName("walker")
	tn := DefaultTuning()

	root := NewBoredGoal()
	walker.Stack.Push(nil, root)
	approach := NewApproachGoal(Position{X: 4, Y: 1}, 0)
	walker.Stack.Push(root, approach)

	ctx := BuildPerception(walker, ts.Map, ts, &tn, 1)
	approach.TakeAction(ctx)
	if got := walker.Stack.Top().Name(); got != "move" {
		t.Fatalf("approach should have pushed the atomic step, top: %s", got)
	}

	// The only lane is occupied: the step is rejected and the failure
	// unwinds back to the approach.
	walker.Stack.Top().TakeAction(ctx)
	assertStack(t, walker.Stack, "bored", "approach")
	if walker.Pos() != (Position{X: 1, Y: 1}) {
		t.Fatalf("walker should not have moved, at %s", walker.Pos())
	}

	// The blocker falls; the replanned step goes through.
	ts.ActorByName("statue").HP = 0
	ctx = BuildPerception(walker, ts.Map, ts, &tn, 2)
	approach.TakeAction(ctx)
	walker.Stack.Top().TakeAction(ctx)
	if walker.Pos() != (Position{X: 2, Y: 1}) {
		t.Errorf("walker should have advanced after the lane cleared, at %s", walker.Pos())
	}
}

// Flee termination needs both halves: the duration floor must elapse AND the
// threat must be dead, unseen, or beyond the safe distance.
func TestScenarioFleeTermination(t *testing.T) {
	ts := NewTestSim(
		WithMap(
			"##################",
			"#................#",
			"#................#",
			"#................#",
			"##################",
		),
		WithGuard("runner", "red", 4, 2),
		WithBeast("threat", "blue", 2, 2),
	)
	defer dumpSimLog(t, ts)

	runner := ts.ActorByName("runner")
	threat := ts.ActorByName("threat")
	tn := DefaultTuning()

	root := NewBoredGoal()
	runner.Stack.Push(nil, root)
	flee := NewFleeGoal(threat, 3)
	runner.Stack.Push(root, flee)

	// A dead threat alone is not enough before the duration elapses.
	threat.HP = 0
	ctx := BuildPerception(runner, ts.Map, ts, &tn, 1)
	if flee.IsFinished(ctx) {
		t.Fatal("flee must run its minimum duration even with the threat gone")
	}
	threat.HP = 10

	finished := false
	for turn := 1; turn <= 10; turn++ {
		ctx = BuildPerception(runner, ts.Map, ts, &tn, turn)
		runner.Stack.prune(ctx)
		if flee.IsFinished(ctx) {
			if turn <= 3 {
				t.Fatalf("flee finished on turn %d, before the duration floor", turn)
			}
			finished = true
			break
		}
		runner.Stack.Top().TakeAction(ctx)
		if runner.Stack.Top() != Goal(flee) {
			runner.Stack.Top().TakeAction(ctx) // execute the pushed step
		}
	}
	if !finished {
		t.Fatalf("flee never terminated; runner at %s, threat at %s",
			runner.Pos(), threat.Pos())
	}
	if d := runner.Pos().Chebyshev(threat.Pos()); d < tn.Flee.SafeDistance {
		t.Errorf("flee ended at distance %d, safe distance is %d", d, tn.Flee.SafeDistance)
	}
}

// While fleeing, a visible ally pulls the runner toward safety in numbers
// via the flood map rather than straight-line retreat.
func TestScenarioFleeTowardAlly(t *testing.T) {
	ts := NewTestSim(
		WithMap(
			"##############",
			"#............#",
			"#............#",
			"#............#",
			"##############",
		),
		WithGuard("runner", "red", 4, 2),
		WithGuard("anchor", "red", 10, 2),
		WithBeast("threat", "blue", 2, 2),
	)
	defer dumpSimLog(t, ts)

	runner := ts.ActorByName("runner")
	anchor := ts.ActorByName("anchor")
	tn := DefaultTuning()

	root := NewBoredGoal()
	runner.Stack.Push(nil, root)
	flee := NewFleeGoal(ts.ActorByName("threat"), 3)
	runner.Stack.Push(root, flee)

	before := runner.Pos().Chebyshev(anchor.Pos())
	ctx := BuildPerception(runner, ts.Map, ts, &tn, 1)
	flee.TakeAction(ctx)
	if got := runner.Stack.Top().Name(); got != "move" {
		t.Fatalf("flee should have pushed a step, top: %s", got)
	}
	runner.Stack.Top().TakeAction(ctx)
	if after := runner.Pos().Chebyshev(anchor.Pos()); after >= before {
		t.Errorf("flee step should close on the ally: %d → %d", before, after)
	}
}

// A protect order keeps the escort near its leader when nothing is hostile.
func TestScenarioEscortFollowsLeader(t *testing.T) {
	ts := NewTestSim(
		WithMap(
			"#############",
			"#...........#",
			"#...........#",
			"#...........#",
			"#############",
		),
		WithGuard("leader", "red", 2, 2),
		WithGuard("escort", "red", 9, 2),
		WithProtectOrder("escort", "leader"),
	)
	defer dumpSimLog(t, ts)

	ts.RunTurns(12)

	escort := ts.ActorByName("escort")
	leader := ts.ActorByName("leader")
	if d := escort.Pos().Chebyshev(leader.Pos()); d > 5 {
		t.Errorf("escort never closed on the leader, distance %d", d)
	}

	followed := false
	for _, e := range ts.SimLog.Filter("goal", "stack") {
		if e.Actor == "escort" && strings.Contains(e.Value, "follow") {
			followed = true
		}
	}
	if !followed {
		t.Error("escort never ran a follow goal")
	}
}

// Hostiles outrank escort duty: an escort with a protect order still turns
// and fights when an enemy is in sight.
func TestScenarioEscortFightsBeforeFollowing(t *testing.T) {
	ts := NewTestSim(
		WithMap(
			"##############",
			"#............#",
			"#............#",
			"#............#",
			"##############",
		),
		WithGuard("leader", "red", 2, 2),
		WithGuard("escort", "red", 11, 2),
		WithBeast("ambusher", "blue", 9, 1),
		WithProtectOrder("escort", "leader"),
	)
	defer dumpSimLog(t, ts)

	ts.RunTurns(1)
	escort := ts.ActorByName("escort")
	if !stackContains(escort, "kill") {
		t.Errorf("escort should engage the ambusher, stack: %s", escort.Stack)
	}
	if stackContains(escort, "follow") {
		t.Errorf("follow must not preempt combat, stack: %s", escort.Stack)
	}
}

// FollowEntityGoal itself aborts the moment hostiles become visible, handing
// control back to its intent.
func TestScenarioFollowAbortsOnHostiles(t *testing.T) {
	ts := NewTestSim(
		WithGuard("escort", "red", 2, 2),
		WithGuard("leader", "red", 7, 2),
		WithBeast("raider", "blue", 5, 3),
	)
	defer dumpSimLog(t, ts)

	escort := ts.ActorByName("escort")
	tn := DefaultTuning()

	root := NewBoredGoal()
	escort.Stack.Push(nil, root)
	follow := NewFollowEntityGoal(ts.ActorByName("leader"), tn.Follow.MaxDistance)
	escort.Stack.Push(root, follow)

	ctx := BuildPerception(escort, ts.Map, ts, &tn, 1)
	follow.TakeAction(ctx)
	if !follow.HasFailed() {
		t.Fatal("follow must fail with a raider in sight")
	}
	assertStack(t, escort.Stack, "bored")
}

// An item-carrying actor spots loot, walks onto it, and picks it up.
func TestScenarioSeekAndCollectItem(t *testing.T) {
	ts := NewTestSim(
		WithMap(
			"###########",
			"#.........#",
			"#.........#",
			"#.........#",
			"###########",
		),
		WithGuard("scav", "red", 2, 2),
		WithItem("gem", 7, 2),
	)
	defer dumpSimLog(t, ts)

	ctx := buildTestPerception(ts, "scav")
	if len(ctx.Items) != 1 {
		t.Fatalf("the gem should be in sight, got %v", ctx.Items)
	}
	gemID := ctx.Items[0].Entity.ID()

	ts.RunTurns(10)

	if _, ok := ts.ByID(gemID); ok {
		t.Error("the gem should have been collected")
	}
	if picks := ts.SimLog.Filter("action", "pickup"); len(picks) != 1 {
		t.Errorf("want exactly one pickup, got %d", len(picks))
	}
}

// A ranged guard whittles a charging beast down and finishes it in melee.
func TestScenarioGuardKillsChargingBeast(t *testing.T) {
	ts := NewTestSim(
		WithMap(
			"###########",
			"#.........#",
			"#.........#",
			"#.........#",
			"###########",
		),
		WithGuard("sword", "red", 2, 2),
		WithBeast("rat", "blue", 8, 2),
	)
	defer dumpSimLog(t, ts)

	ts.RunTurns(60)

	sword := ts.ActorByName("sword")
	rat := ts.ActorByName("rat")
	if rat.Alive() {
		t.Fatalf("the rat should be dead, hp %d/%d", rat.HP, rat.MaxHP)
	}
	if !sword.Alive() {
		t.Fatal("the guard should have survived")
	}
	if attacks := ts.SimLog.Filter("action", "attack"); len(attacks) == 0 {
		t.Error("no attacks were logged")
	}
	if deaths := ts.SimLog.Filter("combat", "death"); len(deaths) != 1 {
		t.Errorf("want one death entry, got %d", len(deaths))
	}
	// After the fight the victor falls back to the permanent root.
	if sword.Stack.Len() < 1 || sword.Stack.Goals()[0].Name() != "bored" {
		t.Errorf("victor's stack must stay rooted, got: %s", sword.Stack)
	}
}

// Idle wandering stays tethered to the spawn cell.
func TestScenarioWanderStaysNearHome(t *testing.T) {
	ts := NewTestSim(
		WithMap(
			"######################",
			"#....................#",
			"#....................#",
			"#....................#",
			"#....................#",
			"######################",
		),
		WithGuard("drifter", "red", 3, 2),
	)
	defer dumpSimLog(t, ts)

	tn := DefaultTuning()
	ts.RunTurns(30)

	drifter := ts.ActorByName("drifter")
	if d := drifter.Pos().Chebyshev(drifter.Home); d > tn.Wander.Radius {
		t.Errorf("drifter wandered %d cells from home, tether is %d", d, tn.Wander.Radius)
	}
}
