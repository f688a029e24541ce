package mind

import "testing"

func TestOrchestratorTurnCounter(t *testing.T) {
	ts := NewTestSim(WithGuard("solo", "red", 2, 2))
	o := ts.Orchestrator()
	if o.Turn() != 0 {
		t.Fatalf("fresh orchestrator at turn %d, want 0", o.Turn())
	}
	ts.RunTurns(4)
	if o.Turn() != 4 {
		t.Errorf("after 4 rounds the counter reads %d", o.Turn())
	}
	if ts.CurrentTurn() != o.Turn() {
		t.Errorf("harness turn %d drifted from orchestrator turn %d", ts.CurrentTurn(), o.Turn())
	}
}

func TestProcessTurnToleratesNilAndDead(t *testing.T) {
	ts := NewTestSim(WithGuard("solo", "red", 2, 2))
	o := ts.Orchestrator()

	o.ProcessTurn(nil) // must not panic

	a := ts.ActorByName("solo")
	a.HP = 0
	o.ProcessTurn(a)
	if a.Stack.Len() != 0 {
		t.Error("dead actors must not be planned for")
	}
}

// A full round never leaves any living actor with an empty stack, whatever
// happened during the turn.
func TestProcessTurnStackNonEmptyInvariant(t *testing.T) {
	ts := NewTestSim(
		WithGuard("g1", "red", 2, 2),
		WithGuard("g2", "red", 7, 2),
		WithBeast("b1", "blue", 4, 3),
	)
	for i := 0; i < 20; i++ {
		ts.RunTurns(1)
		for _, a := range ts.Actors {
			if !a.Alive() {
				continue
			}
			if a.Stack.Len() < 1 {
				t.Fatalf("turn %d: %s has an empty stack", ts.CurrentTurn(), a.Name)
			}
			if a.Stack.Goals()[0].Name() != "bored" {
				t.Fatalf("turn %d: %s lost its root goal: %s", ts.CurrentTurn(), a.Name, a.Stack)
			}
		}
	}
}
