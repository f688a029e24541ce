package mind

import (
	"github.com/sirupsen/logrus"

	"github.com/greyhollow/delvemind/internal/logger"
)

// Orchestrator is the single entry point the turn scheduler calls into the
// AI core. It owns no scheduling policy: the external scheduler decides
// whose turn it is and in what order; this type guarantees only that each
// ProcessTurn call leaves the actor with a non-empty goal stack and performs
// at most one TakeAction. Strictly single-threaded by contract: every
// computation inside a call runs to completion synchronously.
type Orchestrator struct {
	mapView MapView
	world   WorldView
	tuning  Tuning
	turn    int
}

// NewOrchestrator wires the read-only world query services. The tuning table
// is copied and treated as immutable from here on.
func NewOrchestrator(m MapView, w WorldView, tuning Tuning) *Orchestrator {
	return &Orchestrator{mapView: m, world: w, tuning: tuning}
}

// BeginTurn advances the turn counter. The scheduler calls this once per
// game round, before processing any actor.
func (o *Orchestrator) BeginTurn() {
	o.turn++
}

// Turn returns the current round number.
func (o *Orchestrator) Turn() int { return o.turn }

// ProcessTurn runs one actor's planning tick: build fresh perception, prune
// finished and failed goals, guarantee the root fallback, and let the top
// goal act once. Dead actors are skipped. Nothing here can fail outward;
// worst case the actor idles this turn.
func (o *Orchestrator) ProcessTurn(actor *Actor) {
	if actor == nil || !actor.Alive() {
		return
	}

	ctx := BuildPerception(actor, o.mapView, o.world, &o.tuning, o.turn)
	stack := actor.Stack
	stack.turn = o.turn

	stack.prune(ctx)
	if stack.Len() == 0 {
		stack.Push(nil, NewBoredGoal())
	}

	logger.Log.WithFields(logrus.Fields{
		"turn":    o.turn,
		"actor":   actor.Name,
		"stack":   stack.String(),
		"enemies": len(ctx.Enemies),
	}).Debug("process turn")

	// One action per turn, but planning is free: a goal that pushes a
	// sub-goal hands the rest of the tick to the new top, so a fresh intent
	// chain still moves the actor this turn instead of three turns later.
	// A failure unwinds the stack and ends the tick; the intent replans
	// with fresh perception next turn. Depth-capped against push loops.
	for i := 0; i < maxPlanDepth; i++ {
		top := stack.Top()
		if top == nil {
			return
		}
		depth := stack.Len()
		top.TakeAction(ctx)
		if stack.Len() <= depth {
			return
		}
	}
}

// maxPlanDepth bounds same-tick goal descent. Deeper chains than this are a
// planning bug, not a legitimate plan.
const maxPlanDepth = 8

// GoalStackFor exposes an actor's stack for debugging and introspection
// only; callers must not mutate it.
func (o *Orchestrator) GoalStackFor(actor *Actor) *GoalStack {
	return actor.Stack
}
