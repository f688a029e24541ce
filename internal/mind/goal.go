package mind

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/greyhollow/delvemind/internal/logger"
)

// Goal is one unit of intent on an actor's stack. A goal is one step from
// finished or failed every tick: the orchestrator calls TakeAction on the
// top of the stack only, and a goal with an active sub-goal simply waits
// underneath it.
type Goal interface {
	// Name identifies the goal in logs and debug output.
	Name() string
	// TakeAction performs at most one action's worth of planning: execute an
	// action, push a sub-goal, or fail.
	TakeAction(ctx *Perception)
	// IsFinished reports whether the objective is met. Evaluated with fresh
	// perception during the maintenance pass; a finished goal never receives
	// another TakeAction call.
	IsFinished(ctx *Perception) bool
	// HasFailed reports an explicit failure signal.
	HasFailed() bool
	// OriginalIntent is the goal that pushed this one, the recovery point
	// for Fail. Weak back-reference only; never owns the parent.
	OriginalIntent() Goal

	bind(stack *GoalStack, intent Goal, self Goal)
}

// BaseGoal carries the lifecycle state every concrete goal embeds: finished
// and failed flags, the intent back-reference, and the owning stack.
type BaseGoal struct {
	stack  *GoalStack
	intent Goal
	self   Goal
	done   bool
	failed bool
}

func (g *BaseGoal) bind(stack *GoalStack, intent Goal, self Goal) {
	g.stack = stack
	g.intent = intent
	g.self = self
}

// OriginalIntent returns the pushing goal, or nil for externally pushed goals.
func (g *BaseGoal) OriginalIntent() Goal { return g.intent }

// HasFailed reports the failure flag.
func (g *BaseGoal) HasFailed() bool { return g.failed }

// MarkFinished flags the goal for removal on the next maintenance pass.
func (g *BaseGoal) MarkFinished() { g.done = true }

// Finished returns the explicit finished flag. Concrete goals whose
// completion is a pure state check fold this into their IsFinished.
func (g *BaseGoal) Finished() bool { return g.done }

// Fail pops this goal and everything stacked between it and its original
// intent, returning control to the intent so it can replan with fresh
// perception next tick. This is the entire failure-recovery mechanism: no
// panics, no error plumbing.
func (g *BaseGoal) Fail() {
	g.failed = true
	if g.stack != nil {
		g.stack.failFrom(g.self)
	}
}

// Push puts a sub-goal on top of this goal's stack with this goal as the
// new goal's original intent.
func (g *BaseGoal) Push(ctx *Perception, sub Goal) {
	g.stack.Push(g.self, sub)
	ctx.Actor.Thoughts.Add(ctx.Turn, "%s pushed %s", g.self.Name(), sub.Name())
}

// GoalStack is the LIFO planning state for one actor: top is the current
// tactical step, bottom is the permanent root fallback. One stack per actor,
// owned exclusively; stacks of different actors share nothing.
type GoalStack struct {
	owner *Actor
	goals []Goal
	turn  int // last turn processed, for thought-log stamps
}

func newGoalStack(owner *Actor) *GoalStack {
	return &GoalStack{owner: owner}
}

// Push binds and stacks g. intent may be nil for goals pushed by external
// event handlers rather than by another goal.
func (s *GoalStack) Push(intent Goal, g Goal) {
	g.bind(s, intent, g)
	s.goals = append(s.goals, g)
	logger.Log.WithFields(logrus.Fields{
		"actor": s.owner.Name,
		"goal":  g.Name(),
		"depth": len(s.goals),
	}).Debug("goal pushed")
}

// Top returns the active goal, or nil on an empty stack.
func (s *GoalStack) Top() Goal {
	if len(s.goals) == 0 {
		return nil
	}
	return s.goals[len(s.goals)-1]
}

// Len returns the stack depth.
func (s *GoalStack) Len() int { return len(s.goals) }

// Goals returns a bottom-first copy for debugging and tests.
func (s *GoalStack) Goals() []Goal {
	out := make([]Goal, len(s.goals))
	copy(out, s.goals)
	return out
}

func (s *GoalStack) pop() {
	if len(s.goals) == 0 {
		return
	}
	s.goals[len(s.goals)-1] = nil
	s.goals = s.goals[:len(s.goals)-1]
}

// failFrom pops from the top down to, but not including, failed's original
// intent. With a nil intent everything above the (re-pushed) root goes.
func (s *GoalStack) failFrom(failed Goal) {
	intent := failed.OriginalIntent()
	removed := 0
	for len(s.goals) > 0 && s.Top() != intent {
		s.pop()
		removed++
	}
	logger.Log.WithFields(logrus.Fields{
		"actor":   s.owner.Name,
		"goal":    failed.Name(),
		"removed": removed,
	}).Debug("goal failed to intent")
	s.owner.Thoughts.Add(s.turn, "%s failed, recovered to %s", failed.Name(), nameOrNone(intent))
}

// prune removes finished and failed goals from the top until the active goal
// is live. Failed tops unwind through failFrom so the intent link is honored
// even when the failure was flagged outside TakeAction.
func (s *GoalStack) prune(ctx *Perception) {
	for {
		top := s.Top()
		if top == nil {
			return
		}
		switch {
		case top.HasFailed():
			s.failFrom(top)
		case top.IsFinished(ctx):
			ctx.Actor.Thoughts.Add(ctx.Turn, "%s finished", top.Name())
			s.pop()
		default:
			return
		}
	}
}

// String renders the stack bottom-first, e.g. "bored > kill > approach".
func (s *GoalStack) String() string {
	names := make([]string, len(s.goals))
	for i, g := range s.goals {
		names[i] = g.Name()
	}
	return strings.Join(names, " > ")
}

func nameOrNone(g Goal) string {
	if g == nil {
		return "(none)"
	}
	return g.Name()
}
