package mind

// ApproachGoal closes to within desiredDistance of a destination. When it
// tracks an entity it refreshes the destination from the registry every tick,
// so a moving target is followed rather than chased to a stale cell. Each
// step it computes a capability-weighted path and pushes the atomic move for
// the first cell; a blocked step fails back here and the next tick replans
// against the fresh occupant snapshot.
type ApproachGoal struct {
	BaseGoal
	target       Entity // nil for fixed-destination approaches
	dest         Position
	desired      int
	requireSight bool
}

// NewApproachGoal approaches a fixed cell.
func NewApproachGoal(dest Position, desired int) *ApproachGoal {
	return &ApproachGoal{dest: dest, desired: desired}
}

// NewApproachEntityGoal tracks an entity. With requireSight the approach
// fails as soon as the target leaves the actor's FOV, the check that makes
// chase-and-lose recovery work.
func NewApproachEntityGoal(target Entity, desired int, requireSight bool) *ApproachGoal {
	return &ApproachGoal{target: target, dest: target.Pos(), desired: desired, requireSight: requireSight}
}

func (g *ApproachGoal) Name() string { return "approach" }

func (g *ApproachGoal) IsFinished(ctx *Perception) bool {
	if g.target != nil {
		if live, ok := ctx.Resolve(g.target); ok {
			g.dest = live.Pos()
		}
	}
	return ctx.Actor.Pos().Chebyshev(g.dest) <= g.desired
}

func (g *ApproachGoal) TakeAction(ctx *Perception) {
	if g.target != nil {
		live, ok := ctx.Resolve(g.target)
		if !ok {
			g.Fail()
			return
		}
		if g.requireSight && !ctx.CanSee(live) {
			g.Fail()
			return
		}
		g.dest = live.Pos()
	}

	cm := ctx.CostMapFor()
	path := FindPath(cm, ctx.Actor.Pos(), g.dest)
	if len(path) == 0 {
		g.Fail()
		return
	}
	step := ctx.Actor.Pos().DirectionTo(path[0])
	if step.IsZero() {
		g.Fail()
		return
	}
	g.Push(ctx, NewMoveDirectionGoal(step))
}
