package mind

// MoveDirectionGoal is the atomic leaf of every movement plan: invoke the
// single-step move action once, finish on success, fail on rejection. The
// failure propagates to the original intent, which replans against the next
// tick's occupant snapshot.
type MoveDirectionGoal struct {
	BaseGoal
	dir Direction
}

// NewMoveDirectionGoal creates the atomic step goal.
func NewMoveDirectionGoal(dir Direction) *MoveDirectionGoal {
	return &MoveDirectionGoal{dir: dir}
}

func (g *MoveDirectionGoal) Name() string { return "move" }

func (g *MoveDirectionGoal) IsFinished(ctx *Perception) bool { return g.Finished() }

func (g *MoveDirectionGoal) TakeAction(ctx *Perception) {
	if g.dir.IsZero() || ctx.Actor.Actions.Move == nil {
		g.Fail()
		return
	}
	action := ctx.Actor.Actions.Move(g.dir)
	if !action.CanExecute(ctx.Actor, ctx.World) {
		g.Fail()
		return
	}
	result := action.Execute(ctx.Actor, ctx.World)
	if !result.OK {
		g.Fail()
		return
	}
	g.MarkFinished()
}

// WanderGoal makes exactly one attempt to drift a single random step,
// optionally staying within a radius of a center cell, then finishes no
// matter what happened. Repeated wandering is the root goal's job.
type WanderGoal struct {
	BaseGoal
	center    *Position
	radius    int
	attempted bool
}

// NewWanderGoal creates an unconstrained wander.
func NewWanderGoal() *WanderGoal {
	return &WanderGoal{}
}

// NewTetheredWanderGoal keeps the wander within radius of center.
func NewTetheredWanderGoal(center Position, radius int) *WanderGoal {
	return &WanderGoal{center: &center, radius: radius}
}

func (g *WanderGoal) Name() string { return "wander" }

func (g *WanderGoal) IsFinished(ctx *Perception) bool { return g.attempted }

func (g *WanderGoal) TakeAction(ctx *Perception) {
	g.attempted = true

	cm := ctx.CostMapFor()
	self := ctx.Actor.Pos()
	var options []Direction
	for _, d := range Directions {
		next := self.Add(d)
		if !cm.Passable(next) {
			continue
		}
		if ctx.World.OccupantAt(next) != nil {
			continue
		}
		if g.center != nil && g.center.Chebyshev(next) > g.radius {
			continue
		}
		options = append(options, d)
	}
	if len(options) == 0 {
		return
	}
	pick := options[ctx.Actor.RNG().Intn(len(options))]
	g.Push(ctx, NewMoveDirectionGoal(pick))
}
