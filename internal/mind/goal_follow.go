package mind

// FollowEntityGoal keeps the actor within maxDistance of a leader. It aborts
// the moment hostiles become visible (failing back to its intent so combat
// goals can take over) and finishes once close enough or when the leader is
// no longer valid.
type FollowEntityGoal struct {
	BaseGoal
	leader      Entity
	maxDistance int
}

// NewFollowEntityGoal creates an escort intent.
func NewFollowEntityGoal(leader Entity, maxDistance int) *FollowEntityGoal {
	return &FollowEntityGoal{leader: leader, maxDistance: maxDistance}
}

func (g *FollowEntityGoal) Name() string { return "follow" }

func (g *FollowEntityGoal) IsFinished(ctx *Perception) bool {
	live, ok := ctx.Resolve(g.leader)
	if !ok || !live.Alive() {
		return true
	}
	return ctx.Actor.Pos().Chebyshev(live.Pos()) <= g.maxDistance
}

func (g *FollowEntityGoal) TakeAction(ctx *Perception) {
	if len(ctx.Enemies) > 0 {
		g.Fail()
		return
	}
	live, ok := ctx.Resolve(g.leader)
	if !ok || !live.Alive() {
		g.Fail()
		return
	}
	// The escort knows where its leader is; sight is not required to follow.
	g.Push(ctx, NewApproachEntityGoal(live, g.maxDistance, false))
}

// SeekItemGoal walks onto an item's cell and picks it up. Finished when the
// item is collected or has vanished from the world.
type SeekItemGoal struct {
	BaseGoal
	item      Entity
	collected bool
}

// NewSeekItemGoal creates the pickup intent.
func NewSeekItemGoal(item Entity) *SeekItemGoal {
	return &SeekItemGoal{item: item}
}

func (g *SeekItemGoal) Name() string { return "seek-item" }

func (g *SeekItemGoal) IsFinished(ctx *Perception) bool {
	if g.collected {
		return true
	}
	_, ok := ctx.Resolve(g.item)
	return !ok
}

func (g *SeekItemGoal) TakeAction(ctx *Perception) {
	live, ok := ctx.Resolve(g.item)
	if !ok {
		g.Fail()
		return
	}
	g.item = live

	if ctx.Actor.Pos() != live.Pos() {
		g.Push(ctx, NewApproachEntityGoal(live, 0, false))
		return
	}
	if ctx.Actor.Actions.Pickup == nil {
		g.Fail()
		return
	}
	action := ctx.Actor.Actions.Pickup(live)
	if !action.CanExecute(ctx.Actor, ctx.World) {
		g.Fail()
		return
	}
	result := action.Execute(ctx.Actor, ctx.World)
	if !result.OK {
		g.Fail()
		return
	}
	g.collected = true
	ctx.Actor.Thoughts.Add(ctx.Turn, "collected item at %s", live.Pos())
}
