package mind

// KillTargetGoal prosecutes one enemy to the death. Each tick it walks the
// tuned tier list (melee is adjacency-gated, then defensive, ranged, item) and
// executes the first tier that yields a candidate; when no tier produces
// anything it closes distance instead. The tier order lives in tuning as an
// explicit named list rather than hardcoded control flow.
type KillTargetGoal struct {
	BaseGoal
	target Entity
}

// NewKillTargetGoal creates the combat intent for one target.
func NewKillTargetGoal(target Entity) *KillTargetGoal {
	return &KillTargetGoal{target: target}
}

func (g *KillTargetGoal) Name() string { return "kill" }

// IsFinished: the target is dead, gone from the registry, or out of sight.
// An invisible target is an invalid one; search behaviour is the root
// goal's decision, not this goal's.
func (g *KillTargetGoal) IsFinished(ctx *Perception) bool {
	live, ok := ctx.Resolve(g.target)
	if !ok || !live.Alive() {
		return true
	}
	return !ctx.CanSee(live)
}

func (g *KillTargetGoal) TakeAction(ctx *Perception) {
	live, ok := ctx.Resolve(g.target)
	if !ok {
		g.Fail()
		return
	}
	g.target = live
	adjacent := ctx.Actor.Pos().Chebyshev(live.Pos()) <= 1

	for _, tier := range ctx.Tuning.KillPriority {
		event, gated := tierEvent(tier)
		if gated && !adjacent {
			continue
		}
		payload := Gather(event, ctx)
		if payload.Handled {
			return
		}
		if candidate, ok := PickWeighted(ctx.Actor.RNG(), payload.Candidates); ok {
			g.execute(ctx, candidate)
			return
		}
	}

	// Nothing to do at this range: close in.
	g.Push(ctx, NewApproachEntityGoal(live, 1, true))
}

func (g *KillTargetGoal) execute(ctx *Perception, candidate CandidateAction) {
	ctx.Actor.Thoughts.Add(ctx.Turn, "kill picked %s", candidate.Name)
	if !candidate.Action.CanExecute(ctx.Actor, ctx.World) {
		g.Fail()
		return
	}
	candidate.Action.Execute(ctx.Actor, ctx.World)
}

// tierEvent maps a tuning tier name onto its gathering event. gated marks
// tiers that only fire when adjacent to the target.
func tierEvent(tier string) (event EventKind, gated bool) {
	switch tier {
	case "melee":
		return EventMelee, true
	case "defensive":
		return EventDefensive, false
	case "ranged":
		return EventRanged, false
	default:
		return EventItemUse, false
	}
}
