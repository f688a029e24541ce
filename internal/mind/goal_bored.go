package mind

import "github.com/google/uuid"

// BoredGoal is the permanent root of every stack and the single decision
// hub all emergent personality flows through. It never finishes; the
// orchestrator re-pushes it if the stack ever drains. Priority each turn:
// scripted idle handlers, visible enemies, escort duty, visible loot,
// leftover idle candidates, and finally a single wander step. Combat
// outranks escort duty: FollowEntityGoal aborts when hostiles appear, so
// the reverse order would re-push a follow that instantly fails and the
// escort would stand idle through the fight.
type BoredGoal struct {
	BaseGoal
}

// NewBoredGoal creates the root fallback.
func NewBoredGoal() *BoredGoal {
	return &BoredGoal{}
}

func (g *BoredGoal) Name() string { return "bored" }

// IsFinished is always false: the root goal is permanent.
func (g *BoredGoal) IsFinished(ctx *Perception) bool { return false }

func (g *BoredGoal) TakeAction(ctx *Perception) {
	actor := ctx.Actor

	// Idle-options event first: a module may claim the whole turn.
	payload := Gather(EventIdleOptions, ctx)
	if payload.Handled {
		return
	}

	// Combat: engage the nearest visible enemy.
	if enemy := ctx.NearestEnemy(); enemy != nil {
		g.Push(ctx, NewKillTargetGoal(enemy))
		return
	}

	// Escort duty: stay near the protection target.
	if actor.ProtectTarget != uuid.Nil {
		if leader, ok := ctx.World.ByID(actor.ProtectTarget); ok && leader.Alive() {
			if actor.Pos().Chebyshev(leader.Pos()) > ctx.Tuning.Follow.MaxDistance {
				g.Push(ctx, NewFollowEntityGoal(leader, ctx.Tuning.Follow.MaxDistance))
				return
			}
		}
	}

	// Loot: opportunistic pickup for actors that carry things.
	if actor.Caps.PicksUpItems && len(ctx.Items) > 0 {
		g.Push(ctx, NewSeekItemGoal(ctx.Items[0].Entity))
		return
	}

	// Unclaimed idle candidates from the gathering pass.
	if candidate, ok := PickWeighted(actor.RNG(), payload.Candidates); ok {
		actor.Thoughts.Add(ctx.Turn, "idle picked %s", candidate.Name)
		if candidate.Action.CanExecute(actor, ctx.World) {
			candidate.Action.Execute(actor, ctx.World)
		}
		return
	}

	// Nothing better to do.
	g.Push(ctx, NewTetheredWanderGoal(actor.Home, ctx.Tuning.Wander.Radius))
}
