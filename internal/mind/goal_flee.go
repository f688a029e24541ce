package mind

// FleeGoal runs from a threat for a minimum number of turns. While fleeing
// it prefers moving toward the nearest visible ally via the flood map
// (safety in numbers) and falls back to moving directly away from the threat
// when no ally is reachable. Termination needs both conditions: the duration
// has elapsed AND the threat is gone (dead, out of sight, or far enough).
type FleeGoal struct {
	BaseGoal
	threat        Entity
	duration      int
	turnsElapsed  int
	lastThreatPos Position
}

// NewFleeGoal creates a flee intent. duration is a floor, not a cap.
func NewFleeGoal(threat Entity, duration int) *FleeGoal {
	return &FleeGoal{threat: threat, duration: duration, lastThreatPos: threat.Pos()}
}

func (g *FleeGoal) Name() string { return "flee" }

func (g *FleeGoal) IsFinished(ctx *Perception) bool {
	if g.turnsElapsed < g.duration {
		return false
	}
	live, ok := ctx.Resolve(g.threat)
	if !ok || !live.Alive() {
		return true
	}
	if !ctx.CanSee(live) {
		return true
	}
	return ctx.Actor.Pos().Chebyshev(live.Pos()) >= ctx.Tuning.Flee.SafeDistance
}

func (g *FleeGoal) TakeAction(ctx *Perception) {
	g.turnsElapsed++
	if live, ok := ctx.Resolve(g.threat); ok {
		g.lastThreatPos = live.Pos()
	}

	cm := ctx.CostMapFor()

	// Preferred: run to the nearest ally.
	if len(ctx.Allies) > 0 {
		sources := make([]Position, 0, len(ctx.Allies))
		for _, s := range ctx.Allies {
			sources = append(sources, s.Entity.Pos())
		}
		field := BuildDistanceField(cm, sources)
		next := field.StepToward(ctx.Actor.Pos())
		if next != ctx.Actor.Pos() {
			g.Push(ctx, NewMoveDirectionGoal(ctx.Actor.Pos().DirectionTo(next)))
			return
		}
	}

	// Fallback: widen the gap to the threat's last known position.
	if dir, ok := g.stepAway(ctx, cm); ok {
		g.Push(ctx, NewMoveDirectionGoal(dir))
		return
	}
	// Cornered. Nothing to do this turn; the duration clock still runs.
	ctx.Actor.Thoughts.Add(ctx.Turn, "flee cornered at %s", ctx.Actor.Pos())
}

// stepAway picks the passable, unoccupied neighbour that most increases
// distance from the threat. Ties resolve in Directions order.
func (g *FleeGoal) stepAway(ctx *Perception, cm *CostMap) (Direction, bool) {
	self := ctx.Actor.Pos()
	bestGain := 0
	var best Direction
	for _, d := range Directions {
		next := self.Add(d)
		if !cm.Passable(next) || ctx.World.OccupantAt(next) != nil {
			continue
		}
		gain := next.Chebyshev(g.lastThreatPos) - self.Chebyshev(g.lastThreatPos)
		if gain > bestGain {
			bestGain = gain
			best = d
		}
	}
	return best, bestGain > 0
}
