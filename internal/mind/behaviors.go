package mind

// Reference behavior modules. The goal layer never names these (it only
// broadcasts gathering events), so an actor's loadout is exactly the set of
// modules registered on it at construction. Weights are relative within one
// event, not across events.

// MeleeModule contributes an adjacent strike on the melee event.
type MeleeModule struct{}

func (MeleeModule) ModuleKind() string { return "melee" }

func (MeleeModule) Gather(event EventKind, ctx *Perception, payload *GatherPayload) {
	if event != EventMelee || ctx.Actor.Actions.Attack == nil {
		return
	}
	for _, s := range ctx.Enemies {
		if s.Distance > 1 {
			break // sorted nearest-first
		}
		payload.Offer("melee-strike", 3, ctx.Actor.Actions.Attack(s.Entity))
	}
}

// RangedModule contributes a shot at the nearest enemy in range with clear
// line of sight.
type RangedModule struct {
	Range int
}

func (RangedModule) ModuleKind() string { return "ranged" }

func (m RangedModule) Gather(event EventKind, ctx *Perception, payload *GatherPayload) {
	if event != EventRanged || ctx.Actor.Actions.Ranged == nil {
		return
	}
	for _, s := range ctx.Enemies {
		if s.Distance <= 1 {
			continue // point blank is the melee tier's business
		}
		if s.Distance > m.Range {
			break
		}
		payload.Offer("ranged-shot", 2, ctx.Actor.Actions.Ranged(s.Entity))
		return
	}
}

// MendModule offers a self-heal on the defensive event once health drops
// below half. Weight scales with how hurt the actor is.
type MendModule struct{}

func (MendModule) ModuleKind() string { return "mend" }

func (MendModule) Gather(event EventKind, ctx *Perception, payload *GatherPayload) {
	if event != EventDefensive || ctx.Actor.Actions.Heal == nil {
		return
	}
	a := ctx.Actor
	if a.HP*2 >= a.MaxHP {
		return
	}
	weight := 1
	if a.HP*4 < a.MaxHP {
		weight = 3
	}
	payload.Offer("mend-self", weight, a.Actions.Heal())
}
