package mind

import "math/rand"

// Action-gathering events. A goal broadcasts one of these when it wants to
// know "what can I do right now"; behavior modules attached to the acting
// actor answer with weighted candidates. The goal never knows which modules
// exist: an actor without a ranged module simply yields no ranged
// candidates and the goal degrades to its next tier.
type EventKind string

const (
	EventIdleOptions EventKind = "idle_options"
	EventMelee       EventKind = "melee"
	EventDefensive   EventKind = "defensive"
	EventRanged      EventKind = "ranged"
	EventItemUse     EventKind = "item"
)

// CandidateAction is one weighted option contributed by a module.
type CandidateAction struct {
	Name   string
	Weight int
	Action Action
}

// GatherPayload is the mutable bundle passed through every subscribed module
// during a single gathering call, then discarded once the goal consumes it.
type GatherPayload struct {
	Candidates []CandidateAction
	// Handled lets a module claim the event outright (e.g. a scripted
	// behavior that already acted); goals skip selection when set.
	Handled bool
}

// Offer appends a candidate. Zero or negative weights are dropped so modules
// can weight candidates out of contention conditionally.
func (p *GatherPayload) Offer(name string, weight int, action Action) {
	if weight <= 0 || action == nil {
		return
	}
	p.Candidates = append(p.Candidates, CandidateAction{Name: name, Weight: weight, Action: action})
}

// BehaviorModule is a subscriber on the gathering bus. Modules are plain
// interface implementers registered on the actor at construction; there is
// no scene-graph or lifecycle coupling, and lookup is by kind, not by name
// path.
type BehaviorModule interface {
	// ModuleKind is the registry key, e.g. "melee" or "ranged".
	ModuleKind() string
	// Gather lets the module contribute candidates for one event. Modules
	// must not mutate world state here; they only propose Actions.
	Gather(event EventKind, ctx *Perception, payload *GatherPayload)
}

// Gather dispatches one gathering event to the actor's modules in
// registration order and returns the filled payload.
func Gather(event EventKind, ctx *Perception) *GatherPayload {
	payload := &GatherPayload{}
	for _, module := range ctx.Actor.modules {
		module.Gather(event, ctx, payload)
	}
	return payload
}

// PickWeighted selects one candidate with probability proportional to its
// weight. Weighted-random rather than max-weight on purpose: identical
// situations should produce varied behaviour. The RNG is injected and
// seedable so tests stay deterministic.
func PickWeighted(rng *rand.Rand, candidates []CandidateAction) (CandidateAction, bool) {
	total := 0
	for _, c := range candidates {
		total += c.Weight
	}
	if total <= 0 {
		return CandidateAction{}, false
	}
	roll := rng.Intn(total)
	for _, c := range candidates {
		roll -= c.Weight
		if roll < 0 {
			return c, true
		}
	}
	// Unreachable: roll < total by construction.
	return candidates[len(candidates)-1], true
}
