package mind

import (
	"math/rand"

	"github.com/google/uuid"
)

// Actor is one AI-controlled creature: position, capability profile, goal
// stack, behavior-module registry, and a seedable RNG. Setup is two-phase:
// NewActor builds the actor and its immutable profile, then the owner wires
// actions, modules, and cross-references (protect target) before the first
// ProcessTurn. Nothing here depends on construction order between actors.
type Actor struct {
	id      uuid.UUID
	Name    string
	faction string

	pos   Position
	Home  Position // spawn cell; wandering stays tethered to it
	HP    int
	MaxHP int

	Caps         CapabilityProfile
	VisionRange  int
	VisionMetric DistanceMetric

	// Actions is the external action-execution contract; wired in phase two.
	Actions ActionSet

	// ProtectTarget, when set, is the entity this actor escorts. The root
	// goal checks it every turn.
	ProtectTarget uuid.UUID

	Stack    *GoalStack
	Thoughts *ThoughtLog

	modules      []BehaviorModule
	moduleByKind map[string]BehaviorModule

	rng *rand.Rand
}

// NewActor constructs an actor with an empty goal stack. rng must be non-nil;
// every random decision the planner makes for this actor flows through it.
func NewActor(name, faction string, pos Position, caps CapabilityProfile, visionRange int, rng *rand.Rand) *Actor {
	a := &Actor{
		id:           uuid.New(),
		Name:         name,
		faction:      faction,
		pos:          pos,
		Home:         pos,
		HP:           10,
		MaxHP:        10,
		Caps:         caps,
		VisionRange:  visionRange,
		VisionMetric: MetricEuclidean,
		Thoughts:     NewThoughtLog(),
		moduleByKind: make(map[string]BehaviorModule),
		rng:          rng,
	}
	a.Stack = newGoalStack(a)
	return a
}

// Entity interface: actors are their own registry handles.

func (a *Actor) ID() uuid.UUID    { return a.id }
func (a *Actor) Kind() EntityKind { return KindCreature }
func (a *Actor) Pos() Position    { return a.pos }
func (a *Actor) Alive() bool      { return a.HP > 0 }
func (a *Actor) Faction() string  { return a.faction }

// SetPos relocates the actor. Only the external action-execution layer (the
// harness in this repo) calls this; goals move actors exclusively through
// the Action contract.
func (a *Actor) SetPos(p Position) { a.pos = p }

// RegisterModule attaches a behavior module. Later registrations of the same
// kind replace the earlier one in the registry but keep dispatch order.
func (a *Actor) RegisterModule(m BehaviorModule) {
	if _, ok := a.moduleByKind[m.ModuleKind()]; ok {
		for i, mod := range a.modules {
			if mod.ModuleKind() == m.ModuleKind() {
				a.modules[i] = m
				break
			}
		}
	} else {
		a.modules = append(a.modules, m)
	}
	a.moduleByKind[m.ModuleKind()] = m
}

// Module resolves a registered module by kind. This replaces the original
// system's lookup-sibling-by-name pattern with an explicit typed registry.
func (a *Actor) Module(kind string) (BehaviorModule, bool) {
	m, ok := a.moduleByKind[kind]
	return m, ok
}

// RNG exposes the injected random source for goals and modules.
func (a *Actor) RNG() *rand.Rand { return a.rng }
