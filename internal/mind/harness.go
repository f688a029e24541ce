package mind

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/google/uuid"
)

// TestSim is a headless dungeon harness used by tests and cmd/headless-report.
// It implements the external collaborators the AI core consumes: map view,
// entity registry, and a minimal action-execution layer (move, melee, ranged,
// heal, pickup with flat numbers). Just enough world to exercise every goal.
// Deterministic under a fixed seed.

// DungeonMap is a static tile grid parsed from ASCII rows:
//
//	# wall   . floor   + door   ~ mild hazard   ^ severe hazard
type DungeonMap struct {
	w, h  int
	tiles []TileKind
}

// ParseMap builds a DungeonMap from equal-length ASCII rows.
func ParseMap(rows []string) (*DungeonMap, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("map: no rows")
	}
	w := len(rows[0])
	m := &DungeonMap{w: w, h: len(rows), tiles: make([]TileKind, 0, w*len(rows))}
	for y, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("map: row %d has width %d, want %d", y, len(row), w)
		}
		for _, ch := range row {
			switch ch {
			case '#':
				m.tiles = append(m.tiles, TileWall)
			case '.':
				m.tiles = append(m.tiles, TileFloor)
			case '+':
				m.tiles = append(m.tiles, TileDoor)
			case '~':
				m.tiles = append(m.tiles, TileHazardMild)
			case '^':
				m.tiles = append(m.tiles, TileHazardSevere)
			default:
				return nil, fmt.Errorf("map: unknown tile %q at row %d", ch, y)
			}
		}
	}
	return m, nil
}

// MustParseMap is ParseMap for fixture literals.
func MustParseMap(rows []string) *DungeonMap {
	m, err := ParseMap(rows)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *DungeonMap) Size() (int, int) { return m.w, m.h }

func (m *DungeonMap) InBounds(p Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < m.w && p.Y < m.h
}

func (m *DungeonMap) TileAt(p Position) TileKind {
	if !m.InBounds(p) {
		return TileWall
	}
	return m.tiles[p.Y*m.w+p.X]
}

// Opaque: walls and closed doors block sight; hazards and floor do not.
func (m *DungeonMap) Opaque(p Position) bool {
	t := m.TileAt(p)
	return t == TileWall || t == TileDoor
}

// GroundItem is a pick-uppable entity lying on a cell.
type GroundItem struct {
	id   uuid.UUID
	name string
	pos  Position
}

func (it *GroundItem) ID() uuid.UUID    { return it.id }
func (it *GroundItem) Kind() EntityKind { return KindItem }
func (it *GroundItem) Pos() Position    { return it.pos }
func (it *GroundItem) Alive() bool      { return false }
func (it *GroundItem) Faction() string  { return "" }

// TestSim wires a map, actors, items, and an orchestrator together.
type TestSim struct {
	Map    *DungeonMap
	Actors []*Actor
	SimLog *SimLog

	items     []*GroundItem
	byID      map[uuid.UUID]Entity
	tuning    Tuning
	orch      *Orchestrator
	rng       *rand.Rand
	turn      int
	prevStack map[string]string
}

// simOptionKind controls the pass in which an option is applied: infra
// first (map, seed, tuning), then creatures and items, then cross-wiring
// (protect orders). Two-phase actor setup is load-bearing: no option may
// depend on the order actors were declared in.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota
	simOptEntity
	simOptWire
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithMap sets the dungeon layout from ASCII rows.
func WithMap(rows ...string) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Map = MustParseMap(rows)
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- simulation harness
	}}
}

// WithVerbose enables per-turn verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.SimLog = NewSimLog(v)
	}}
}

// WithTuning overrides the embedded tuning table.
func WithTuning(t Tuning) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.tuning = t
	}}
}

// WithCreature adds an actor with the given capability profile and behavior
// modules. Vision range comes from tuning.
func WithCreature(name, faction string, x, y int, caps CapabilityProfile, modules ...BehaviorModule) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.addActor(name, faction, Position{X: x, Y: y}, caps, modules...)
	}}
}

// WithGuard adds a door-using melee+ranged+mend fighter.
func WithGuard(name, faction string, x, y int) SimOption {
	return WithCreature(name, faction, x, y, GroundProfile(),
		MeleeModule{}, RangedModule{Range: 6}, MendModule{})
}

// WithBeast adds a melee-only creature that cannot use doors.
func WithBeast(name, faction string, x, y int) SimOption {
	return WithCreature(name, faction, x, y, BeastProfile(), MeleeModule{})
}

// WithItem drops a named item on a cell.
func WithItem(name string, x, y int) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		it := &GroundItem{id: uuid.New(), name: name, pos: Position{X: x, Y: y}}
		ts.items = append(ts.items, it)
		ts.byID[it.id] = it
	}}
}

// WithProtectOrder makes one actor escort another. Applied in the wiring
// pass, so declaration order of the two actors is irrelevant.
func WithProtectOrder(escort, leader string) SimOption {
	return SimOption{simOptWire, func(ts *TestSim) {
		e := ts.ActorByName(escort)
		l := ts.ActorByName(leader)
		if e != nil && l != nil {
			e.ProtectTarget = l.ID()
		}
	}}
}

// NewTestSim constructs the harness. Options apply infra → entities → wiring.
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		tuning:    DefaultTuning(),
		byID:      make(map[uuid.UUID]Entity),
		prevStack: make(map[string]string),
		SimLog:    NewSimLog(false),
		rng:       rand.New(rand.NewSource(1)), // #nosec G404 -- simulation harness
	}
	sort.SliceStable(opts, func(i, j int) bool { return opts[i].kind < opts[j].kind })
	for _, opt := range opts {
		opt.fn(ts)
	}
	if ts.Map == nil {
		ts.Map = MustParseMap([]string{
			"##########",
			"#........#",
			"#........#",
			"#........#",
			"##########",
		})
	}
	ts.orch = NewOrchestrator(ts.Map, ts, ts.tuning)
	return ts
}

func (ts *TestSim) addActor(name, faction string, pos Position, caps CapabilityProfile, modules ...BehaviorModule) {
	// Per-actor RNG stream derived from the sim seed keeps actors
	// independent of each other's draw counts.
	actorRNG := rand.New(rand.NewSource(ts.rng.Int63())) // #nosec G404 -- simulation harness
	a := NewActor(name, faction, pos, caps, ts.tuning.Vision.DefaultRange, actorRNG)
	a.Actions = ActionSet{
		Move:   func(d Direction) Action { return &moveAction{sim: ts, dir: d} },
		Attack: func(t Entity) Action { return &attackAction{sim: ts, target: t, damage: 2, reach: 1} },
		Ranged: func(t Entity) Action { return &attackAction{sim: ts, target: t, damage: 1, reach: 6} },
		Heal:   func() Action { return &healAction{sim: ts, amount: 3} },
		Pickup: func(it Entity) Action { return &pickupAction{sim: ts, item: it} },
	}
	for _, m := range modules {
		a.RegisterModule(m)
	}
	ts.Actors = append(ts.Actors, a)
	ts.byID[a.ID()] = a
}

// --- WorldView implementation ---

func (ts *TestSim) OccupantAt(p Position) Entity {
	for _, a := range ts.Actors {
		if a.Alive() && a.Pos() == p {
			return a
		}
	}
	return nil
}

func (ts *TestSim) EntitiesWithin(p Position, r int) []Entity {
	var out []Entity
	for _, a := range ts.Actors {
		if p.Chebyshev(a.Pos()) <= r {
			out = append(out, a)
		}
	}
	for _, it := range ts.items {
		if p.Chebyshev(it.pos) <= r {
			out = append(out, it)
		}
	}
	return out
}

func (ts *TestSim) ByID(id uuid.UUID) (Entity, bool) {
	e, ok := ts.byID[id]
	return e, ok
}

func (ts *TestSim) Hostile(a, b Entity) bool {
	return a.Faction() != "" && b.Faction() != "" && a.Faction() != b.Faction()
}

// --- harness controls ---

// ActorByName returns the actor with the given name, or nil.
func (ts *TestSim) ActorByName(name string) *Actor {
	for _, a := range ts.Actors {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// RemoveItem deletes an item from the world (picked up or destroyed).
func (ts *TestSim) RemoveItem(id uuid.UUID) {
	delete(ts.byID, id)
	for i, it := range ts.items {
		if it.id == id {
			ts.items = append(ts.items[:i], ts.items[i+1:]...)
			return
		}
	}
}

// CurrentTurn returns the number of completed turns.
func (ts *TestSim) CurrentTurn() int { return ts.turn }

// Orchestrator exposes the wired orchestrator for introspection calls.
func (ts *TestSim) Orchestrator() *Orchestrator { return ts.orch }

// RunTurns advances the simulation n rounds. Each round every living actor
// gets exactly one ProcessTurn, in creation order. A stand-in for the
// external scheduler, which owns real initiative rules.
func (ts *TestSim) RunTurns(n int) {
	for i := 0; i < n; i++ {
		ts.turn++
		ts.orch.BeginTurn()
		for _, a := range ts.Actors {
			if !a.Alive() {
				continue
			}
			ts.orch.ProcessTurn(a)
			ts.recordStack(a)
			ts.SimLog.AddVerbose(ts.turn, a.Name, "move", "position", a.Pos().String(), 0)
		}
	}
}

// recordStack logs a goal event whenever an actor's stack shape changes.
func (ts *TestSim) recordStack(a *Actor) {
	cur := a.Stack.String()
	if prev, ok := ts.prevStack[a.Name]; !ok || prev != cur {
		ts.SimLog.Add(ts.turn, a.Name, "goal", "stack", cur, float64(a.Stack.Len()))
		ts.prevStack[a.Name] = cur
	}
}

// --- action layer ---

// terrainEnterable mirrors the cost-map passability rules for one step.
func terrainEnterable(caps CapabilityProfile, tile TileKind) bool {
	switch tile {
	case TileWall:
		return caps.CanBurrow
	case TileDoor:
		return caps.CanOpenDoors
	default:
		return true
	}
}

type moveAction struct {
	sim *TestSim
	dir Direction
}

func (a *moveAction) CanExecute(actor *Actor, world WorldView) bool {
	dest := actor.Pos().Add(a.dir)
	if !a.sim.Map.InBounds(dest) {
		return false
	}
	if !terrainEnterable(actor.Caps, a.sim.Map.TileAt(dest)) {
		return false
	}
	return world.OccupantAt(dest) == nil
}

func (a *moveAction) Execute(actor *Actor, world WorldView) ActionResult {
	if !a.CanExecute(actor, world) {
		return ActionResult{OK: false, Message: "blocked", TurnCost: 0}
	}
	dest := actor.Pos().Add(a.dir)
	actor.SetPos(dest)

	// Hazards hurt on entry unless the actor flies over them.
	if !actor.Caps.CanFly {
		switch a.sim.Map.TileAt(dest) {
		case TileHazardMild:
			a.sim.damage(actor, 1, "hazard")
		case TileHazardSevere:
			a.sim.damage(actor, 3, "hazard")
		}
	}
	a.sim.SimLog.Add(a.sim.turn, actor.Name, "action", "move", dest.String(), 0)
	return ActionResult{OK: true, TurnCost: 1}
}

type attackAction struct {
	sim    *TestSim
	target Entity
	damage int
	reach  int
}

func (a *attackAction) CanExecute(actor *Actor, world WorldView) bool {
	live, ok := world.ByID(a.target.ID())
	if !ok || !live.Alive() {
		return false
	}
	return actor.Pos().Chebyshev(live.Pos()) <= a.reach
}

func (a *attackAction) Execute(actor *Actor, world WorldView) ActionResult {
	if !a.CanExecute(actor, world) {
		return ActionResult{OK: false, Message: "no target", TurnCost: 0}
	}
	live, _ := world.ByID(a.target.ID())
	victim, ok := live.(*Actor)
	if !ok {
		return ActionResult{OK: false, Message: "not a creature", TurnCost: 0}
	}
	a.sim.damage(victim, a.damage, actor.Name)
	a.sim.SimLog.Add(a.sim.turn, actor.Name, "action", "attack",
		fmt.Sprintf("%s for %d", victim.Name, a.damage), float64(a.damage))
	return ActionResult{OK: true, TurnCost: 1}
}

type healAction struct {
	sim    *TestSim
	amount int
}

func (a *healAction) CanExecute(actor *Actor, world WorldView) bool {
	return actor.HP < actor.MaxHP
}

func (a *healAction) Execute(actor *Actor, world WorldView) ActionResult {
	if !a.CanExecute(actor, world) {
		return ActionResult{OK: false, Message: "already whole", TurnCost: 0}
	}
	actor.HP += a.amount
	if actor.HP > actor.MaxHP {
		actor.HP = actor.MaxHP
	}
	a.sim.SimLog.Add(a.sim.turn, actor.Name, "action", "heal",
		fmt.Sprintf("to %d/%d", actor.HP, actor.MaxHP), float64(a.amount))
	return ActionResult{OK: true, TurnCost: 1}
}

type pickupAction struct {
	sim  *TestSim
	item Entity
}

func (a *pickupAction) CanExecute(actor *Actor, world WorldView) bool {
	live, ok := world.ByID(a.item.ID())
	if !ok {
		return false
	}
	return actor.Pos() == live.Pos()
}

func (a *pickupAction) Execute(actor *Actor, world WorldView) ActionResult {
	if !a.CanExecute(actor, world) {
		return ActionResult{OK: false, Message: "item gone", TurnCost: 0}
	}
	name := "item"
	if gi, ok := a.item.(*GroundItem); ok {
		name = gi.name
	}
	a.sim.RemoveItem(a.item.ID())
	a.sim.SimLog.Add(a.sim.turn, actor.Name, "action", "pickup", name, 0)
	return ActionResult{OK: true, TurnCost: 1}
}

func (ts *TestSim) damage(victim *Actor, amount int, source string) {
	victim.HP -= amount
	if victim.HP <= 0 {
		victim.HP = 0
		ts.SimLog.Add(ts.turn, victim.Name, "combat", "death", "killed by "+source, 0)
	}
}
