package main

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/greyhollow/delvemind/internal/logger"
	"github.com/greyhollow/delvemind/internal/mind"
)

// headless-report runs batches of deterministic dungeon simulations and
// prints per-run and aggregate planner statistics. It is the balance-tuning
// companion to the scenario tests: same harness, same sim log, but across
// many seeds at once.

type scenarioFunc func(seed int64, tuning mind.Tuning) *mind.TestSim

var scenarios = map[string]scenarioFunc{
	"skirmish": buildSkirmish,
	"escort":   buildEscort,
	"scavenge": buildScavenge,
}

type runStats struct {
	runIndex int
	seed     int64

	firstAttackTurn int
	firstDeathTurn  int

	attacks     int
	heals       int
	pickups     int
	deaths      int
	goalChanges int

	survivorsByFaction map[string]int
	finalStacks        []string
}

func main() {
	var runs int
	var turns int
	var seedBase int64
	var seedStep int64
	var scenario string
	var tuningPath string

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&turns, "turns", 200, "turns per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&scenario, "scenario", "skirmish", "scenario name: "+scenarioNames())
	flag.StringVar(&tuningPath, "tuning", "", "optional tuning override file (yaml)")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if turns <= 0 {
		fmt.Println("error: -turns must be > 0")
		return
	}
	build, ok := scenarios[scenario]
	if !ok {
		fmt.Printf("error: unsupported scenario %q (supported: %s)\n", scenario, scenarioNames())
		return
	}

	tuning := mind.DefaultTuning()
	if tuningPath != "" {
		loaded, err := mind.LoadTuning(tuningPath)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		tuning = loaded
		logger.Log.WithField("path", tuningPath).Info("tuning override loaded")
	}

	fmt.Printf("=== Headless Dungeon Report ===\n")
	fmt.Printf("scenario=%s runs=%d turns=%d seed_base=%d seed_step=%d\n\n",
		scenario, runs, turns, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		ts := build(seed, tuning)
		ts.RunTurns(turns)
		stats := collectStats(i+1, seed, ts)
		all = append(all, stats)
		printRun(stats)
	}
	printAggregate(all)
}

func scenarioNames() string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// buildSkirmish pits a guard pair against a beast pack in a two-room dungeon.
func buildSkirmish(seed int64, tuning mind.Tuning) *mind.TestSim {
	return mind.NewTestSim(
		mind.WithMap(
			"####################",
			"#........#.........#",
			"#........+.........#",
			"#.............~~...#",
			"#........#.........#",
			"####################",
		),
		mind.WithSeed(seed),
		mind.WithTuning(tuning),
		mind.WithGuard("guard-1", "wardens", 2, 2),
		mind.WithGuard("guard-2", "wardens", 3, 3),
		mind.WithBeast("beast-1", "vermin", 16, 1),
		mind.WithBeast("beast-2", "vermin", 17, 3),
		mind.WithBeast("beast-3", "vermin", 15, 4),
	)
}

// buildEscort marches an escorted leader past a lurking ambusher.
func buildEscort(seed int64, tuning mind.Tuning) *mind.TestSim {
	return mind.NewTestSim(
		mind.WithMap(
			"##################",
			"#................#",
			"#......####......#",
			"#................#",
			"##################",
		),
		mind.WithSeed(seed),
		mind.WithTuning(tuning),
		mind.WithGuard("leader", "wardens", 2, 1),
		mind.WithGuard("escort", "wardens", 4, 3),
		mind.WithBeast("ambusher", "vermin", 15, 3),
		mind.WithProtectOrder("escort", "leader"),
	)
}

// buildScavenge scatters loot for a lone collector with vermin in the way.
func buildScavenge(seed int64, tuning mind.Tuning) *mind.TestSim {
	return mind.NewTestSim(
		mind.WithMap(
			"################",
			"#..............#",
			"#....#....#....#",
			"#..............#",
			"################",
		),
		mind.WithSeed(seed),
		mind.WithTuning(tuning),
		mind.WithGuard("collector", "wardens", 1, 1),
		mind.WithBeast("rat", "vermin", 13, 3),
		mind.WithItem("coin", 6, 1),
		mind.WithItem("gem", 11, 3),
		mind.WithItem("relic", 14, 1),
	)
}

func collectStats(runIndex int, seed int64, ts *mind.TestSim) runStats {
	rs := runStats{
		runIndex:           runIndex,
		seed:               seed,
		firstAttackTurn:    firstTurn(ts.SimLog.Entries(), "action", "attack"),
		firstDeathTurn:     firstTurn(ts.SimLog.Entries(), "combat", "death"),
		attacks:            len(ts.SimLog.Filter("action", "attack")),
		heals:              len(ts.SimLog.Filter("action", "heal")),
		pickups:            len(ts.SimLog.Filter("action", "pickup")),
		deaths:             len(ts.SimLog.Filter("combat", "death")),
		goalChanges:        len(ts.SimLog.Filter("goal", "stack")),
		survivorsByFaction: map[string]int{},
	}
	for _, a := range ts.Actors {
		if a.Alive() {
			rs.survivorsByFaction[a.Faction()]++
		}
		rs.finalStacks = append(rs.finalStacks,
			fmt.Sprintf("%s[%s]", a.Name, a.Stack.String()))
	}
	return rs
}

func firstTurn(entries []mind.SimLogEntry, category, key string) int {
	for _, e := range entries {
		if e.Category == category && e.Key == key {
			return e.Turn
		}
	}
	return -1
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("phase_markers: first_attack=%d first_death=%d\n",
		rs.firstAttackTurn, rs.firstDeathTurn)
	fmt.Printf("event_totals: attacks=%d heals=%d pickups=%d deaths=%d goal_changes=%d\n",
		rs.attacks, rs.heals, rs.pickups, rs.deaths, rs.goalChanges)
	fmt.Printf("survivors: %s\n", formatSurvivors(rs.survivorsByFaction))
	fmt.Printf("final_stacks: %s\n\n", strings.Join(rs.finalStacks, " "))
}

func printAggregate(all []runStats) {
	totalAttacks := 0
	totalHeals := 0
	totalPickups := 0
	totalDeaths := 0
	totalGoalChanges := 0
	attackTurns := make([]int, 0, len(all))
	deathTurns := make([]int, 0, len(all))
	survivorTotals := map[string]int{}

	for _, rs := range all {
		totalAttacks += rs.attacks
		totalHeals += rs.heals
		totalPickups += rs.pickups
		totalDeaths += rs.deaths
		totalGoalChanges += rs.goalChanges
		if rs.firstAttackTurn >= 0 {
			attackTurns = append(attackTurns, rs.firstAttackTurn)
		}
		if rs.firstDeathTurn >= 0 {
			deathTurns = append(deathTurns, rs.firstDeathTurn)
		}
		for faction, n := range rs.survivorsByFaction {
			survivorTotals[faction] += n
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d\n", len(all))
	fmt.Printf("avg_events_per_run: attacks=%.1f heals=%.1f pickups=%.1f deaths=%.1f goal_changes=%.1f\n",
		avg(totalAttacks, len(all)), avg(totalHeals, len(all)), avg(totalPickups, len(all)),
		avg(totalDeaths, len(all)), avg(totalGoalChanges, len(all)))
	fmt.Printf("phase_marker_avg_turns: first_attack=%s first_death=%s\n",
		avgTurnString(attackTurns), avgTurnString(deathTurns))

	factions := make([]string, 0, len(survivorTotals))
	for faction := range survivorTotals {
		factions = append(factions, faction)
	}
	sort.Strings(factions)
	for _, faction := range factions {
		fmt.Printf("avg_survivors_%s=%.1f\n", faction, avg(survivorTotals[faction], len(all)))
	}
}

func formatSurvivors(byFaction map[string]int) string {
	if len(byFaction) == 0 {
		return "none"
	}
	factions := make([]string, 0, len(byFaction))
	for faction := range byFaction {
		factions = append(factions, faction)
	}
	sort.Strings(factions)
	parts := make([]string, 0, len(factions))
	for _, faction := range factions {
		parts = append(parts, fmt.Sprintf("%s=%d", faction, byFaction[faction]))
	}
	return strings.Join(parts, " ")
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTurnString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}
