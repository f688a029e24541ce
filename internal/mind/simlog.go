package mind

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded event during a headless simulation.
type SimLogEntry struct {
	Turn     int
	Actor    string  // actor name, or "--" for global events
	Category string  // goal, action, combat, item, turn
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] rat-1  goal    push    kill
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-8s %-8s %-14s %s",
		e.Turn, e.Actor, e.Category, e.Key, e.Value)
}

// SimLog collects structured events during a headless simulation. It is
// unbounded and machine-readable; scenario tests and the batch report assert
// against it rather than scraping stdout.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. With verbose on, per-turn position entries are
// also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records a new entry.
func (sl *SimLog) Add(turn int, actor, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Turn:     turn,
		Actor:    actor,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(turn int, actor, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(turn, actor, category, key, value, numVal)
}

// Entries returns all recorded entries in insertion order.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Filter returns entries matching category and key. Empty strings match
// everything.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterActor returns every entry recorded for one actor.
func (sl *SimLog) FilterActor(actor string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Actor == actor {
			out = append(out, e)
		}
	}
	return out
}

// Summary renders an end-of-run block: turn count, survivors, and per-actor
// event tallies.
func (sl *SimLog) Summary(turn int, actors []*Actor) string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== Summary after %d turns ===\n", turn)
	for _, a := range actors {
		status := "alive"
		if !a.Alive() {
			status = "dead"
		}
		goalChanges := 0
		actions := 0
		for _, e := range sl.FilterActor(a.Name) {
			switch e.Category {
			case "goal":
				goalChanges++
			case "action":
				actions++
			}
		}
		fmt.Fprintf(&b, "%-8s %-5s hp=%d/%d pos=%s goal-events=%d actions=%d stack=[%s]\n",
			a.Name, status, a.HP, a.MaxHP, a.Pos(), goalChanges, actions, a.Stack.String())
	}
	return b.String()
}
