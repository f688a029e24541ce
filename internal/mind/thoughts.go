package mind

import "fmt"

const thoughtCapacity = 64

// Thought is one turn-stamped planning note for an actor.
type Thought struct {
	Turn    int
	Message string
}

func (t Thought) String() string {
	return fmt.Sprintf("[T=%03d] %s", t.Turn, t.Message)
}

// ThoughtLog is a fixed-capacity ring buffer of planning notes: goal pushes,
// failures, candidate picks. It exists purely for debugging and the batch
// report; nothing in the planner reads it back.
type ThoughtLog struct {
	entries []Thought
	head    int
	count   int
}

// NewThoughtLog creates an empty log.
func NewThoughtLog() *ThoughtLog {
	return &ThoughtLog{entries: make([]Thought, thoughtCapacity)}
}

// Add appends a note, evicting the oldest when full.
func (tl *ThoughtLog) Add(turn int, format string, args ...any) {
	tl.entries[tl.head] = Thought{Turn: turn, Message: fmt.Sprintf(format, args...)}
	tl.head = (tl.head + 1) % thoughtCapacity
	if tl.count < thoughtCapacity {
		tl.count++
	}
}

// Recent returns the retained notes oldest-first.
func (tl *ThoughtLog) Recent() []Thought {
	result := make([]Thought, tl.count)
	for i := 0; i < tl.count; i++ {
		idx := (tl.head - tl.count + i + thoughtCapacity) % thoughtCapacity
		result[i] = tl.entries[idx]
	}
	return result
}
