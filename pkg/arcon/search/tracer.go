package search

import (
	"fmt"
	"io"
	"strings"

	"github.com/puzzleframe/arcon/pkg/arcon"
)

type EventKind string

const (
	EventAssign    EventKind = "assign"
	EventPrune     EventKind = "prune"
	EventDeadEnd   EventKind = "dead-end"
	EventBacktrack EventKind = "backtrack"
	EventSolution  EventKind = "solution"
)

// Event describes one step of the backtracking search. Depth is the
// number of assignments on the current path; the pre-search propagation
// call reports depth zero.
type Event struct {
	Depth    int
	Kind     EventKind
	Variable *arcon.Variable
	Value    int
	Pruned   []arcon.Pruning
}

type Tracer interface {
	Trace(e Event)
}

type DefaultTracer struct{}

func (DefaultTracer) Trace(_ Event) {
}

type LoggingTracer struct {
	Writer io.Writer
}

func (t LoggingTracer) Trace(e Event) {
	indent := strings.Repeat("  ", e.Depth)
	switch e.Kind {
	case EventAssign:
		fmt.Fprintf(t.Writer, "%s%s = %d\n", indent, e.Variable.Name(), e.Value)
	case EventPrune:
		fmt.Fprintf(t.Writer, "%spruned %v\n", indent, e.Pruned)
	case EventDeadEnd:
		fmt.Fprintf(t.Writer, "%sdead end at %s = %d\n", indent, e.Variable.Name(), e.Value)
	case EventBacktrack:
		fmt.Fprintf(t.Writer, "%sbacktrack from %s\n", indent, e.Variable.Name())
	case EventSolution:
		fmt.Fprintf(t.Writer, "%ssolution found\n", indent)
	}
}
