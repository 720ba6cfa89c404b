package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/puzzleframe/arcon/pkg/arcon"
	"github.com/puzzleframe/arcon/pkg/arcon/propagate"
)

// ErrNoSolution is returned by Solve when the search tree is exhausted
// without finding a complete consistent assignment.
var ErrNoSolution = errors.New("no solution found")

// Solution maps every variable of a solved CSP to its value.
type Solution map[*arcon.Variable]int

// Value returns the value assigned to v in the solution.
func (s Solution) Value(v *arcon.Variable) (int, bool) {
	val, ok := s[v]
	return val, ok
}

// Stats counts the work done by a single Solve call.
type Stats struct {
	// Decisions is the number of assignments tried.
	Decisions int
	// Prunings is the total number of values removed by propagation.
	Prunings int
	// DeadEnds is the number of assignments rejected by propagation.
	DeadEnds int
}

type Solver interface {
	Solve(ctx context.Context) (Solution, error)
	Stats() Stats
}

type solver struct {
	csp        *arcon.CSP
	propagator arcon.Propagator
	varOrder   VariableOrdering
	valOrder   ValueOrdering
	tracer     Tracer
	stats      Stats
}

// New returns a depth-first backtracking Solver over csp. By default it
// propagates with GAC, branches on the variable with the fewest
// remaining values and tries values in domain order.
func New(csp *arcon.CSP, options ...Option) (Solver, error) {
	if csp == nil {
		return nil, errors.New("no csp provided")
	}
	s := solver{csp: csp}
	for _, option := range append(options, defaults...) {
		if err := option(&s); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

type Option func(s *solver) error

func WithPropagator(p arcon.Propagator) Option {
	return func(s *solver) error {
		if p == nil {
			return errors.New("no propagator provided")
		}
		s.propagator = p
		return nil
	}
}

func WithVariableOrdering(o VariableOrdering) Option {
	return func(s *solver) error {
		if o == nil {
			return errors.New("no variable ordering provided")
		}
		s.varOrder = o
		return nil
	}
}

func WithValueOrdering(o ValueOrdering) Option {
	return func(s *solver) error {
		if o == nil {
			return errors.New("no value ordering provided")
		}
		s.valOrder = o
		return nil
	}
}

func WithTracer(t Tracer) Option {
	return func(s *solver) error {
		if t == nil {
			return errors.New("no tracer provided")
		}
		s.tracer = t
		return nil
	}
}

var defaults = []Option{
	func(s *solver) error {
		if s.propagator == nil {
			s.propagator = propagate.GAC()
		}
		return nil
	},
	func(s *solver) error {
		if s.varOrder == nil {
			s.varOrder = MinimumRemainingValues()
		}
		return nil
	},
	func(s *solver) error {
		if s.valOrder == nil {
			s.valOrder = InDomainOrder()
		}
		return nil
	},
	func(s *solver) error {
		if s.tracer == nil {
			s.tracer = DefaultTracer{}
		}
		return nil
	},
}

// Solve restores every variable's full domain, runs the propagator's
// pre-search call and then searches depth first, propagating after
// every assignment and undoing the reported prunings on backtrack.
// Variables assigned before the call keep their assignments and are not
// branched on. On success the CSP is left in the solved state; on
// failure or cancellation all prunings and assignments made by the
// search are undone.
func (s *solver) Solve(ctx context.Context) (Solution, error) {
	s.stats = Stats{}
	for _, v := range s.csp.Variables() {
		v.RestoreAll()
	}

	ok, pruned := s.propagator.Propagate(s.csp, nil)
	s.stats.Prunings += len(pruned)
	if len(pruned) > 0 {
		s.tracer.Trace(Event{Kind: EventPrune, Pruned: pruned})
	}
	if !ok {
		s.stats.DeadEnds++
		undo(pruned)
		return nil, fmt.Errorf("contradiction before search: %w", ErrNoSolution)
	}

	found, err := s.recurse(ctx, 1)
	if err != nil || !found {
		undo(pruned)
		if err != nil {
			return nil, err
		}
		return nil, ErrNoSolution
	}

	solution := make(Solution, len(s.csp.Variables()))
	for _, v := range s.csp.Variables() {
		val, assigned := v.AssignedValue()
		if !assigned {
			return nil, fmt.Errorf("variable %q left unassigned by ordering", v.Name())
		}
		solution[v] = val
	}
	s.tracer.Trace(Event{Kind: EventSolution})
	return solution, nil
}

func (s *solver) Stats() Stats {
	return s.stats
}

func (s *solver) recurse(ctx context.Context, depth int) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
	}

	v := s.varOrder(s.csp)
	if v == nil {
		return true, nil
	}

	for _, val := range s.valOrder(v) {
		if err := v.Assign(val); err != nil {
			return false, err
		}
		s.stats.Decisions++
		s.tracer.Trace(Event{Depth: depth, Kind: EventAssign, Variable: v, Value: val})

		ok, pruned := s.propagator.Propagate(s.csp, v)
		s.stats.Prunings += len(pruned)
		if len(pruned) > 0 {
			s.tracer.Trace(Event{Depth: depth, Kind: EventPrune, Variable: v, Value: val, Pruned: pruned})
		}

		if ok {
			found, err := s.recurse(ctx, depth+1)
			if err != nil {
				undo(pruned)
				_ = v.Unassign()
				return false, err
			}
			if found {
				return true, nil
			}
		} else {
			s.stats.DeadEnds++
			s.tracer.Trace(Event{Depth: depth, Kind: EventDeadEnd, Variable: v, Value: val})
		}

		undo(pruned)
		if err := v.Unassign(); err != nil {
			return false, err
		}
	}

	s.tracer.Trace(Event{Depth: depth, Kind: EventBacktrack, Variable: v})
	return false, nil
}

// undo restores prunings in reverse report order.
func undo(pruned []arcon.Pruning) {
	for i := len(pruned) - 1; i >= 0; i-- {
		pruned[i].Variable.Restore(pruned[i].Value)
	}
}
