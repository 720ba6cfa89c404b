package bestfirst

import (
	"container/heap"
	"context"
	"errors"
	"math"
)

// ErrExhausted is returned by Search when the open list runs out
// before a goal is reached.
var ErrExhausted = errors.New("search space exhausted")

// Strategy selects the open-list ordering.
type Strategy int

const (
	// AStar orders nodes by g+h.
	AStar Strategy = iota
	// BestFirst orders nodes by h alone.
	BestFirst
	// Custom orders nodes by the engine's fval function.
	Custom
)

// Bound prunes nodes whose path cost, heuristic estimate, or total
// estimate exceeds a limit. Limits compare strictly, so a node exactly
// on a limit survives.
type Bound struct {
	G float64
	H float64
	F float64
}

// Unbounded returns a Bound that prunes nothing.
func Unbounded() Bound {
	inf := math.Inf(1)
	return Bound{G: inf, H: inf, F: inf}
}

func (b Bound) exceeds(n *Node) bool {
	return n.G > b.G || n.H > b.H || n.G+n.H > b.F
}

// Stats counts the work done by an engine across its Search calls.
type Stats struct {
	Expanded  int
	Generated int
	Pruned    int
}

// Engine runs best-first search over a State space with full cycle
// checking. The open list persists between Search calls, so a caller
// can keep searching past a goal for further goals.
type Engine struct {
	strategy Strategy
	h        Heuristic
	fval     func(*Node) float64
	open     openList
	seen     map[string]float64
	seq      int
	stats    Stats
}

// Option configures an Engine.
type Option func(*Engine) error

// WithStrategy sets the open-list ordering.
func WithStrategy(s Strategy) Option {
	return func(e *Engine) error {
		if s < AStar || s > Custom {
			return errors.New("unknown strategy")
		}
		e.strategy = s
		return nil
	}
}

// WithHeuristic sets the heuristic function.
func WithHeuristic(h Heuristic) Option {
	return func(e *Engine) error {
		if h == nil {
			return errors.New("no heuristic provided")
		}
		e.h = h
		return nil
	}
}

// WithFval sets the node evaluation used by the Custom strategy. The
// function is consulted once per generated node, so it may read
// mutable driver state such as a decaying weight.
func WithFval(fval func(*Node) float64) Option {
	return func(e *Engine) error {
		if fval == nil {
			return errors.New("no fval function provided")
		}
		e.fval = fval
		return nil
	}
}

// New returns an engine ready to search from start. The default
// configuration is A* ordering with the Zero heuristic.
func New(start State, options ...Option) (*Engine, error) {
	if start == nil {
		return nil, errors.New("no start state provided")
	}
	e := &Engine{
		seen: map[string]float64{},
	}
	defaults := []Option{
		func(e *Engine) error {
			if e.h == nil {
				e.h = Zero
			}
			return nil
		},
	}
	for _, option := range append(options, defaults...) {
		if err := option(e); err != nil {
			return nil, err
		}
	}
	if e.strategy == Custom && e.fval == nil {
		return nil, errors.New("custom strategy needs an fval function")
	}
	e.seen[start.Hash()] = 0
	e.push(&Node{State: start, G: 0, H: e.h(start)})
	return e, nil
}

// Search pops nodes until it reaches a goal within bound, the open
// list empties, or ctx is done. A returned goal node stays unexpanded;
// calling Search again continues with the remaining open list.
func (e *Engine) Search(ctx context.Context, bound Bound) (*Node, error) {
	for e.open.Len() > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		n := heap.Pop(&e.open).(*openItem).node
		if bound.exceeds(n) {
			e.stats.Pruned++
			continue
		}
		if n.State.IsGoal() {
			return n, nil
		}
		e.stats.Expanded++
		for _, edge := range n.State.Successors() {
			g := n.G + edge.Cost
			hash := edge.State.Hash()
			if prev, ok := e.seen[hash]; ok && prev <= g {
				continue
			}
			e.seen[hash] = g
			e.push(&Node{State: edge.State, Parent: n, G: g, H: e.h(edge.State)})
		}
	}
	return nil, ErrExhausted
}

// Stats returns the engine's cumulative counters.
func (e *Engine) Stats() Stats {
	return e.stats
}

func (e *Engine) push(n *Node) {
	e.seq++
	heap.Push(&e.open, &openItem{node: n, priority: e.priority(n), seq: e.seq})
	e.stats.Generated++
}

func (e *Engine) priority(n *Node) float64 {
	switch e.strategy {
	case BestFirst:
		return n.H
	case Custom:
		return e.fval(n)
	default:
		return n.G + n.H
	}
}

type openItem struct {
	node     *Node
	priority float64
	seq      int
}

// openList is a min-heap on priority; insertion order breaks ties so
// searches are deterministic.
type openList []*openItem

func (l openList) Len() int { return len(l) }

func (l openList) Less(i, j int) bool {
	if l[i].priority != l[j].priority {
		return l[i].priority < l[j].priority
	}
	return l[i].seq < l[j].seq
}

func (l openList) Swap(i, j int) { l[i], l[j] = l[j], l[i] }

func (l *openList) Push(x interface{}) { *l = append(*l, x.(*openItem)) }

func (l *openList) Pop() interface{} {
	old := *l
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*l = old[:n-1]
	return item
}
