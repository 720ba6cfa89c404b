package bestfirst

import "context"

// decayFactor shrinks the weight between anytime weighted A* rounds.
const decayFactor = 0.6

// WeightedAStar runs a single weighted A* search ordering nodes by
// g + weight*h.
func WeightedAStar(ctx context.Context, start State, h Heuristic, weight float64) (*Node, error) {
	e, err := New(start,
		WithHeuristic(h),
		WithStrategy(Custom),
		WithFval(func(n *Node) float64 { return n.G + weight*n.H }),
	)
	if err != nil {
		return nil, err
	}
	return e.Search(ctx, Unbounded())
}

// IterativeWeightedAStar runs anytime weighted A*: it keeps searching
// past each goal with the total-estimate bound tightened to the best
// goal's g+h and the weight decayed, until the space is exhausted or
// ctx is done. The best goal found is returned; deadlines on ctx bound
// the run time.
func IterativeWeightedAStar(ctx context.Context, start State, h Heuristic, weight float64) (*Node, error) {
	w := weight
	e, err := New(start,
		WithHeuristic(h),
		WithStrategy(Custom),
		WithFval(func(n *Node) float64 { return n.G + w*n.H }),
	)
	if err != nil {
		return nil, err
	}
	bound := Unbounded()
	var best *Node
	for {
		goal, err := e.Search(ctx, bound)
		if err != nil {
			if best != nil {
				return best, nil
			}
			return nil, err
		}
		if best == nil || goal.F() < best.F() {
			best = goal
			bound.F = goal.F()
		}
		w *= decayFactor
	}
}

// IterativeGBFS runs anytime greedy best-first search: after each goal
// the path-cost bound tightens to the best goal's g and the search
// continues, so later goals can only be cheaper. The best goal found
// is returned; deadlines on ctx bound the run time.
func IterativeGBFS(ctx context.Context, start State, h Heuristic) (*Node, error) {
	e, err := New(start, WithHeuristic(h), WithStrategy(BestFirst))
	if err != nil {
		return nil, err
	}
	bound := Unbounded()
	var best *Node
	for {
		goal, err := e.Search(ctx, bound)
		if err != nil {
			if best != nil {
				return best, nil
			}
			return nil, err
		}
		if best == nil || goal.G < best.G {
			best = goal
			bound.G = goal.G
		}
	}
}
