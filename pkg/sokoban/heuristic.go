package sokoban

import (
	"math"

	"github.com/puzzleframe/arcon/internal/cache"
	"github.com/puzzleframe/arcon/pkg/bestfirst"
)

// ManhattanDistance sums each box's distance to its nearest storage
// cell, ignoring obstacles. It never overestimates the pushes needed.
// The state must be a sokoban State.
func ManhattanDistance(state bestfirst.State) float64 {
	s := state.(*State)
	total := 0.0
	for box := range s.boxes {
		best := math.Inf(1)
		for store := range s.storage {
			if d := manhattan(box, store); d < best {
				best = d
			}
		}
		if !math.IsInf(best, 1) {
			total += best
		}
	}
	return total
}

// NewAlternate returns a deadlock-aware heuristic with its own memo
// table. Each search session takes a fresh instance, so repeated or
// concurrent runs never share entries.
func NewAlternate() bestfirst.Heuristic {
	memo := cache.NewMapCache[float64]()
	return func(state bestfirst.State) float64 {
		s := state.(*State)
		key := cache.Key(s.Hash())
		if v, ok := memo.Get(key); ok {
			return v
		}
		v := alternate(s)
		memo.Set(key, v)
		return v
	}
}

// alternate scores a state as greedy robot-to-box distances plus each
// unstored box's distance to the nearest free storage. Dead states
// score +Inf. Robots beyond the box count contribute nothing.
func alternate(s *State) float64 {
	if deadlocked(s) {
		return math.Inf(1)
	}
	total := 0.0

	remaining := s.Boxes()
	for _, robot := range s.robots {
		best := math.Inf(1)
		pick := -1
		for i, box := range remaining {
			if d := manhattan(robot, box); d < best {
				best = d
				pick = i
			}
		}
		if pick < 0 {
			continue
		}
		remaining = append(remaining[:pick], remaining[pick+1:]...)
		total += best
	}

	free := s.freeStorage()
	for box := range s.boxes {
		if _, stored := s.storage[box]; stored {
			continue
		}
		best := math.Inf(1)
		for store := range free {
			if d := manhattan(box, store); d < best {
				best = d
			}
		}
		// no free storage left for an unstored box keeps this +Inf
		total += best
	}
	return total
}

func manhattan(a, b Point) float64 {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return float64(dx + dy)
}
