package bestfirst

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// graph is a directed weighted test domain; states share it and carry
// only their node id.
type graph struct {
	edges map[string][]graphEdge
	goals map[string]struct{}
	h     map[string]float64
}

type graphEdge struct {
	to   string
	cost float64
}

type graphState struct {
	id string
	g  *graph
}

func (s *graphState) Successors() []Edge {
	var out []Edge
	for _, e := range s.g.edges[s.id] {
		out = append(out, Edge{State: &graphState{id: e.to, g: s.g}, Cost: e.cost})
	}
	return out
}

func (s *graphState) Hash() string { return s.id }

func (s *graphState) IsGoal() bool {
	_, ok := s.g.goals[s.id]
	return ok
}

func (g *graph) start(id string) *graphState {
	return &graphState{id: id, g: g}
}

func (g *graph) heuristic() Heuristic {
	return func(s State) float64 {
		return g.h[s.(*graphState).id]
	}
}

func pathIDs(n *Node) []string {
	var ids []string
	for _, s := range n.Path() {
		ids = append(ids, s.(*graphState).id)
	}
	return ids
}

// detourGraph rewards planning ahead: the cheap first step leads to an
// expensive goal edge. Heuristic values never overestimate.
func detourGraph() *graph {
	return &graph{
		edges: map[string][]graphEdge{
			"S": {{to: "A", cost: 1}, {to: "B", cost: 4}},
			"A": {{to: "G", cost: 5}},
			"B": {{to: "G", cost: 1}},
		},
		goals: map[string]struct{}{"G": {}},
		h:     map[string]float64{"S": 5, "A": 5, "B": 1, "G": 0},
	}
}

// lureGraph carries a misleading heuristic that pulls greedy search
// down the expensive branch.
func lureGraph() *graph {
	return &graph{
		edges: map[string][]graphEdge{
			"S": {{to: "A", cost: 1}, {to: "B", cost: 4}},
			"A": {{to: "G", cost: 5}},
			"B": {{to: "G", cost: 1}},
		},
		goals: map[string]struct{}{"G": {}},
		h:     map[string]float64{"S": 0.1, "A": 0.1, "B": 2, "G": 0},
	}
}

// twoGoalGraph puts an expensive goal close to the heuristic and a
// cheap goal behind an extra step.
func twoGoalGraph() *graph {
	return &graph{
		edges: map[string][]graphEdge{
			"S": {{to: "X", cost: 10}, {to: "Y", cost: 1}},
			"Y": {{to: "Z", cost: 1}},
		},
		goals: map[string]struct{}{"X": {}, "Z": {}},
		h:     map[string]float64{"S": 0.5, "X": 0, "Y": 5, "Z": 0},
	}
}

func TestAStarFindsCheapestPath(t *testing.T) {
	g := detourGraph()
	e, err := New(g.start("S"), WithHeuristic(g.heuristic()))
	require.NoError(t, err)

	goal, err := e.Search(context.Background(), Unbounded())
	require.NoError(t, err)
	assert.Equal(t, 5.0, goal.G)
	assert.Equal(t, []string{"S", "B", "G"}, pathIDs(goal))
}

func TestBestFirstFollowsHeuristic(t *testing.T) {
	g := lureGraph()
	e, err := New(g.start("S"), WithHeuristic(g.heuristic()), WithStrategy(BestFirst))
	require.NoError(t, err)

	goal, err := e.Search(context.Background(), Unbounded())
	require.NoError(t, err)
	assert.Equal(t, 6.0, goal.G)
	assert.Equal(t, []string{"S", "A", "G"}, pathIDs(goal))
}

func TestCustomStrategyOrdersByFval(t *testing.T) {
	// g-only ordering turns the misleading heuristic into uniform cost
	// search, which still finds the cheap path.
	g := lureGraph()
	e, err := New(g.start("S"),
		WithHeuristic(g.heuristic()),
		WithStrategy(Custom),
		WithFval(func(n *Node) float64 { return n.G }),
	)
	require.NoError(t, err)

	goal, err := e.Search(context.Background(), Unbounded())
	require.NoError(t, err)
	assert.Equal(t, 5.0, goal.G)
	assert.Equal(t, []string{"S", "B", "G"}, pathIDs(goal))
}

func TestDefaultEngineRunsUniformCost(t *testing.T) {
	g := detourGraph()
	e, err := New(g.start("S"))
	require.NoError(t, err)

	goal, err := e.Search(context.Background(), Unbounded())
	require.NoError(t, err)
	assert.Equal(t, 5.0, goal.G)
}

func TestSearchExhausted(t *testing.T) {
	g := detourGraph()
	g.goals = map[string]struct{}{}
	e, err := New(g.start("S"), WithHeuristic(g.heuristic()))
	require.NoError(t, err)

	goal, err := e.Search(context.Background(), Unbounded())
	assert.ErrorIs(t, err, ErrExhausted)
	assert.Nil(t, goal)
}

func TestSearchBounds(t *testing.T) {
	type tc struct {
		Name  string
		Bound Bound
		WantG float64
		Fails bool
	}
	testCases := []tc{
		{Name: "TotalBelowGoal", Bound: func() Bound { b := Unbounded(); b.F = 4; return b }(), Fails: true},
		{Name: "TotalOnGoal", Bound: func() Bound { b := Unbounded(); b.F = 5; return b }(), WantG: 5},
		{Name: "PathCost", Bound: func() Bound { b := Unbounded(); b.G = 0.5; return b }(), Fails: true},
		{Name: "Heuristic", Bound: func() Bound { b := Unbounded(); b.H = 0.5; return b }(), Fails: true},
		{Name: "Unbounded", Bound: Unbounded(), WantG: 5},
	}
	for _, tt := range testCases {
		t.Run(tt.Name, func(t *testing.T) {
			g := detourGraph()
			e, err := New(g.start("S"), WithHeuristic(g.heuristic()))
			require.NoError(t, err)

			goal, err := e.Search(context.Background(), tt.Bound)
			if tt.Fails {
				assert.ErrorIs(t, err, ErrExhausted)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.WantG, goal.G)
		})
	}
}

func TestSearchResumesPastGoal(t *testing.T) {
	g := twoGoalGraph()
	e, err := New(g.start("S"))
	require.NoError(t, err)
	ctx := context.Background()

	first, err := e.Search(ctx, Unbounded())
	require.NoError(t, err)
	assert.Equal(t, 2.0, first.G)
	assert.Equal(t, []string{"S", "Y", "Z"}, pathIDs(first))

	second, err := e.Search(ctx, Unbounded())
	require.NoError(t, err)
	assert.Equal(t, 10.0, second.G)
	assert.Equal(t, []string{"S", "X"}, pathIDs(second))

	_, err = e.Search(ctx, Unbounded())
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestSearchCancelled(t *testing.T) {
	g := detourGraph()
	e, err := New(g.start("S"), WithHeuristic(g.heuristic()))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.Search(ctx, Unbounded())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSearchTerminatesOnCycles(t *testing.T) {
	g := &graph{
		edges: map[string][]graphEdge{
			"S": {{to: "A", cost: 1}},
			"A": {{to: "S", cost: 1}, {to: "G", cost: 1}},
		},
		goals: map[string]struct{}{"G": {}},
	}
	e, err := New(g.start("S"))
	require.NoError(t, err)

	goal, err := e.Search(context.Background(), Unbounded())
	require.NoError(t, err)
	assert.Equal(t, 2.0, goal.G)
	assert.Equal(t, []string{"S", "A", "G"}, pathIDs(goal))
}

func TestStatsCountWork(t *testing.T) {
	g := detourGraph()
	e, err := New(g.start("S"), WithHeuristic(g.heuristic()))
	require.NoError(t, err)

	_, err = e.Search(context.Background(), Unbounded())
	require.NoError(t, err)
	assert.Equal(t, Stats{Expanded: 2, Generated: 4, Pruned: 0}, e.Stats())
}

func TestGoalAtStart(t *testing.T) {
	g := detourGraph()
	g.goals["S"] = struct{}{}
	e, err := New(g.start("S"), WithHeuristic(g.heuristic()))
	require.NoError(t, err)

	goal, err := e.Search(context.Background(), Unbounded())
	require.NoError(t, err)
	assert.Equal(t, 0.0, goal.G)
	assert.Equal(t, []string{"S"}, pathIDs(goal))
}

func TestNewValidation(t *testing.T) {
	g := detourGraph()
	type tc struct {
		Name    string
		Start   State
		Options []Option
	}
	testCases := []tc{
		{Name: "NilStart", Start: nil},
		{Name: "NilHeuristic", Start: g.start("S"), Options: []Option{WithHeuristic(nil)}},
		{Name: "NilFval", Start: g.start("S"), Options: []Option{WithFval(nil)}},
		{Name: "UnknownStrategy", Start: g.start("S"), Options: []Option{WithStrategy(Strategy(42))}},
		{Name: "CustomWithoutFval", Start: g.start("S"), Options: []Option{WithStrategy(Custom)}},
	}
	for _, tt := range testCases {
		t.Run(tt.Name, func(t *testing.T) {
			_, err := New(tt.Start, tt.Options...)
			assert.Error(t, err)
		})
	}
}
