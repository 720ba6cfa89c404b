package bestfirst

// State is a problem state the engine can expand. Successor costs must
// be non-negative, and Hash must be stable and unique per state.
type State interface {
	Successors() []Edge
	Hash() string
	IsGoal() bool
}

// Edge is a transition to a successor state.
type Edge struct {
	State State
	Cost  float64
}

// Heuristic estimates the remaining cost from a state to a goal.
type Heuristic func(State) float64

// Zero makes the engine ignore the remaining cost, turning a g+h
// ordering into uniform cost search.
func Zero(State) float64 {
	return 0
}

// Node is a search node on a path from the start state.
type Node struct {
	State  State
	Parent *Node
	G      float64
	H      float64
}

// F returns the node's total cost estimate g+h.
func (n *Node) F() float64 {
	return n.G + n.H
}

// Path returns the states from the start state to n in order.
func (n *Node) Path() []State {
	var states []State
	for cur := n; cur != nil; cur = cur.Parent {
		states = append(states, cur.State)
	}
	for i, j := 0, len(states)-1; i < j; i, j = i+1, j-1 {
		states[i], states[j] = states[j], states[i]
	}
	return states
}
