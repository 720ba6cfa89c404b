package search

import (
	"github.com/puzzleframe/arcon/pkg/arcon"
)

// VariableOrdering picks the next unassigned variable to branch on, or
// nil once every variable is assigned.
type VariableOrdering func(csp *arcon.CSP) *arcon.Variable

// ValueOrdering returns the order in which a variable's current values
// are tried. The returned slice is the caller's to keep.
type ValueOrdering func(v *arcon.Variable) []int

// MinimumRemainingValues returns an ordering that branches on the
// unassigned variable with the smallest current domain, breaking ties
// in favor of the variable added to the CSP first.
func MinimumRemainingValues() VariableOrdering {
	return func(csp *arcon.CSP) *arcon.Variable {
		var best *arcon.Variable
		for _, v := range csp.UnassignedVariables() {
			if best == nil || v.CurrentDomainSize() < best.CurrentDomainSize() {
				best = v
			}
		}
		return best
	}
}

// InOrder returns an ordering that branches on unassigned variables in
// the order they were added to the CSP.
func InOrder() VariableOrdering {
	return func(csp *arcon.CSP) *arcon.Variable {
		unassigned := csp.UnassignedVariables()
		if len(unassigned) == 0 {
			return nil
		}
		return unassigned[0]
	}
}

// InDomainOrder returns a value ordering that tries values as they
// appear in the variable's current domain.
func InDomainOrder() ValueOrdering {
	return func(v *arcon.Variable) []int {
		return v.CurrentDomain()
	}
}
