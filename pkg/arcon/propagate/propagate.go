package propagate

import (
	"github.com/puzzleframe/arcon/pkg/arcon"
)

type BTPropagator struct{}

func (p *BTPropagator) String() string {
	return "bt"
}

// Propagate checks every fully instantiated constraint containing the
// newly assigned variable against the current assignment. It never
// prunes; the pre-search call with a nil variable is a no-op.
func (p *BTPropagator) Propagate(csp *arcon.CSP, newly *arcon.Variable) (bool, []arcon.Pruning) {
	if newly == nil {
		return true, nil
	}
	for _, c := range csp.ConstraintsWith(newly) {
		if c.UnassignedCount() != 0 {
			continue
		}
		scope := c.Scope()
		vals := make([]int, len(scope))
		for i, v := range scope {
			vals[i], _ = v.AssignedValue()
		}
		if !c.Check(vals) {
			return false, nil
		}
	}
	return true, nil
}

// BT returns a Propagator that only rejects dead ends already visible in
// the full assignment, leaving all pruning to the search itself.
func BT() arcon.Propagator {
	return &BTPropagator{}
}

type ForwardCheckingPropagator struct{}

func (p *ForwardCheckingPropagator) String() string {
	return "fc"
}

// Propagate runs the forward checking rule: for every constraint with
// exactly one unassigned variable left, values of that variable
// incompatible with the fixed rest of the scope are pruned. With a nil
// variable all constraints are considered, otherwise only those
// containing the newly assigned variable. A domain wipeout stops the
// call immediately, reporting the prunings made so far.
func (p *ForwardCheckingPropagator) Propagate(csp *arcon.CSP, newly *arcon.Variable) (bool, []arcon.Pruning) {
	constraints := csp.Constraints()
	if newly != nil {
		constraints = csp.ConstraintsWith(newly)
	}
	var pruned []arcon.Pruning
	for _, c := range constraints {
		if c.UnassignedCount() != 1 {
			continue
		}
		x := c.UnassignedVariables()[0]
		removed, ok := fcCheck(c, x)
		pruned = append(pruned, removed...)
		if !ok {
			return false, pruned
		}
	}
	return true, pruned
}

// fcCheck prunes the values of x that no completion of c's fixed scope
// can satisfy. It reports false on domain wipeout.
func fcCheck(c *arcon.Constraint, x *arcon.Variable) ([]arcon.Pruning, bool) {
	scope := c.Scope()
	vals := make([]int, len(scope))
	var pruned []arcon.Pruning
	for _, val := range x.CurrentDomain() {
		for i, v := range scope {
			if v == x {
				vals[i] = val
			} else {
				vals[i], _ = v.AssignedValue()
			}
		}
		if !c.Check(vals) && x.Prune(val) {
			pruned = append(pruned, arcon.Pruning{Variable: x, Value: val})
		}
		if x.CurrentDomainSize() == 0 {
			return pruned, false
		}
	}
	return pruned, true
}

// ForwardChecking returns a Propagator applying the forward checking
// rule after every assignment.
func ForwardChecking() arcon.Propagator {
	return &ForwardCheckingPropagator{}
}

type GACPropagator struct{}

func (p *GACPropagator) String() string {
	return "gac"
}

// Propagate enforces generalized arc consistency: every value left in
// any variable's current domain has a supporting tuple in every
// constraint containing that variable. Constraints are processed from a
// stack seeded with all constraints (nil variable) or the constraints
// containing the newly assigned variable; pruning a value pushes every
// constraint containing the pruned variable back on the stack. Domains
// only shrink and a constraint is pushed at most once until reprocessed,
// so the loop terminates. A domain wipeout stops the call immediately,
// reporting the prunings made across the whole call.
func (p *GACPropagator) Propagate(csp *arcon.CSP, newly *arcon.Variable) (bool, []arcon.Pruning) {
	seed := csp.Constraints()
	if newly != nil {
		seed = csp.ConstraintsWith(newly)
	}

	stack := make([]*arcon.Constraint, 0, len(seed))
	queued := make(map[*arcon.Constraint]struct{}, len(seed))
	push := func(c *arcon.Constraint) {
		if _, ok := queued[c]; ok {
			return
		}
		queued[c] = struct{}{}
		stack = append(stack, c)
	}
	for _, c := range seed {
		push(c)
	}

	var pruned []arcon.Pruning
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		delete(queued, c)

		for _, v := range c.Scope() {
			for _, d := range v.CurrentDomain() {
				if c.HasSupport(v, d) {
					continue
				}
				if !v.Prune(d) {
					continue
				}
				pruned = append(pruned, arcon.Pruning{Variable: v, Value: d})
				if v.CurrentDomainSize() == 0 {
					return false, pruned
				}
				for _, rc := range csp.ConstraintsWith(v) {
					push(rc)
				}
			}
		}
	}
	return true, pruned
}

// GAC returns a Propagator enforcing generalized arc consistency after
// every assignment.
func GAC() arcon.Propagator {
	return &GACPropagator{}
}
