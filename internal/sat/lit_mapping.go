package sat

import (
	"fmt"

	"github.com/go-air/gini/inter"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"

	"github.com/puzzleframe/arcon/pkg/arcon"
)

// litMapping performs translation between a CSP and the variables that
// appear in the SAT formula: one literal per (variable, value) pair,
// true iff the variable takes the value. Every variable contributes an
// exactly-one cardinality over its current domain; every constraint a
// disjunction of selector literals, one per satisfying tuple still
// available under current domains.
type litMapping struct {
	vars    []*arcon.Variable
	lits    map[*arcon.Variable]map[int]z.Lit
	c       *logic.C
	asserts []z.Lit
	reasons map[z.Lit]string
	unsat   []string
}

func newLitMapping(csp *arcon.CSP) *litMapping {
	d := &litMapping{
		vars:    csp.Variables(),
		lits:    make(map[*arcon.Variable]map[int]z.Lit),
		c:       logic.NewC(),
		reasons: make(map[z.Lit]string),
	}

	for _, v := range d.vars {
		d.addVariable(v)
	}
	for _, con := range csp.Constraints() {
		d.addConstraint(con)
	}
	return d
}

func (d *litMapping) assert(m z.Lit, reason string) {
	d.asserts = append(d.asserts, m)
	d.reasons[m] = reason
}

func (d *litMapping) addVariable(v *arcon.Variable) {
	dom := v.CurrentDomain()
	byVal := make(map[int]z.Lit, len(dom))
	d.lits[v] = byVal
	if len(dom) == 0 {
		d.unsat = append(d.unsat, fmt.Sprintf("%s has an empty domain", v.Name()))
		return
	}

	ms := make([]z.Lit, len(dom))
	for i, val := range dom {
		m := d.c.Lit()
		byVal[val] = m
		ms[i] = m
	}

	atLeastOne := ms[0]
	for _, m := range ms[1:] {
		atLeastOne = d.c.Or(atLeastOne, m)
	}
	d.assert(atLeastOne, fmt.Sprintf("%s takes a value", v.Name()))
	if len(ms) > 1 {
		d.assert(d.c.CardSort(ms).Leq(1), fmt.Sprintf("%s takes at most one value", v.Name()))
	}
}

func (d *litMapping) addConstraint(con *arcon.Constraint) {
	scope := con.Scope()
	if len(scope) == 0 {
		return
	}

	var selectors []z.Lit
	for _, t := range con.SatisfyingTuples() {
		available := true
		var m z.Lit
		for i, val := range t {
			lit, ok := d.lits[scope[i]][val]
			if !ok {
				available = false
				break
			}
			if i == 0 {
				m = lit
			} else {
				m = d.c.And(m, lit)
			}
		}
		if available {
			selectors = append(selectors, m)
		}
	}
	if len(selectors) == 0 {
		d.unsat = append(d.unsat, fmt.Sprintf("%s has no satisfying tuples left", con))
		return
	}

	m := selectors[0]
	for _, sel := range selectors[1:] {
		m = d.c.Or(m, sel)
	}
	d.assert(m, con.String())
}

// TriviallyUnsatisfiable returns the reasons the formula cannot be
// satisfied regardless of the solver, or nil.
func (d *litMapping) TriviallyUnsatisfiable() []string {
	return d.unsat
}

// AddConstraints teaches the constraints encoded in the embedded
// circuit to the solver g.
func (d *litMapping) AddConstraints(g inter.Adder) {
	d.c.ToCnf(g)
}

// AssumeConstraints assumes every assertion recorded by the mapping.
func (d *litMapping) AssumeConstraints(g inter.Assumable) {
	g.Assume(d.asserts...)
}

// Conflicts maps the solver's failed assumptions back to the human
// readable reasons recorded when the formula was built.
func (d *litMapping) Conflicts(g inter.Assumable) []string {
	whys := g.Why(nil)
	reasons := make([]string, 0, len(whys))
	for _, why := range whys {
		if reason, ok := d.reasons[why]; ok {
			reasons = append(reasons, reason)
		}
	}
	return reasons
}

// Assignment decodes the solver's model back into a value per variable.
func (d *litMapping) Assignment(g inter.S) Assignment {
	out := make(Assignment, len(d.vars))
	for _, v := range d.vars {
		for val, m := range d.lits[v] {
			if g.Value(m) {
				out[v] = val
				break
			}
		}
	}
	return out
}
