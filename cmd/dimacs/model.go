package dimacs

import (
	"fmt"

	"github.com/puzzleframe/arcon/pkg/arcon"
)

// Model builds a boolean network for the problem: one 0/1 variable per
// DIMACS variable, one support-table constraint per clause.
func Model(p *Problem) (*arcon.CSP, []*arcon.Variable, error) {
	variables := make([]*arcon.Variable, p.variables)
	for i := range variables {
		variables[i] = arcon.NewVariable(fmt.Sprintf("x%d", i+1), []int{0, 1})
	}
	csp, err := arcon.NewCSP("dimacs", variables...)
	if err != nil {
		return nil, nil, err
	}
	for i, clause := range p.clauses {
		con, err := clauseConstraint(fmt.Sprintf("clause%d", i+1), clause, variables)
		if err != nil {
			return nil, nil, err
		}
		if err := csp.AddConstraint(con); err != nil {
			return nil, nil, err
		}
	}
	return csp, variables, nil
}

// clauseConstraint builds a constraint over the clause's distinct
// variables whose table holds every assignment satisfying at least one
// literal.
func clauseConstraint(name string, clause []int, variables []*arcon.Variable) (*arcon.Constraint, error) {
	index := map[int]int{}
	var scope []*arcon.Variable
	for _, lit := range clause {
		v := lit
		if v < 0 {
			v = -v
		}
		if _, ok := index[v]; !ok {
			index[v] = len(scope)
			scope = append(scope, variables[v-1])
		}
	}

	con := arcon.NewConstraint(name, scope)
	if err := con.AddSatisfyingTuples(satisfyingTuples(clause, index, len(scope))); err != nil {
		return nil, err
	}
	return con, nil
}

func satisfyingTuples(clause []int, index map[int]int, width int) [][]int {
	var tuples [][]int
	assignment := make([]int, width)
	var walk func(pos int)
	walk = func(pos int) {
		if pos == width {
			if clauseSatisfied(clause, index, assignment) {
				tuples = append(tuples, append([]int(nil), assignment...))
			}
			return
		}
		for _, val := range []int{0, 1} {
			assignment[pos] = val
			walk(pos + 1)
		}
	}
	walk(0)
	return tuples
}

func clauseSatisfied(clause []int, index map[int]int, assignment []int) bool {
	for _, lit := range clause {
		v := lit
		if v < 0 {
			v = -v
		}
		val := assignment[index[v]]
		if (lit > 0 && val == 1) || (lit < 0 && val == 0) {
			return true
		}
	}
	return false
}
