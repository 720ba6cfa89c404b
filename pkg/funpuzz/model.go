package funpuzz

import (
	"fmt"

	"github.com/puzzleframe/arcon/pkg/arcon"
)

// BinaryGrid compiles the row and column rules of b into a csp with
// one variable per cell over 1..n and a binary not-equal constraint
// for every pair of cells sharing a row or column. Cages are ignored.
// The returned grid is indexed [row][col], 0-based.
func BinaryGrid(b *Board) (*arcon.CSP, [][]*arcon.Variable, error) {
	return binaryGrid("binary", b)
}

// AllDiffGrid compiles the row and column rules of b using one n-ary
// constraint per row and per column whose satisfying tuples are the
// permutations of 1..n. Cages are ignored.
func AllDiffGrid(b *Board) (*arcon.CSP, [][]*arcon.Variable, error) {
	cells, vars := gridVariables(b.Size)
	csp, err := arcon.NewCSP("alldiff", vars...)
	if err != nil {
		return nil, nil, err
	}
	tuples := permutationTuples(b.Size)
	for i := 0; i < b.Size; i++ {
		colVars := make([]*arcon.Variable, b.Size)
		for r := 0; r < b.Size; r++ {
			colVars[r] = cells[r][i]
		}
		row := arcon.NewConstraint(fmt.Sprintf("row%d", i+1), cells[i])
		col := arcon.NewConstraint(fmt.Sprintf("col%d", i+1), colVars)
		for _, con := range []*arcon.Constraint{row, col} {
			if err := con.AddSatisfyingTuples(tuples); err != nil {
				return nil, nil, err
			}
			if err := csp.AddConstraint(con); err != nil {
				return nil, nil, err
			}
		}
	}
	return csp, cells, nil
}

// CagedModel compiles the full puzzle: the binary grid rules plus one
// constraint per cage. A single-cell cage becomes a unary constraint
// pinning the cell to its target.
func CagedModel(b *Board) (*arcon.CSP, [][]*arcon.Variable, error) {
	csp, cells, err := binaryGrid("caged", b)
	if err != nil {
		return nil, nil, err
	}
	domain := gridDomain(b.Size)
	for i, cage := range b.Cages {
		con, err := cageConstraint(fmt.Sprintf("cage%d", i+1), cage, cells, domain)
		if err != nil {
			return nil, nil, fmt.Errorf("cage %d: %w", i+1, err)
		}
		if err := csp.AddConstraint(con); err != nil {
			return nil, nil, err
		}
	}
	return csp, cells, nil
}

func binaryGrid(name string, b *Board) (*arcon.CSP, [][]*arcon.Variable, error) {
	cells, vars := gridVariables(b.Size)
	csp, err := arcon.NewCSP(name, vars...)
	if err != nil {
		return nil, nil, err
	}
	tuples := notEqualTuples(b.Size)
	for i := 0; i < b.Size; i++ {
		for j := 0; j < b.Size; j++ {
			for k := j + 1; k < b.Size; k++ {
				row := arcon.NewConstraint(
					fmt.Sprintf("row%d_%d%d", i+1, j+1, k+1),
					[]*arcon.Variable{cells[i][j], cells[i][k]},
				)
				col := arcon.NewConstraint(
					fmt.Sprintf("col%d_%d%d", i+1, j+1, k+1),
					[]*arcon.Variable{cells[j][i], cells[k][i]},
				)
				for _, con := range []*arcon.Constraint{row, col} {
					if err := con.AddSatisfyingTuples(tuples); err != nil {
						return nil, nil, err
					}
					if err := csp.AddConstraint(con); err != nil {
						return nil, nil, err
					}
				}
			}
		}
	}
	return csp, cells, nil
}

func cageConstraint(name string, cage Cage, cells [][]*arcon.Variable, domain []int) (*arcon.Constraint, error) {
	scope := make([]*arcon.Variable, len(cage.Cells))
	for i, cell := range cage.Cells {
		scope[i] = cells[cell.Row-1][cell.Col-1]
	}
	con := arcon.NewConstraint(name, scope)
	var tuples [][]int
	if cage.Op == OpNone {
		tuples = [][]int{{cage.Target}}
	} else {
		tuples = cageTuples(domain, len(scope), cage.Target, cage.Op)
	}
	if err := con.AddSatisfyingTuples(tuples); err != nil {
		return nil, err
	}
	return con, nil
}

// gridVariables builds the n x n cell variables V11..Vnn over 1..n and
// returns them both as a grid and flattened in row-major order.
func gridVariables(n int) ([][]*arcon.Variable, []*arcon.Variable) {
	domain := gridDomain(n)
	cells := make([][]*arcon.Variable, n)
	flat := make([]*arcon.Variable, 0, n*n)
	for r := range cells {
		cells[r] = make([]*arcon.Variable, n)
		for c := range cells[r] {
			v := arcon.NewVariable(fmt.Sprintf("V%d%d", r+1, c+1), domain)
			cells[r][c] = v
			flat = append(flat, v)
		}
	}
	return cells, flat
}

func gridDomain(n int) []int {
	domain := make([]int, n)
	for i := range domain {
		domain[i] = i + 1
	}
	return domain
}

func notEqualTuples(n int) [][]int {
	tuples := make([][]int, 0, n*(n-1))
	for a := 1; a <= n; a++ {
		for b := 1; b <= n; b++ {
			if a != b {
				tuples = append(tuples, []int{a, b})
			}
		}
	}
	return tuples
}

func permutationTuples(n int) [][]int {
	return permutations(gridDomain(n))
}
