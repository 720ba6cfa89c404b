package sudoku

import (
	"fmt"

	"github.com/puzzleframe/arcon/pkg/arcon"
)

const size = 9

// Model builds a 9x9 sudoku network: a 1..9 variable per cell, a
// not-equal constraint for every pair of cells sharing a row, column,
// or box, and a unary pin per given.
//
// Givens is 81 characters in row-major order, digits for filled cells
// and '.' or '0' for blanks. The empty string means no givens.
func Model(givens string) (*arcon.CSP, [][]*arcon.Variable, error) {
	fixed, err := parseGivens(givens)
	if err != nil {
		return nil, nil, err
	}

	domain := make([]int, size)
	for i := range domain {
		domain[i] = i + 1
	}

	grid := make([][]*arcon.Variable, size)
	all := make([]*arcon.Variable, 0, size*size)
	for row := 0; row < size; row++ {
		grid[row] = make([]*arcon.Variable, size)
		for col := 0; col < size; col++ {
			v := arcon.NewVariable(fmt.Sprintf("R%dC%d", row+1, col+1), domain)
			grid[row][col] = v
			all = append(all, v)
		}
	}
	csp, err := arcon.NewCSP("sudoku", all...)
	if err != nil {
		return nil, nil, err
	}

	tuples := notEqualTuples()
	for a := 0; a < size*size; a++ {
		for b := a + 1; b < size*size; b++ {
			if !sameUnit(a, b) {
				continue
			}
			va, vb := all[a], all[b]
			con := arcon.NewConstraint(fmt.Sprintf("ne_%s_%s", va.Name(), vb.Name()), []*arcon.Variable{va, vb})
			if err := con.AddSatisfyingTuples(tuples); err != nil {
				return nil, nil, err
			}
			if err := csp.AddConstraint(con); err != nil {
				return nil, nil, err
			}
		}
	}

	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			d := fixed[row][col]
			if d == 0 {
				continue
			}
			v := grid[row][col]
			pin := arcon.NewConstraint(fmt.Sprintf("given_%s", v.Name()), []*arcon.Variable{v})
			if err := pin.AddSatisfyingTuples([][]int{{d}}); err != nil {
				return nil, nil, err
			}
			if err := csp.AddConstraint(pin); err != nil {
				return nil, nil, err
			}
		}
	}

	return csp, grid, nil
}

func parseGivens(givens string) ([][]int, error) {
	fixed := make([][]int, size)
	for row := range fixed {
		fixed[row] = make([]int, size)
	}
	if givens == "" {
		return fixed, nil
	}
	if len(givens) != size*size {
		return nil, fmt.Errorf("givens must be %d characters, got %d", size*size, len(givens))
	}
	for i, ch := range givens {
		switch {
		case ch >= '1' && ch <= '9':
			fixed[i/size][i%size] = int(ch - '0')
		case ch == '.' || ch == '0':
		default:
			return nil, fmt.Errorf("invalid given %q at position %d", ch, i)
		}
	}
	return fixed, nil
}

// sameUnit reports whether two flattened cell positions share a row,
// column, or box.
func sameUnit(a, b int) bool {
	rowA, colA := a/size, a%size
	rowB, colB := b/size, b%size
	if rowA == rowB || colA == colB {
		return true
	}
	return rowA/3 == rowB/3 && colA/3 == colB/3
}

func notEqualTuples() [][]int {
	tuples := make([][]int, 0, size*(size-1))
	for a := 1; a <= size; a++ {
		for b := 1; b <= size; b++ {
			if a != b {
				tuples = append(tuples, []int{a, b})
			}
		}
	}
	return tuples
}
