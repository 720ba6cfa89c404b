package sat

import (
	"context"
	"fmt"
	"testing"

	"github.com/puzzleframe/arcon/pkg/arcon"
)

func benchLatin(b *testing.B, n int) *arcon.CSP {
	b.Helper()
	domain := make([]int, n)
	for i := range domain {
		domain[i] = i + 1
	}
	var tuples [][]int
	for _, x := range domain {
		for _, y := range domain {
			if x != y {
				tuples = append(tuples, []int{x, y})
			}
		}
	}
	cells := make([][]*arcon.Variable, n)
	csp, err := arcon.NewCSP("bench")
	if err != nil {
		b.Fatalf("failed to initialize csp: %s", err)
	}
	for r := range cells {
		cells[r] = make([]*arcon.Variable, n)
		for c := range cells[r] {
			cells[r][c] = arcon.NewVariable(fmt.Sprintf("c%d%d", r, c), domain)
			if err := csp.AddVariable(cells[r][c]); err != nil {
				b.Fatalf("failed to add variable: %s", err)
			}
		}
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := j + 1; k < n; k++ {
				row := arcon.NewConstraint(fmt.Sprintf("r%d_%d%d", i, j, k), []*arcon.Variable{cells[i][j], cells[i][k]})
				col := arcon.NewConstraint(fmt.Sprintf("c%d_%d%d", i, j, k), []*arcon.Variable{cells[j][i], cells[k][i]})
				for _, c := range []*arcon.Constraint{row, col} {
					if err := c.AddSatisfyingTuples(tuples); err != nil {
						b.Fatalf("failed to add tuples: %s", err)
					}
					if err := csp.AddConstraint(c); err != nil {
						b.Fatalf("failed to add constraint: %s", err)
					}
				}
			}
		}
	}
	return csp
}

func BenchmarkSolve(b *testing.B) {
	csp := benchLatin(b, 4)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s, err := New(csp)
		if err != nil {
			b.Fatalf("failed to initialize solver: %s", err)
		}
		if _, err := s.Solve(context.Background()); err != nil {
			b.Fatalf("failed to solve: %s", err)
		}
	}
}

func BenchmarkNewLitMapping(b *testing.B) {
	csp := benchLatin(b, 4)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = newLitMapping(csp)
	}
}
