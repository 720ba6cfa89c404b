package sudoku_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/puzzleframe/arcon/cmd/sudoku"
	"github.com/puzzleframe/arcon/internal/config"
	"github.com/puzzleframe/arcon/pkg/arcon/search"
)

// classicGivens has a unique solution.
const classicGivens = "53..7....6..195....98....6.8...6...34..8.3..17...2...6.6....28....419..5....8..79"

var classicSolution = []string{
	"5 3 4 6 7 8 9 1 2",
	"6 7 2 1 9 5 3 4 8",
	"1 9 8 3 4 2 5 6 7",
	"8 5 9 7 6 1 4 2 3",
	"4 2 6 8 5 3 7 9 1",
	"7 1 3 9 2 4 8 5 6",
	"9 6 1 5 3 7 2 8 4",
	"2 8 7 4 1 9 6 3 5",
	"3 4 5 2 8 6 1 7 9",
}

func runSudoku(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := sudoku.NewSudokuCommand(config.Config{Propagator: "gac", Engine: "bt"})
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestModelShape(t *testing.T) {
	csp, grid, err := sudoku.Model("")
	require.NoError(t, err)

	require.Len(t, grid, 9)
	assert.Equal(t, "R1C1", grid[0][0].Name())
	assert.Equal(t, "R9C9", grid[8][8].Name())
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, grid[4][4].OriginalDomain())

	// 324 row pairs, 324 column pairs, and 162 box pairs not already
	// covered by a row or column.
	assert.Len(t, csp.Constraints(), 810)
}

func TestModelPinsGivens(t *testing.T) {
	csp, _, err := sudoku.Model(classicGivens)
	require.NoError(t, err)

	var pins int
	for _, con := range csp.Constraints() {
		if strings.HasPrefix(con.Name(), "given_") {
			pins++
			assert.Equal(t, 1, con.Arity())
		}
	}
	assert.Equal(t, 30, pins)
}

func TestModelRejectsBadGivens(t *testing.T) {
	_, _, err := sudoku.Model("123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "81 characters")

	_, _, err = sudoku.Model(strings.Repeat(".", 80) + "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid given 'x'`)
}

func TestCommandSolvesClassicPuzzle(t *testing.T) {
	out, err := runSudoku(t, classicGivens)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, classicSolution, lines)
}

func TestCommandClauseEngineAgrees(t *testing.T) {
	out, err := runSudoku(t, classicGivens, "--engine", "sat")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, classicSolution, lines)
}

func TestCommandFillsAnEmptyBoard(t *testing.T) {
	out, err := runSudoku(t)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 9)
	for _, line := range lines {
		digits := strings.Split(line, " ")
		require.Len(t, digits, 9)
		seen := map[string]bool{}
		for _, d := range digits {
			seen[d] = true
		}
		assert.Len(t, seen, 9, "row %q repeats a digit", line)
	}
}

func TestCommandConflictingGivens(t *testing.T) {
	givens := "55" + strings.Repeat(".", 79)

	_, err := runSudoku(t, givens)
	assert.ErrorIs(t, err, search.ErrNoSolution)
}
