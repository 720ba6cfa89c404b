package root

import (
	"github.com/spf13/cobra"

	"github.com/puzzleframe/arcon/cmd/dimacs"

	"github.com/puzzleframe/arcon/cmd/funpuzz"

	"github.com/puzzleframe/arcon/cmd/othello"

	"github.com/puzzleframe/arcon/cmd/sokoban"

	"github.com/puzzleframe/arcon/cmd/sudoku"

	"github.com/puzzleframe/arcon/internal/config"
)

func NewRootCmd(cfg config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "arcon",
		Short: "Arcon is a constraint-propagation and search toolkit",
		Long: `A finite-domain constraint-propagation and heuristic-search toolkit
written in Go. Solver defaults come from ARCON_* environment variables;
flags override them per invocation.`,
	}

	// add sub-commands
	rootCmd.AddCommand(dimacs.NewDimacsCommand(cfg))
	rootCmd.AddCommand(funpuzz.NewFunpuzzCommand(cfg))
	rootCmd.AddCommand(sokoban.NewSokobanCommand(cfg))
	rootCmd.AddCommand(sudoku.NewSudokuCommand(cfg))
	rootCmd.AddCommand(othello.NewOthelloCommand(cfg))

	return rootCmd
}
