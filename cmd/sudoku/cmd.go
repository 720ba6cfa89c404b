package sudoku

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/puzzleframe/arcon/internal/config"
	"github.com/puzzleframe/arcon/internal/sat"
	"github.com/puzzleframe/arcon/pkg/arcon"
	"github.com/puzzleframe/arcon/pkg/arcon/propagate"
	"github.com/puzzleframe/arcon/pkg/arcon/search"
)

type solveOptions struct {
	propagator string
	engine     string
	trace      bool
}

func NewSudokuCommand(cfg config.Config) *cobra.Command {
	opts := solveOptions{}
	cmd := &cobra.Command{
		Use:   "sudoku [givens]",
		Short: "Returns a solved sudoku board",
		Long: `Returns a solved sudoku board. The optional argument pins givens: 81
characters in row-major order, digits for filled cells and '.' or '0'
for blanks.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			givens := ""
			if len(args) == 1 {
				givens = args[0]
			}
			return opts.run(cmd, givens)
		},
	}
	cmd.Flags().StringVar(&opts.propagator, "propagator", cfg.Propagator, "propagator: bt, fc, or gac")
	cmd.Flags().StringVar(&opts.engine, "engine", cfg.Engine, "solving engine: bt or sat")
	cmd.Flags().BoolVar(&opts.trace, "trace", cfg.Trace, "print search events to stderr")
	return cmd
}

func (o solveOptions) run(cmd *cobra.Command, givens string) error {
	csp, grid, err := Model(givens)
	if err != nil {
		return err
	}

	switch o.engine {
	case "bt":
		return o.solveBacktracking(cmd, csp, grid)
	case "sat":
		return solveClauses(cmd.Context(), cmd.OutOrStdout(), csp, grid)
	default:
		return fmt.Errorf("unknown engine %q", o.engine)
	}
}

func (o solveOptions) solveBacktracking(cmd *cobra.Command, csp *arcon.CSP, grid [][]*arcon.Variable) error {
	propagator, err := buildPropagator(o.propagator)
	if err != nil {
		return err
	}
	options := []search.Option{search.WithPropagator(propagator)}
	if o.trace {
		options = append(options, search.WithTracer(search.LoggingTracer{Writer: cmd.ErrOrStderr()}))
	}
	solver, err := search.New(csp, options...)
	if err != nil {
		return err
	}

	solution, err := solver.Solve(cmd.Context())
	if err != nil {
		return err
	}
	printBoard(cmd.OutOrStdout(), grid, func(v *arcon.Variable) (int, bool) {
		return solution.Value(v)
	})
	return nil
}

func solveClauses(ctx context.Context, w io.Writer, csp *arcon.CSP, grid [][]*arcon.Variable) error {
	solver, err := sat.New(csp)
	if err != nil {
		return err
	}
	assignment, err := solver.Solve(ctx)
	if err != nil {
		return err
	}
	printBoard(w, grid, func(v *arcon.Variable) (int, bool) {
		return assignment.Value(v)
	})
	return nil
}

func buildPropagator(name string) (arcon.Propagator, error) {
	switch name {
	case "bt":
		return propagate.BT(), nil
	case "fc":
		return propagate.ForwardChecking(), nil
	case "gac":
		return propagate.GAC(), nil
	default:
		return nil, fmt.Errorf("unknown propagator %q", name)
	}
}

func printBoard(w io.Writer, grid [][]*arcon.Variable, value func(*arcon.Variable) (int, bool)) {
	for _, row := range grid {
		for col, v := range row {
			if col > 0 {
				fmt.Fprint(w, " ")
			}
			if n, ok := value(v); ok {
				fmt.Fprintf(w, "%d", n)
			} else {
				fmt.Fprint(w, " ")
			}
		}
		fmt.Fprintln(w)
	}
}
