package funpuzz

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/puzzleframe/arcon/internal/config"
	"github.com/puzzleframe/arcon/internal/sat"
	"github.com/puzzleframe/arcon/pkg/arcon"
	"github.com/puzzleframe/arcon/pkg/arcon/propagate"
	"github.com/puzzleframe/arcon/pkg/arcon/search"
	"github.com/puzzleframe/arcon/pkg/funpuzz"
)

func NewFunpuzzCommand(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "funpuzz",
		Short: "Solve FunPuzz grid puzzles",
	}
	cmd.AddCommand(newSolveCommand(cfg))
	return cmd
}

type solveOptions struct {
	model      string
	propagator string
	engine     string
	trace      bool
}

func newSolveCommand(cfg config.Config) *cobra.Command {
	opts := solveOptions{}
	cmd := &cobra.Command{
		Use:   "solve <path>",
		Short: "Solves every FunPuzz board in a file",
		Long: `Solves every FunPuzz board in a file. A board is one line holding a
list of integer groups: the first group is the grid size, each further
group is a cage given as cell references, a target, and an operation
code (0 add, 1 subtract, 2 divide, 3 multiply). A two-element group
pins a single cell. For instance:

[[3],[11,21,3,0],[12,22,2,1],[13,23,33,6,3],[31,32,5,0]]
`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("file (%s) not found", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args[0])
		},
	}
	cmd.Flags().StringVar(&opts.model, "model", cfg.Model, "constraint model: binary, alldiff, or caged")
	cmd.Flags().StringVar(&opts.propagator, "propagator", cfg.Propagator, "propagator: bt, fc, or gac")
	cmd.Flags().StringVar(&opts.engine, "engine", cfg.Engine, "solving engine: bt or sat")
	cmd.Flags().BoolVar(&opts.trace, "trace", cfg.Trace, "print search events to stderr")
	return cmd
}

func (o solveOptions) run(cmd *cobra.Command, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening board file (%s): %w", path, err)
	}
	defer f.Close()

	boards, err := funpuzz.ReadBoards(f)
	if err != nil {
		return fmt.Errorf("error parsing board file (%s): %w", path, err)
	}

	for i, board := range boards {
		if i > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		if err := o.solveBoard(cmd, board); err != nil {
			return fmt.Errorf("puzzle %d: %w", i+1, err)
		}
	}
	return nil
}

func (o solveOptions) solveBoard(cmd *cobra.Command, board *funpuzz.Board) error {
	csp, grid, err := buildModel(o.model, board)
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
	printGrid(cmd.OutOrStdout(), grid, func(v *arcon.Variable) (int, bool) {
		return solution.Value(v)
	})
	stats := solver.Stats()
	fmt.Fprintf(cmd.OutOrStdout(), "solved in %d decisions, %d prunings, %d dead ends\n",
		stats.Decisions, stats.Prunings, stats.DeadEnds)
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
	printGrid(w, grid, func(v *arcon.Variable) (int, bool) {
		return assignment.Value(v)
	})
	fmt.Fprintln(w, "solved by the clause engine")
	return nil
}

func buildModel(name string, board *funpuzz.Board) (*arcon.CSP, [][]*arcon.Variable, error) {
	switch name {
	case "binary":
		return funpuzz.BinaryGrid(board)
	case "alldiff":
		return funpuzz.AllDiffGrid(board)
	case "caged":
		return funpuzz.CagedModel(board)
	default:
		return nil, nil, fmt.Errorf("unknown model %q", name)
	}
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

func printGrid(w io.Writer, grid [][]*arcon.Variable, value func(*arcon.Variable) (int, bool)) {
	for _, row := range grid {
		for col, v := range row {
			if col > 0 {
				fmt.Fprint(w, " ")
			}
			if n, ok := value(v); ok {
				fmt.Fprintf(w, "%d", n)
			} else {
				fmt.Fprint(w, ".")
			}
		}
		fmt.Fprintln(w)
	}
}
