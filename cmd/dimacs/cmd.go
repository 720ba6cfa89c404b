package dimacs

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
)

func NewDimacsCommand(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dimacs",
		Short: "Solve CNF problems given in DIMACS format",
	}
	cmd.AddCommand(newSolveCommand(cfg))
	return cmd
}

type solveOptions struct {
	propagator string
	engine     string
	trace      bool
}

func newSolveCommand(cfg config.Config) *cobra.Command {
	opts := solveOptions{}
	cmd := &cobra.Command{
		Use:   "solve <path>",
		Short: "Solves a CNF problem given in DIMACS format",
		Long: `Solves a CNF problem given in DIMACS format. For instance:
c
c this is a comment
c header: p cnf <number of variables> <number of clauses>
p cnf 2 2
c clauses end in zero, negative means 'not'
c 0 (zero) is not a valid literal
1 2 0
1 -2 0
c cnf: (1 or 2) and (1 or not 2)
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
	cmd.Flags().StringVar(&opts.propagator, "propagator", cfg.Propagator, "propagator: bt, fc, or gac")
	cmd.Flags().StringVar(&opts.engine, "engine", cfg.Engine, "solving engine: bt or sat")
	cmd.Flags().BoolVar(&opts.trace, "trace", cfg.Trace, "print search events to stderr")
	return cmd
}

func (o solveOptions) run(cmd *cobra.Command, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening dimacs file (%s): %w", path, err)
	}
	defer f.Close()

	problem, err := NewProblem(f)
	if err != nil {
		return fmt.Errorf("error parsing dimacs file (%s): %w", path, err)
	}
	csp, variables, err := Model(problem)
	if err != nil {
		return err
	}

	switch o.engine {
	case "bt":
		return o.solveBacktracking(cmd, csp, variables)
	case "sat":
		return solveClauses(cmd.Context(), cmd.OutOrStdout(), csp, variables)
	default:
		return fmt.Errorf("unknown engine %q", o.engine)
	}
}

func (o solveOptions) solveBacktracking(cmd *cobra.Command, csp *arcon.CSP, variables []*arcon.Variable) error {
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
	fmt.Fprintln(cmd.OutOrStdout(), "solution found:")
	printAssignment(cmd.OutOrStdout(), variables, func(v *arcon.Variable) (int, bool) {
		return solution.Value(v)
	})
	return nil
}

func solveClauses(ctx context.Context, w io.Writer, csp *arcon.CSP, variables []*arcon.Variable) error {
	solver, err := sat.New(csp)
	if err != nil {
		return err
	}
	assignment, err := solver.Solve(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "solution found:")
	printAssignment(w, variables, func(v *arcon.Variable) (int, bool) {
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

func printAssignment(w io.Writer, variables []*arcon.Variable, value func(*arcon.Variable) (int, bool)) {
	for _, v := range variables {
		if n, ok := value(v); ok {
			fmt.Fprintf(w, "%s = %t\n", v.Name(), n == 1)
		}
	}
}
