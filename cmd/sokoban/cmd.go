package sokoban

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/puzzleframe/arcon/internal/config"
	"github.com/puzzleframe/arcon/pkg/bestfirst"
	"github.com/puzzleframe/arcon/pkg/sokoban"
)

func NewSokobanCommand(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sokoban",
		Short: "Solve sokoban puzzles",
	}
	cmd.AddCommand(newSolveCommand(cfg))
	return cmd
}

type solveOptions struct {
	algorithm string
	weight    float64
	timebound time.Duration
	parallel  int
}

func newSolveCommand(cfg config.Config) *cobra.Command {
	opts := solveOptions{}
	cmd := &cobra.Command{
		Use:   "solve <path>",
		Short: "Solves every sokoban puzzle in a file",
		Long: `Solves every sokoban puzzle in a file. Puzzles are separated by blank
lines and drawn with '#' obstacle, '@' robot, '$' box, '.' storage,
'*' box on storage, '+' robot on storage. Lines starting with ';' are
comments. For instance:

; push the box one cell right
#####
#@$.#
#####
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
	cmd.Flags().StringVar(&opts.algorithm, "algorithm", cfg.Algorithm, "search algorithm: astar, weighted, iterative, or gbfs")
	cmd.Flags().Float64Var(&opts.weight, "weight", cfg.Weight, "heuristic weight for weighted searches")
	cmd.Flags().DurationVar(&opts.timebound, "timebound", cfg.Timebound, "time limit per puzzle, 0 for none")
	cmd.Flags().IntVar(&opts.parallel, "parallel", cfg.Parallel, "number of puzzles solved concurrently")
	return cmd
}

type result struct {
	node *bestfirst.Node
	err  error
}

func (o solveOptions) run(cmd *cobra.Command, path string) error {
	switch o.algorithm {
	case "astar", "weighted", "iterative", "gbfs":
	default:
		return fmt.Errorf("unknown algorithm %q", o.algorithm)
	}
	if o.parallel < 1 {
		return fmt.Errorf("parallel must be at least 1, got %d", o.parallel)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening puzzle file (%s): %w", path, err)
	}
	defer f.Close()

	problems, err := sokoban.ReadProblems(f)
	if err != nil {
		return fmt.Errorf("error parsing puzzle file (%s): %w", path, err)
	}

	// Each puzzle owns its engine and heuristic session, so puzzles
	// can run concurrently.
	results := make([]result, len(problems))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(o.parallel)
	for i, problem := range problems {
		i, problem := i, problem
		g.Go(func() error {
			results[i] = o.solveProblem(ctx, problem)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	unsolved := 0
	for i, res := range results {
		if res.err != nil {
			unsolved++
			fmt.Fprintf(cmd.OutOrStdout(), "puzzle %d: %v\n", i+1, res.err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "puzzle %d: cost %.0f in %d states\n",
			i+1, res.node.G, len(res.node.Path()))
	}
	if unsolved > 0 {
		return fmt.Errorf("%d of %d puzzles unsolved", unsolved, len(problems))
	}
	return nil
}

func (o solveOptions) solveProblem(ctx context.Context, start *sokoban.State) result {
	if o.timebound > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timebound)
		defer cancel()
	}
	h := sokoban.NewAlternate()

	switch o.algorithm {
	case "astar":
		engine, err := bestfirst.New(start, bestfirst.WithHeuristic(h))
		if err != nil {
			return result{err: err}
		}
		node, err := engine.Search(ctx, bestfirst.Unbounded())
		return result{node: node, err: err}
	case "weighted":
		node, err := bestfirst.WeightedAStar(ctx, start, h, o.weight)
		return result{node: node, err: err}
	case "iterative":
		node, err := bestfirst.IterativeWeightedAStar(ctx, start, h, o.weight)
		return result{node: node, err: err}
	default:
		node, err := bestfirst.IterativeGBFS(ctx, start, h)
		return result{node: node, err: err}
	}
}
