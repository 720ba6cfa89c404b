package othello

import (
	"github.com/spf13/cobra"

	"github.com/puzzleframe/arcon/internal/config"
	"github.com/puzzleframe/arcon/pkg/othello"
)

func NewOthelloCommand(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "othello",
		Short: "Play othello against a game manager",
	}
	cmd.AddCommand(newAgentCommand(cfg))
	return cmd
}

type agentOptions struct {
	name     string
	depth    int
	minimax  bool
	caching  bool
	ordering bool
}

func newAgentCommand(cfg config.Config) *cobra.Command {
	opts := agentOptions{}
	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Runs the game-manager protocol on stdin and stdout",
		Long: `Runs the game-manager protocol on stdin and stdout. The manager sends
an init line naming the agent's colour and search settings, then one
SCORE line and one board line per turn; the agent answers each with
its move. Flags supply defaults for settings the init line omits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return othello.Run(cmd.InOrStdin(), cmd.OutOrStdout(),
				othello.WithName(opts.name),
				othello.WithLog(cmd.ErrOrStderr()),
				othello.WithDefaults(othello.Config{
					Depth:        opts.depth,
					UseAlphaBeta: !opts.minimax,
					Caching:      opts.caching,
					Ordering:     opts.ordering,
				}),
			)
		},
	}
	cmd.Flags().StringVar(&opts.name, "name", "Arcon Othello", "name announced to the manager")
	cmd.Flags().IntVar(&opts.depth, "depth", cfg.Depth, "search depth, -1 for none")
	cmd.Flags().BoolVar(&opts.minimax, "minimax", false, "use plain minimax instead of alpha-beta")
	cmd.Flags().BoolVar(&opts.caching, "caching", false, "cache positions within a move selection")
	cmd.Flags().BoolVar(&opts.ordering, "ordering", false, "order moves by immediate utility")
	return cmd
}
