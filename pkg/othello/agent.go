package othello

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/puzzleframe/arcon/internal/cache"
)

// ErrNoMoves is returned by SelectMove when the agent's colour cannot
// play.
var ErrNoMoves = errors.New("no legal moves")

// Config controls how an Agent searches.
type Config struct {
	// Depth bounds the search; non-positive searches to the end of
	// the game.
	Depth int

	// UseAlphaBeta selects alpha-beta pruning over plain minimax.
	UseAlphaBeta bool

	// Caching reuses utilities for positions seen earlier in the same
	// move selection.
	Caching bool

	// Ordering visits moves in descending order of immediate utility.
	// It only applies to alpha-beta search.
	Ordering bool
}

// Agent picks moves for one colour by game-tree search.
type Agent struct {
	player Player
	config Config
	cache  cache.Cache[int]
}

// NewAgent returns an agent playing the given colour.
func NewAgent(player Player, config Config) (*Agent, error) {
	if player != Dark && player != Light {
		return nil, fmt.Errorf("player %d must be dark or light", player)
	}
	return &Agent{
		player: player,
		config: config,
		cache:  cache.NewMapCache[int](),
	}, nil
}

// Player returns the colour the agent plays.
func (a *Agent) Player() Player {
	return a.player
}

// SelectMove searches the position and returns the best move for the
// agent's colour. Cached utilities do not survive between calls.
func (a *Agent) SelectMove(board *Board) (Move, error) {
	if board == nil {
		return Move{}, errors.New("select move: nil board")
	}
	a.cache = cache.NewMapCache[int]()
	depth := a.config.Depth
	if depth <= 0 {
		depth = -1
	}
	var (
		move Move
		ok   bool
	)
	if a.config.UseAlphaBeta {
		move, _, ok = a.alphaBetaMax(board, depth, math.MinInt, math.MaxInt)
	} else {
		move, _, ok = a.minimaxMax(board, depth)
	}
	if !ok {
		return Move{}, ErrNoMoves
	}
	return move, nil
}

// minimaxMax maximises the agent's utility over its own moves. The
// returned flag is false at depth cutoffs and dead ends, where no move
// is produced.
func (a *Agent) minimaxMax(b *Board, limit int) (Move, int, bool) {
	if a.config.Caching {
		if util, ok := a.cache.Get(nodeKey(b, a.player)); ok {
			return Move{}, util, false
		}
	}
	moves := b.Moves(a.player)
	if len(moves) == 0 || limit == 0 {
		return Move{}, b.Utility(a.player), false
	}
	best := math.MinInt
	var bestMove Move
	for _, move := range moves {
		child := b.play(move, a.player)
		_, util, _ := a.minimaxMin(child, limit-1)
		if util > best {
			best = util
			bestMove = move
		}
		if a.config.Caching {
			a.cache.Set(nodeKey(child, a.player.Opponent()), util)
		}
	}
	return bestMove, best, true
}

// minimaxMin minimises the agent's utility over the opponent's moves.
func (a *Agent) minimaxMin(b *Board, limit int) (Move, int, bool) {
	opponent := a.player.Opponent()
	if a.config.Caching {
		if util, ok := a.cache.Get(nodeKey(b, opponent)); ok {
			return Move{}, util, false
		}
	}
	moves := b.Moves(opponent)
	if len(moves) == 0 || limit == 0 {
		return Move{}, b.Utility(a.player), false
	}
	best := math.MaxInt
	var bestMove Move
	for _, move := range moves {
		child := b.play(move, opponent)
		_, util, _ := a.minimaxMax(child, limit-1)
		if util < best {
			best = util
			bestMove = move
		}
		if a.config.Caching {
			a.cache.Set(nodeKey(child, a.player), util)
		}
	}
	return bestMove, best, true
}

func (a *Agent) alphaBetaMax(b *Board, limit, alpha, beta int) (Move, int, bool) {
	if a.config.Caching {
		if util, ok := a.cache.Get(nodeKey(b, a.player)); ok {
			return Move{}, util, false
		}
	}
	moves := b.Moves(a.player)
	if len(moves) == 0 || limit == 0 {
		return Move{}, b.Utility(a.player), false
	}
	if a.config.Ordering {
		orderMoves(b, moves, a.player)
	}
	best := math.MinInt
	var bestMove Move
	for _, move := range moves {
		child := b.play(move, a.player)
		_, util, _ := a.alphaBetaMin(child, limit-1, alpha, beta)
		if util > best {
			best = util
			bestMove = move
		}
		if a.config.Caching {
			a.cache.Set(nodeKey(child, a.player.Opponent()), util)
		}
		if util > alpha {
			alpha = util
		}
		if beta <= alpha {
			break
		}
	}
	return bestMove, best, true
}

func (a *Agent) alphaBetaMin(b *Board, limit, alpha, beta int) (Move, int, bool) {
	opponent := a.player.Opponent()
	if a.config.Caching {
		if util, ok := a.cache.Get(nodeKey(b, opponent)); ok {
			return Move{}, util, false
		}
	}
	moves := b.Moves(opponent)
	if len(moves) == 0 || limit == 0 {
		return Move{}, b.Utility(a.player), false
	}
	if a.config.Ordering {
		orderMoves(b, moves, opponent)
	}
	best := math.MaxInt
	var bestMove Move
	for _, move := range moves {
		child := b.play(move, opponent)
		_, util, _ := a.alphaBetaMax(child, limit-1, alpha, beta)
		if util < best {
			best = util
			bestMove = move
		}
		if a.config.Caching {
			a.cache.Set(nodeKey(child, a.player), util)
		}
		if util < beta {
			beta = util
		}
		if beta <= alpha {
			break
		}
	}
	return bestMove, best, true
}

// orderMoves sorts moves for the mover by the immediate utility of the
// resulting position, best first.
func orderMoves(b *Board, moves []Move, mover Player) {
	scores := make(map[Move]int, len(moves))
	for _, move := range moves {
		scores[move] = b.play(move, mover).Utility(mover)
	}
	sort.SliceStable(moves, func(i, j int) bool {
		return scores[moves[i]] > scores[moves[j]]
	})
}

// nodeKey identifies a position together with the colour to move from
// it.
func nodeKey(b *Board, mover Player) cache.Key {
	var sb strings.Builder
	sb.Grow(b.size*b.size + 2)
	for _, row := range b.cells {
		for _, cell := range row {
			sb.WriteByte('0' + byte(cell))
		}
	}
	sb.WriteByte(':')
	sb.WriteByte('0' + byte(mover))
	return cache.Key(sb.String())
}
