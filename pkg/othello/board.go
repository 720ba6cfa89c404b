package othello

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Player is a disc colour. Dark moves first. The zero value marks an
// empty cell.
type Player int

const (
	empty Player = 0
	Dark  Player = 1
	Light Player = 2
)

// Opponent returns the other colour.
func (p Player) Opponent() Player {
	if p == Dark {
		return Light
	}
	return Dark
}

func (p Player) String() string {
	switch p {
	case Dark:
		return "dark"
	case Light:
		return "light"
	}
	return "none"
}

// Move is a board coordinate, column first to match the game-manager
// protocol.
type Move struct {
	Col int
	Row int
}

func (m Move) String() string {
	return fmt.Sprintf("%d %d", m.Col, m.Row)
}

// Board is a square othello position indexed cells[row][col]. Boards
// are immutable; Play returns a new position.
type Board struct {
	size  int
	cells [][]Player
}

// NewBoard returns the standard starting position for an even size of
// at least 4.
func NewBoard(size int) (*Board, error) {
	if size < 4 || size%2 != 0 {
		return nil, fmt.Errorf("board size %d must be even and at least 4", size)
	}
	b := emptyBoard(size)
	mid := size / 2
	b.cells[mid-1][mid-1] = Light
	b.cells[mid-1][mid] = Dark
	b.cells[mid][mid-1] = Dark
	b.cells[mid][mid] = Light
	return b, nil
}

// ParseBoard parses the manager's board line: a list of rows, each a
// list of 0 (empty), 1 (dark), 2 (light).
func ParseBoard(line string) (*Board, error) {
	var rows [][]int
	if err := json.Unmarshal([]byte(line), &rows); err != nil {
		return nil, fmt.Errorf("parse board: %w", err)
	}
	size := len(rows)
	if size == 0 {
		return nil, fmt.Errorf("parse board: no rows")
	}
	b := emptyBoard(size)
	for r, row := range rows {
		if len(row) != size {
			return nil, fmt.Errorf("parse board: row %d has %d cells, want %d", r, len(row), size)
		}
		for c, cell := range row {
			if cell < 0 || cell > 2 {
				return nil, fmt.Errorf("parse board: cell %d,%d holds %d", r, c, cell)
			}
			b.cells[r][c] = Player(cell)
		}
	}
	return b, nil
}

// Size returns the board's side length.
func (b *Board) Size() int {
	return b.size
}

// Cell returns the disc at row, col, or the zero Player for an empty
// cell.
func (b *Board) Cell(row, col int) Player {
	return b.cells[row][col]
}

// Moves returns p's legal moves, scanning columns before rows.
func (b *Board) Moves(p Player) []Move {
	var moves []Move
	for col := 0; col < b.size; col++ {
		for row := 0; row < b.size; row++ {
			m := Move{Col: col, Row: row}
			if b.cells[row][col] == empty && len(b.lines(m, p)) > 0 {
				moves = append(moves, m)
			}
		}
	}
	return moves
}

// Play places p's disc at m, flips the captured lines, and returns
// the new position. Occupied cells and moves that capture nothing are
// rejected.
func (b *Board) Play(m Move, p Player) (*Board, error) {
	if m.Col < 0 || m.Col >= b.size || m.Row < 0 || m.Row >= b.size {
		return nil, fmt.Errorf("move %s outside the %dx%d board", m, b.size, b.size)
	}
	if b.cells[m.Row][m.Col] != empty {
		return nil, fmt.Errorf("cell %s is occupied", m)
	}
	if len(b.lines(m, p)) == 0 {
		return nil, fmt.Errorf("move %s captures nothing", m)
	}
	return b.play(m, p), nil
}

// Score returns the dark and light disc counts.
func (b *Board) Score() (dark, light int) {
	for _, row := range b.cells {
		for _, cell := range row {
			switch cell {
			case Dark:
				dark++
			case Light:
				light++
			}
		}
	}
	return dark, light
}

// Utility scores the position for p as its disc lead.
func (b *Board) Utility(p Player) int {
	dark, light := b.Score()
	if p == Dark {
		return dark - light
	}
	return light - dark
}

// Heuristic scores the position for p: disc lead plus weighted
// mobility, corner, and boundary terms, minus the opponent's mobility.
func (b *Board) Heuristic(p Player) int {
	last := b.size - 1
	corner := 0
	if b.cells[0][0] == p || b.cells[0][last] == p || b.cells[last][0] == p || b.cells[last][last] == p {
		corner = 1
	}
	side := 0
	for i := 0; i < b.size; i++ {
		for j := 0; j < b.size; j++ {
			if b.cells[0][j] == p || b.cells[i][0] == p || b.cells[i][last] == p || b.cells[last][j] == p {
				side++
			}
		}
	}
	return b.Utility(p) + 3*len(b.Moves(p)) + 5*corner + 2*side - 2*len(b.Moves(p.Opponent()))
}

// Terminal reports whether neither colour has a legal move.
func (b *Board) Terminal() bool {
	return len(b.Moves(Dark)) == 0 && len(b.Moves(Light)) == 0
}

// String renders the position with '.' empty, 'd' dark, 'l' light.
func (b *Board) String() string {
	var sb strings.Builder
	for r, row := range b.cells {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for _, cell := range row {
			switch cell {
			case Dark:
				sb.WriteByte('d')
			case Light:
				sb.WriteByte('l')
			default:
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

var lineDirections = [8][2]int{
	{0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1},
}

// lines returns the runs of opposing discs that playing m would
// capture, one slice per direction.
func (b *Board) lines(m Move, p Player) [][]Move {
	var lines [][]Move
	for _, d := range lineDirections {
		var line []Move
		found := false
		u, v := m.Col+d[0], m.Row+d[1]
		for u >= 0 && u < b.size && v >= 0 && v < b.size {
			cell := b.cells[v][u]
			if cell == empty {
				break
			}
			if cell == p {
				found = true
				break
			}
			line = append(line, Move{Col: u, Row: v})
			u += d[0]
			v += d[1]
		}
		if found && len(line) > 0 {
			lines = append(lines, line)
		}
	}
	return lines
}

// play applies a move known to be legal.
func (b *Board) play(m Move, p Player) *Board {
	next := emptyBoard(b.size)
	for r, row := range b.cells {
		copy(next.cells[r], row)
	}
	next.cells[m.Row][m.Col] = p
	for _, line := range b.lines(m, p) {
		for _, cell := range line {
			next.cells[cell.Row][cell.Col] = p
		}
	}
	return next
}

func emptyBoard(size int) *Board {
	cells := make([][]Player, size)
	for i := range cells {
		cells[i] = make([]Player, size)
	}
	return &Board{size: size, cells: cells}
}
