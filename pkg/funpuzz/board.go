package funpuzz

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Operation is a cage's arithmetic operation, numbered as in the board
// file format. OpNone marks a single-cell cage that pins its cell to
// the target value.
type Operation int

const (
	OpNone Operation = iota - 1
	OpAdd
	OpSub
	OpDiv
	OpMul
)

func (op Operation) String() string {
	switch op {
	case OpNone:
		return "pin"
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpDiv:
		return "div"
	case OpMul:
		return "mul"
	}
	return fmt.Sprintf("op(%d)", int(op))
}

// Cell addresses a grid position with 1-based row and column.
type Cell struct {
	Row int
	Col int
}

func (c Cell) String() string {
	return fmt.Sprintf("%d%d", c.Row, c.Col)
}

// Cage groups cells whose values must combine to the target under the
// cage's operation. Subtraction and division accept any operand order.
type Cage struct {
	Cells  []Cell
	Target int
	Op     Operation
}

// Board describes one FunPuzz instance: an n x n grid where every row
// and column holds 1..n exactly once, plus the cages.
type Board struct {
	Size  int
	Cages []Cage
}

// ParseBoard parses the one-line board format: a list of integer
// groups, the first holding the grid size, each following group one
// cage. A two-element group [cell, target] pins a single cell; longer
// groups list cells, then the target, then the operation code. Cells
// are two-digit 1-based row/column references.
func ParseBoard(line string) (*Board, error) {
	var groups [][]int
	if err := json.Unmarshal([]byte(line), &groups); err != nil {
		return nil, fmt.Errorf("parse board: %w", err)
	}
	if len(groups) == 0 || len(groups[0]) != 1 {
		return nil, errors.New("parse board: first group must hold the grid size")
	}
	size := groups[0][0]
	if size < 1 || size > 9 {
		return nil, fmt.Errorf("parse board: grid size %d out of range 1..9", size)
	}
	b := &Board{Size: size}
	for i, group := range groups[1:] {
		cage, err := parseCage(group, size)
		if err != nil {
			return nil, fmt.Errorf("parse board: cage %d: %w", i+1, err)
		}
		b.Cages = append(b.Cages, cage)
	}
	return b, nil
}

// ReadBoards parses one board per line, skipping blank lines and lines
// starting with '#'.
func ReadBoards(r io.Reader) ([]*Board, error) {
	scanner := bufio.NewScanner(r)
	var boards []*Board
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		b, err := ParseBoard(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		boards = append(boards, b)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return boards, nil
}

func parseCage(group []int, size int) (Cage, error) {
	if len(group) < 2 {
		return Cage{}, errors.New("cage needs at least a cell and a target")
	}
	if len(group) == 2 {
		cell, err := parseCell(group[0], size)
		if err != nil {
			return Cage{}, err
		}
		return Cage{Cells: []Cell{cell}, Target: group[1], Op: OpNone}, nil
	}

	op := Operation(group[len(group)-1])
	if op < OpAdd || op > OpMul {
		return Cage{}, fmt.Errorf("unknown operation code %d", int(op))
	}
	target := group[len(group)-2]
	seen := make(map[Cell]struct{}, len(group)-2)
	cells := make([]Cell, 0, len(group)-2)
	for _, ref := range group[:len(group)-2] {
		cell, err := parseCell(ref, size)
		if err != nil {
			return Cage{}, err
		}
		if _, dup := seen[cell]; dup {
			return Cage{}, fmt.Errorf("cell %s appears twice", cell)
		}
		seen[cell] = struct{}{}
		cells = append(cells, cell)
	}
	return Cage{Cells: cells, Target: target, Op: op}, nil
}

func parseCell(ref, size int) (Cell, error) {
	row, col := ref/10, ref%10
	if row < 1 || row > size || col < 1 || col > size {
		return Cell{}, fmt.Errorf("cell reference %d outside the %dx%d grid", ref, size, size)
	}
	return Cell{Row: row, Col: col}, nil
}
