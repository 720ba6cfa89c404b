package sokoban

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Parse reads one puzzle in the usual text notation: '#' obstacle,
// '@' robot, '$' box, '.' storage, '*' box on storage, '+' robot on
// storage, ' ' or '-' floor. The grid is as wide as the longest line;
// short lines are padded with floor.
func Parse(r io.Reader) (*State, error) {
	scanner := bufio.NewScanner(r)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return parseLines(lines)
}

// ReadProblems reads a file of puzzles separated by blank lines. Lines
// starting with ';' are comments.
func ReadProblems(r io.Reader) ([]*State, error) {
	scanner := bufio.NewScanner(r)
	var problems []*State
	var block []string
	flush := func() error {
		if len(block) == 0 {
			return nil
		}
		state, err := parseLines(block)
		if err != nil {
			return fmt.Errorf("puzzle %d: %w", len(problems)+1, err)
		}
		problems = append(problems, state)
		block = nil
		return nil
	}
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		switch {
		case strings.HasPrefix(line, ";"):
			continue
		case strings.TrimSpace(line) == "":
			if err := flush(); err != nil {
				return nil, err
			}
		default:
			block = append(block, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if len(problems) == 0 {
		return nil, fmt.Errorf("no puzzles found")
	}
	return problems, nil
}

func parseLines(lines []string) (*State, error) {
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("empty puzzle")
	}
	width := 0
	for _, line := range lines {
		if len(line) > width {
			width = len(line)
		}
	}

	var robots, boxes, storage, obstacles []Point
	for y, line := range lines {
		for x := 0; x < len(line); x++ {
			p := Point{X: x, Y: y}
			switch line[x] {
			case ' ', '-':
			case '#':
				obstacles = append(obstacles, p)
			case '@':
				robots = append(robots, p)
			case '+':
				robots = append(robots, p)
				storage = append(storage, p)
			case '$':
				boxes = append(boxes, p)
			case '*':
				boxes = append(boxes, p)
				storage = append(storage, p)
			case '.':
				storage = append(storage, p)
			default:
				return nil, fmt.Errorf("unknown cell %q at %d,%d", line[x], x, y)
			}
		}
	}
	return NewState(width, len(lines), robots, boxes, storage, obstacles)
}
