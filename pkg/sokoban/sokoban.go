package sokoban

import (
	"fmt"
	"sort"
	"strings"

	"github.com/puzzleframe/arcon/pkg/bestfirst"
)

// Point is a grid position. X grows rightwards, Y grows down the
// parsed lines.
type Point struct {
	X int
	Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

var directions = []Point{{X: 0, Y: -1}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 1, Y: 0}}

// State is a sokoban position: robots push boxes onto storage cells
// inside a width x height grid whose boundary acts as a wall. States
// are immutable; Successors returns fresh copies.
type State struct {
	width     int
	height    int
	robots    []Point
	boxes     map[Point]struct{}
	storage   map[Point]struct{}
	obstacles map[Point]struct{}
}

// NewState validates and builds a sokoban state. Robots, boxes, and
// obstacles must occupy distinct in-bounds cells; storage may coincide
// with any of them.
func NewState(width, height int, robots, boxes, storage, obstacles []Point) (*State, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("grid %dx%d is empty", width, height)
	}
	s := &State{
		width:     width,
		height:    height,
		robots:    append([]Point(nil), robots...),
		boxes:     pointSet(boxes),
		storage:   pointSet(storage),
		obstacles: pointSet(obstacles),
	}
	occupied := make(map[Point]string, len(robots)+len(boxes)+len(obstacles))
	for kind, points := range map[string][]Point{
		"robot": robots, "box": boxes, "obstacle": obstacles,
	} {
		for _, p := range points {
			if !s.inBounds(p) {
				return nil, fmt.Errorf("%s at %s outside the %dx%d grid", kind, p, width, height)
			}
			if other, ok := occupied[p]; ok {
				return nil, fmt.Errorf("%s at %s overlaps a %s", kind, p, other)
			}
			occupied[p] = kind
		}
	}
	for _, p := range storage {
		if !s.inBounds(p) {
			return nil, fmt.Errorf("storage at %s outside the %dx%d grid", p, width, height)
		}
	}
	if len(robots) == 0 {
		return nil, fmt.Errorf("no robots on the %dx%d grid", width, height)
	}
	return s, nil
}

// Width returns the grid width.
func (s *State) Width() int { return s.width }

// Height returns the grid height.
func (s *State) Height() int { return s.height }

// Robots returns the robot positions in order.
func (s *State) Robots() []Point {
	return append([]Point(nil), s.robots...)
}

// Boxes returns the box positions sorted row-major.
func (s *State) Boxes() []Point {
	return sortedPoints(s.boxes)
}

// Storage returns the storage positions sorted row-major.
func (s *State) Storage() []Point {
	return sortedPoints(s.storage)
}

// Obstacles returns the obstacle positions sorted row-major.
func (s *State) Obstacles() []Point {
	return sortedPoints(s.obstacles)
}

// IsGoal reports whether every box sits on a storage cell.
func (s *State) IsGoal() bool {
	for box := range s.boxes {
		if _, ok := s.storage[box]; !ok {
			return false
		}
	}
	return true
}

// Successors returns the states reachable by moving one robot one
// cell, pushing a box ahead of it when the cell beyond is free. Every
// move costs 1.
func (s *State) Successors() []bestfirst.Edge {
	var edges []bestfirst.Edge
	for i, robot := range s.robots {
		for _, d := range directions {
			dest := Point{X: robot.X + d.X, Y: robot.Y + d.Y}
			if !s.inBounds(dest) || s.blocked(dest) {
				continue
			}
			_, isBox := s.boxes[dest]
			beyond := Point{X: dest.X + d.X, Y: dest.Y + d.Y}
			if isBox {
				if !s.inBounds(beyond) || s.blocked(beyond) {
					continue
				}
				if _, alsoBox := s.boxes[beyond]; alsoBox {
					continue
				}
			}
			next := s.clone()
			if isBox {
				delete(next.boxes, dest)
				next.boxes[beyond] = struct{}{}
			}
			next.robots[i] = dest
			edges = append(edges, bestfirst.Edge{State: next, Cost: 1})
		}
	}
	return edges
}

// Hash identifies the mutable part of the state: robot order matters,
// boxes are canonicalised.
func (s *State) Hash() string {
	var sb strings.Builder
	for _, r := range s.robots {
		fmt.Fprintf(&sb, "r%d,%d;", r.X, r.Y)
	}
	for _, b := range sortedPoints(s.boxes) {
		fmt.Fprintf(&sb, "b%d,%d;", b.X, b.Y)
	}
	return sb.String()
}

// String renders the grid with a wall border: '#' obstacle, '@' robot,
// '$' box, '.' storage, '*' box on storage, '+' robot on storage.
func (s *State) String() string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat("#", s.width+2))
	sb.WriteByte('\n')
	for y := 0; y < s.height; y++ {
		sb.WriteByte('#')
		for x := 0; x < s.width; x++ {
			sb.WriteByte(s.cell(Point{X: x, Y: y}))
		}
		sb.WriteString("#\n")
	}
	sb.WriteString(strings.Repeat("#", s.width+2))
	return sb.String()
}

func (s *State) cell(p Point) byte {
	_, storage := s.storage[p]
	if _, ok := s.obstacles[p]; ok {
		return '#'
	}
	if s.robotAt(p) {
		if storage {
			return '+'
		}
		return '@'
	}
	if _, ok := s.boxes[p]; ok {
		if storage {
			return '*'
		}
		return '$'
	}
	if storage {
		return '.'
	}
	return ' '
}

func (s *State) inBounds(p Point) bool {
	return p.X >= 0 && p.X < s.width && p.Y >= 0 && p.Y < s.height
}

// blocked reports whether p holds an obstacle or a robot. Boxes are
// handled separately since a robot move onto a box may be a push.
func (s *State) blocked(p Point) bool {
	if _, ok := s.obstacles[p]; ok {
		return true
	}
	return s.robotAt(p)
}

func (s *State) robotAt(p Point) bool {
	for _, r := range s.robots {
		if r == p {
			return true
		}
	}
	return false
}

func (s *State) clone() *State {
	next := &State{
		width:     s.width,
		height:    s.height,
		robots:    append([]Point(nil), s.robots...),
		boxes:     make(map[Point]struct{}, len(s.boxes)),
		storage:   s.storage,
		obstacles: s.obstacles,
	}
	for b := range s.boxes {
		next.boxes[b] = struct{}{}
	}
	return next
}

func pointSet(points []Point) map[Point]struct{} {
	set := make(map[Point]struct{}, len(points))
	for _, p := range points {
		set[p] = struct{}{}
	}
	return set
}

func sortedPoints(set map[Point]struct{}) []Point {
	points := make([]Point, 0, len(set))
	for p := range set {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Y != points[j].Y {
			return points[i].Y < points[j].Y
		}
		return points[i].X < points[j].X
	})
	return points
}
