package sokoban

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pt(x, y int) Point {
	return Point{X: x, Y: y}
}

func mustState(t *testing.T, width, height int, robots, boxes, storage, obstacles []Point) *State {
	t.Helper()
	s, err := NewState(width, height, robots, boxes, storage, obstacles)
	require.NoError(t, err)
	return s
}

func mustParse(t *testing.T, text string) *State {
	t.Helper()
	s, err := Parse(strings.NewReader(text))
	require.NoError(t, err)
	return s
}

func TestNewStateValidation(t *testing.T) {
	type tc struct {
		Name      string
		Width     int
		Height    int
		Robots    []Point
		Boxes     []Point
		Storage   []Point
		Obstacles []Point
		ErrMsg    string
	}
	testCases := []tc{
		{Name: "EmptyGrid", Width: 0, Height: 3, Robots: []Point{pt(0, 0)}, ErrMsg: "empty"},
		{Name: "NoRobots", Width: 3, Height: 3, ErrMsg: "no robots"},
		{Name: "RobotOutside", Width: 3, Height: 3, Robots: []Point{pt(3, 0)}, ErrMsg: "outside"},
		{Name: "BoxOutside", Width: 3, Height: 3, Robots: []Point{pt(0, 0)}, Boxes: []Point{pt(0, -1)}, ErrMsg: "outside"},
		{Name: "StorageOutside", Width: 3, Height: 3, Robots: []Point{pt(0, 0)}, Storage: []Point{pt(0, 3)}, ErrMsg: "outside"},
		{
			Name: "BoxOnObstacle", Width: 3, Height: 3, Robots: []Point{pt(0, 0)},
			Boxes: []Point{pt(1, 1)}, Obstacles: []Point{pt(1, 1)}, ErrMsg: "overlaps",
		},
		{
			Name: "RobotOnBox", Width: 3, Height: 3, Robots: []Point{pt(1, 1)},
			Boxes: []Point{pt(1, 1)}, ErrMsg: "overlaps",
		},
	}
	for _, tt := range testCases {
		t.Run(tt.Name, func(t *testing.T) {
			_, err := NewState(tt.Width, tt.Height, tt.Robots, tt.Boxes, tt.Storage, tt.Obstacles)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.ErrMsg)
		})
	}
}

func TestStorageMayOverlap(t *testing.T) {
	s := mustState(t, 3, 3,
		[]Point{pt(0, 0)}, []Point{pt(1, 1)}, []Point{pt(0, 0), pt(1, 1)}, nil)
	assert.True(t, s.IsGoal())
}

func TestIsGoal(t *testing.T) {
	s := mustState(t, 3, 1, []Point{pt(0, 0)}, []Point{pt(1, 0)}, []Point{pt(2, 0)}, nil)
	assert.False(t, s.IsGoal())

	s = mustState(t, 3, 1, []Point{pt(0, 0)}, []Point{pt(2, 0)}, []Point{pt(2, 0)}, nil)
	assert.True(t, s.IsGoal())

	s = mustState(t, 3, 1, []Point{pt(0, 0)}, nil, []Point{pt(2, 0)}, nil)
	assert.True(t, s.IsGoal())
}

func TestSuccessorsOpenFloor(t *testing.T) {
	s := mustState(t, 3, 3, []Point{pt(1, 1)}, nil, nil, nil)
	edges := s.Successors()
	assert.Len(t, edges, 4)
	for _, e := range edges {
		assert.Equal(t, 1.0, e.Cost)
	}

	corner := mustState(t, 3, 3, []Point{pt(0, 0)}, nil, nil, nil)
	assert.Len(t, corner.Successors(), 2)
}

func TestSuccessorsPushBox(t *testing.T) {
	s := mustState(t, 4, 1, []Point{pt(0, 0)}, []Point{pt(1, 0)}, []Point{pt(3, 0)}, nil)
	edges := s.Successors()
	require.Len(t, edges, 1)

	next := edges[0].State.(*State)
	assert.Equal(t, []Point{pt(1, 0)}, next.Robots())
	assert.Equal(t, []Point{pt(2, 0)}, next.Boxes())

	// the push never mutates the source state
	assert.Equal(t, []Point{pt(0, 0)}, s.Robots())
	assert.Equal(t, []Point{pt(1, 0)}, s.Boxes())
}

func TestSuccessorsBlockedPushes(t *testing.T) {
	type tc struct {
		Name  string
		State *State
		Moves int
	}
	testCases := []tc{
		{
			Name:  "PushOffGrid",
			State: mustState(t, 2, 1, []Point{pt(0, 0)}, []Point{pt(1, 0)}, nil, nil),
			Moves: 0,
		},
		{
			Name:  "PushIntoObstacle",
			State: mustState(t, 4, 1, []Point{pt(0, 0)}, []Point{pt(1, 0)}, nil, []Point{pt(2, 0)}),
			Moves: 0,
		},
		{
			Name:  "PushIntoBox",
			State: mustState(t, 4, 1, []Point{pt(0, 0)}, []Point{pt(1, 0), pt(2, 0)}, nil, nil),
			Moves: 0,
		},
		{
			Name:  "PushIntoRobot",
			State: mustState(t, 4, 1, []Point{pt(0, 0), pt(2, 0)}, []Point{pt(1, 0)}, nil, nil),
			Moves: 1, // only the second robot can step right
		},
		{
			Name:  "RobotIntoObstacle",
			State: mustState(t, 2, 1, []Point{pt(0, 0)}, nil, nil, []Point{pt(1, 0)}),
			Moves: 0,
		},
		{
			Name:  "RobotIntoRobot",
			State: mustState(t, 2, 1, []Point{pt(0, 0), pt(1, 0)}, nil, nil, nil),
			Moves: 0,
		},
	}
	for _, tt := range testCases {
		t.Run(tt.Name, func(t *testing.T) {
			assert.Len(t, tt.State.Successors(), tt.Moves)
		})
	}
}

func TestSuccessorsPerRobot(t *testing.T) {
	s := mustState(t, 5, 1, []Point{pt(0, 0), pt(4, 0)}, nil, nil, nil)
	edges := s.Successors()
	require.Len(t, edges, 2)

	first := edges[0].State.(*State)
	second := edges[1].State.(*State)
	assert.Equal(t, []Point{pt(1, 0), pt(4, 0)}, first.Robots())
	assert.Equal(t, []Point{pt(0, 0), pt(3, 0)}, second.Robots())
}

func TestHashTracksRobotsAndBoxes(t *testing.T) {
	a := mustState(t, 3, 3, []Point{pt(0, 0)}, []Point{pt(1, 1)}, []Point{pt(2, 2)}, nil)
	b := mustState(t, 3, 3, []Point{pt(0, 0)}, []Point{pt(1, 1)}, nil, []Point{pt(2, 0)})
	assert.Equal(t, a.Hash(), b.Hash())

	moved := mustState(t, 3, 3, []Point{pt(0, 1)}, []Point{pt(1, 1)}, nil, nil)
	assert.NotEqual(t, a.Hash(), moved.Hash())

	pushed := mustState(t, 3, 3, []Point{pt(0, 0)}, []Point{pt(2, 1)}, nil, nil)
	assert.NotEqual(t, a.Hash(), pushed.Hash())
}

func TestParseRendersBack(t *testing.T) {
	s := mustParse(t, "@$.")
	assert.Equal(t, []Point{pt(0, 0)}, s.Robots())
	assert.Equal(t, []Point{pt(1, 0)}, s.Boxes())
	assert.Equal(t, []Point{pt(2, 0)}, s.Storage())
	assert.Equal(t, "#####\n#@$.#\n#####", s.String())
}

func TestParseOverlayCells(t *testing.T) {
	s := mustParse(t, "+*#\n  .")
	assert.Equal(t, []Point{pt(0, 0)}, s.Robots())
	assert.Equal(t, []Point{pt(1, 0)}, s.Boxes())
	assert.Equal(t, []Point{pt(0, 0), pt(1, 0), pt(2, 1)}, s.Storage())
	assert.Equal(t, []Point{pt(2, 0)}, s.Obstacles())
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(strings.NewReader("@x."))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown cell")

	_, err = Parse(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty puzzle")

	_, err = Parse(strings.NewReader("$.."))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no robots")
}

func TestReadProblems(t *testing.T) {
	input := "; a pair of puzzles\n@$.\n\n#.#\n@$ \n"
	problems, err := ReadProblems(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, problems, 2)
	assert.Equal(t, 3, problems[0].Width())
	assert.Equal(t, 1, problems[0].Height())
	assert.Equal(t, 2, problems[1].Height())

	_, err = ReadProblems(strings.NewReader("@$.\n\n@x\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "puzzle 2")

	_, err = ReadProblems(strings.NewReader("; nothing\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no puzzles")
}
