package othello

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const initialBoard = "[[0,0,0,0],[0,2,1,0],[0,1,2,0],[0,0,0,0]]"

func TestRunPlaysASession(t *testing.T) {
	input := strings.Join([]string{
		"1,1,1,0,0",
		"SCORE 2 2",
		initialBoard,
		"FINAL 5 1",
	}, "\n") + "\n"
	var out, log bytes.Buffer

	err := Run(strings.NewReader(input), &out, WithName("Test AI"), WithLog(&log))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Test AI", lines[0])
	// Depth one scores every opening move alike, so the scan order
	// decides.
	assert.Equal(t, "0 1", lines[1])

	assert.Contains(t, log.String(), "running minimax")
	assert.Contains(t, log.String(), "depth limit 1")
	assert.Contains(t, log.String(), "final score 5-1")
}

func TestRunOrderedAlphaBetaSession(t *testing.T) {
	input := strings.Join([]string{
		"1,2,0,1,1",
		"SCORE 3 2",
		captureBoard,
		"FINAL 6 0",
	}, "\n") + "\n"
	var out, log bytes.Buffer

	err := Run(strings.NewReader(input), &out, WithLog(&log))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Arcon Othello", lines[0])
	assert.Equal(t, "3 0", lines[1])

	assert.Contains(t, log.String(), "running alpha-beta")
	assert.Contains(t, log.String(), "state caching on")
	assert.Contains(t, log.String(), "node ordering on")
}

func TestRunShortInitKeepsDefaults(t *testing.T) {
	input := strings.Join([]string{
		"2",
		"SCORE 2 2",
		initialBoard,
		"FINAL 1 5",
	}, "\n") + "\n"
	var out bytes.Buffer

	err := Run(strings.NewReader(input), &out, WithDefaults(Config{Depth: 1}))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "0 2", lines[1])
}

func TestRunErrors(t *testing.T) {
	type tc struct {
		Name   string
		Input  string
		ErrMsg string
	}
	testCases := []tc{
		{
			Name:   "NoInitLine",
			Input:  "",
			ErrMsg: "before the init line",
		},
		{
			Name:   "InitNotNumeric",
			Input:  "x,1\n",
			ErrMsg: "malformed init line",
		},
		{
			Name:   "InitTooLong",
			Input:  "1,1,1,0,0,0\n",
			ErrMsg: "malformed init line",
		},
		{
			Name:   "BadColour",
			Input:  "3,1,1,0,0\n",
			ErrMsg: "dark or light",
		},
		{
			Name:   "MissingBoard",
			Input:  "1,1,1,0,0\nSCORE 2 2\n",
			ErrMsg: "before the board line",
		},
		{
			Name:   "BadBoard",
			Input:  "1,1,1,0,0\nSCORE 2 2\nnot a board\n",
			ErrMsg: "parse board",
		},
		{
			Name:   "ShortStatusLine",
			Input:  "1,1,1,0,0\nSCORE 2\n",
			ErrMsg: "malformed status line",
		},
		{
			Name:   "UnknownStatus",
			Input:  "1,1,1,0,0\nBOGUS 2 2\n",
			ErrMsg: `unexpected status "BOGUS"`,
		},
		{
			Name:   "NoFinalRound",
			Input:  "1,1,1,0,0\nSCORE 2 2\n" + initialBoard + "\n",
			ErrMsg: "before the final round",
		},
		{
			Name:   "NoMovesLeft",
			Input:  "1,1,1,0,0\nSCORE 4 0\n[[1,1],[1,1]]\n",
			ErrMsg: "no legal moves",
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.Name, func(t *testing.T) {
			var out bytes.Buffer
			err := Run(strings.NewReader(testCase.Input), &out)
			require.Error(t, err)
			assert.Contains(t, err.Error(), testCase.ErrMsg)
		})
	}
}

func TestRunOptionValidation(t *testing.T) {
	var out bytes.Buffer

	assert.Error(t, Run(strings.NewReader(""), &out, WithName("")))
	assert.Error(t, Run(strings.NewReader(""), &out, WithLog(nil)))
}
