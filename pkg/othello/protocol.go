package othello

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// runner holds the session state for one protocol conversation.
type runner struct {
	name     string
	log      io.Writer
	defaults Config
}

// RunOption configures a protocol session.
type RunOption func(*runner) error

// WithName sets the name announced to the game manager.
func WithName(name string) RunOption {
	return func(run *runner) error {
		if name == "" {
			return errors.New("no name provided")
		}
		run.name = name
		return nil
	}
}

// WithLog directs session diagnostics to w.
func WithLog(w io.Writer) RunOption {
	return func(run *runner) error {
		if w == nil {
			return errors.New("no log writer provided")
		}
		run.log = w
		return nil
	}
}

// WithDefaults sets the search configuration used for any setting the
// manager's init line leaves out.
func WithDefaults(config Config) RunOption {
	return func(run *runner) error {
		run.defaults = config
		return nil
	}
}

// Run speaks the game-manager line protocol on r and w. It announces
// the agent's name, reads the init line, then answers each SCORE round
// with a move until the FINAL round arrives.
//
// The init line is comma-separated: colour (1 dark, 2 light), depth
// limit (-1 for none), minimax flag, caching flag, ordering flag.
// Trailing fields may be omitted, in which case the session defaults
// apply. Each SCORE line is followed by one board line, a list of rows
// of cell values, and is answered with the chosen column and row.
func Run(r io.Reader, w io.Writer, options ...RunOption) error {
	run := &runner{}
	defaults := []RunOption{
		func(run *runner) error {
			if run.name == "" {
				run.name = "Arcon Othello"
			}
			return nil
		},
		func(run *runner) error {
			if run.log == nil {
				run.log = io.Discard
			}
			return nil
		},
	}
	for _, option := range append(options, defaults...) {
		if err := option(run); err != nil {
			return err
		}
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	fmt.Fprintln(w, run.name)

	agent, err := run.handshake(scanner)
	if err != nil {
		return err
	}

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 3 {
			return fmt.Errorf("malformed status line %q", scanner.Text())
		}
		if fields[0] == "FINAL" {
			fmt.Fprintf(run.log, "final score %s-%s\n", fields[1], fields[2])
			return nil
		}
		if fields[0] != "SCORE" {
			return fmt.Errorf("unexpected status %q", fields[0])
		}
		if !scanner.Scan() {
			return errors.New("stream ended before the board line")
		}
		board, err := ParseBoard(scanner.Text())
		if err != nil {
			return err
		}
		move, err := agent.SelectMove(board)
		if err != nil {
			return fmt.Errorf("score %s-%s: %w", fields[1], fields[2], err)
		}
		fmt.Fprintf(w, "%d %d\n", move.Col, move.Row)
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return errors.New("stream ended before the final round")
}

// handshake reads the init line and builds the session's agent.
func (run *runner) handshake(scanner *bufio.Scanner) (*Agent, error) {
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, errors.New("stream ended before the init line")
	}
	fields := strings.Split(strings.TrimSpace(scanner.Text()), ",")
	if len(fields) == 0 || len(fields) > 5 {
		return nil, fmt.Errorf("malformed init line %q", scanner.Text())
	}
	values := make([]int, len(fields))
	for i, field := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("malformed init line %q: %w", scanner.Text(), err)
		}
		values[i] = v
	}

	colour := Player(values[0])
	config := run.defaults
	if len(values) > 1 {
		config.Depth = values[1]
	}
	if len(values) > 2 {
		config.UseAlphaBeta = values[2] != 1
	}
	if len(values) > 3 {
		config.Caching = values[3] == 1
	}
	if len(values) > 4 {
		config.Ordering = values[4] == 1
	}

	agent, err := NewAgent(colour, config)
	if err != nil {
		return nil, err
	}

	if config.UseAlphaBeta {
		fmt.Fprintln(run.log, "running alpha-beta")
	} else {
		fmt.Fprintln(run.log, "running minimax")
	}
	fmt.Fprintf(run.log, "state caching %s\n", onOff(config.Caching))
	fmt.Fprintf(run.log, "node ordering %s\n", onOff(config.Ordering))
	if config.Depth <= 0 {
		fmt.Fprintln(run.log, "no depth limit")
	} else {
		fmt.Fprintf(run.log, "depth limit %d\n", config.Depth)
	}
	return agent, nil
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}
