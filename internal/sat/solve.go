package sat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-air/gini"
	"github.com/go-air/gini/inter"

	"github.com/puzzleframe/arcon/pkg/arcon"
)

var ErrIncomplete = errors.New("cancelled before a result could be found")

// NotSatisfiable is an error composed of the reasons, one per failed
// assumption, that make a solution impossible.
type NotSatisfiable []string

func (e NotSatisfiable) Error() string {
	const msg = "csp not satisfiable"
	if len(e) == 0 {
		return msg
	}
	return fmt.Sprintf("%s: %s", msg, strings.Join(e, ", "))
}

// Assignment maps every variable of a satisfiable CSP to its value.
type Assignment map[*arcon.Variable]int

// Value returns the value assigned to v.
func (a Assignment) Value(v *arcon.Variable) (int, bool) {
	val, ok := a[v]
	return val, ok
}

type Solver interface {
	Solve(ctx context.Context) (Assignment, error)
}

type solver struct {
	g      inter.S
	litMap *litMapping
}

const (
	satisfiable   = 1
	unsatisfiable = -1
	unknown       = 0
)

// New returns a Solver deciding csp by direct SAT encoding. The formula
// is built once, over the CSP's current domains at construction time.
func New(csp *arcon.CSP) (Solver, error) {
	if csp == nil {
		return nil, errors.New("no csp provided")
	}
	return &solver{
		g:      gini.New(),
		litMap: newLitMapping(csp),
	}, nil
}

// Solve returns a full assignment satisfying every constraint, or a
// NotSatisfiable error naming the reasons none exists.
func (s *solver) Solve(ctx context.Context) (Assignment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if reasons := s.litMap.TriviallyUnsatisfiable(); len(reasons) > 0 {
		return nil, NotSatisfiable(reasons)
	}

	s.litMap.AddConstraints(s.g)
	s.litMap.AssumeConstraints(s.g)

	switch s.g.Solve() {
	case satisfiable:
		return s.litMap.Assignment(s.g), nil
	case unsatisfiable:
		return nil, NotSatisfiable(s.litMap.Conflicts(s.g))
	}
	return nil, ErrIncomplete
}
