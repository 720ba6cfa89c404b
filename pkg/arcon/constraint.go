package arcon

import (
	"fmt"
	"strconv"
	"strings"
)

type supportKey struct {
	pos int
	val int
}

// Constraint restricts the values a fixed, ordered scope of variables may
// take simultaneously. The restriction is an explicit table of satisfying
// tuples whose positions correspond to scope positions. The table is
// built once during model compilation and is read-only during search; the
// propagation engine mutates variable domains only.
type Constraint struct {
	name     string
	scope    []*Variable
	position map[*Variable]int
	tuples   [][]int
	accept   map[string]struct{}
	supports map[supportKey][][]int
}

// NewConstraint returns a constraint over the given scope with an empty
// satisfying-tuple table. Tuple positions correspond to scope positions.
func NewConstraint(name string, scope []*Variable) *Constraint {
	c := &Constraint{
		name:     name,
		scope:    append([]*Variable(nil), scope...),
		position: make(map[*Variable]int, len(scope)),
		accept:   make(map[string]struct{}),
		supports: make(map[supportKey][][]int),
	}
	for i, v := range c.scope {
		if _, ok := c.position[v]; !ok {
			c.position[v] = i
		}
	}
	return c
}

// AddSatisfyingTuples adds value combinations that satisfy the
// constraint. Every tuple must match the scope's arity and draw each
// value from the corresponding variable's original domain; violating
// tuples fail the whole call. Duplicates are dropped.
func (c *Constraint) AddSatisfyingTuples(tuples [][]int) error {
	for _, t := range tuples {
		if len(t) != len(c.scope) {
			return fmt.Errorf("constraint %q: tuple %v has arity %d, want %d", c.name, t, len(t), len(c.scope))
		}
		for i, val := range t {
			if _, ok := c.scope[i].index[val]; !ok {
				return fmt.Errorf("constraint %q: tuple %v: value %d not in original domain of %s", c.name, t, val, c.scope[i].Name())
			}
		}
		key := tupleKey(t)
		if _, ok := c.accept[key]; ok {
			continue
		}
		cp := append([]int(nil), t...)
		c.accept[key] = struct{}{}
		c.tuples = append(c.tuples, cp)
		for i, val := range cp {
			k := supportKey{pos: i, val: val}
			c.supports[k] = append(c.supports[k], cp)
		}
	}
	return nil
}

// Name returns the constraint's name.
func (c *Constraint) Name() string {
	return c.name
}

// Scope returns a copy of the constraint's scope in order.
func (c *Constraint) Scope() []*Variable {
	return append([]*Variable(nil), c.scope...)
}

// Arity returns the number of variables in the constraint's scope.
func (c *Constraint) Arity() int {
	return len(c.scope)
}

// Check reports whether the scope-ordered value combination vals
// satisfies the constraint.
func (c *Constraint) Check(vals []int) bool {
	if len(vals) != len(c.scope) {
		return false
	}
	_, ok := c.accept[tupleKey(vals)]
	return ok
}

// HasSupport reports whether some satisfying tuple assigns val to v while
// drawing every other position's value from that variable's current
// domain. It returns false when v is not in the constraint's scope.
func (c *Constraint) HasSupport(v *Variable, val int) bool {
	pos, ok := c.position[v]
	if !ok {
		return false
	}
	for _, t := range c.supports[supportKey{pos: pos, val: val}] {
		if c.tupleIsValid(t) {
			return true
		}
	}
	return false
}

func (c *Constraint) tupleIsValid(t []int) bool {
	for i, v := range c.scope {
		if !v.InCurrentDomain(t[i]) {
			return false
		}
	}
	return true
}

// UnassignedCount returns the number of unassigned variables in scope.
func (c *Constraint) UnassignedCount() int {
	n := 0
	for _, v := range c.scope {
		if !v.Assigned() {
			n++
		}
	}
	return n
}

// UnassignedVariables returns the unassigned scope variables in scope
// order.
func (c *Constraint) UnassignedVariables() []*Variable {
	var vars []*Variable
	for _, v := range c.scope {
		if !v.Assigned() {
			vars = append(vars, v)
		}
	}
	return vars
}

// SatisfyingTuples returns a copy of the satisfying-tuple table in
// insertion order.
func (c *Constraint) SatisfyingTuples() [][]int {
	out := make([][]int, len(c.tuples))
	for i, t := range c.tuples {
		out[i] = append([]int(nil), t...)
	}
	return out
}

// String implements fmt.Stringer and returns a human-readable message
// representing the receiver.
func (c *Constraint) String() string {
	names := make([]string, len(c.scope))
	for i, v := range c.scope {
		names[i] = v.Name()
	}
	return fmt.Sprintf("%s(%s)", c.name, strings.Join(names, ","))
}

func tupleKey(vals []int) string {
	var sb strings.Builder
	for i, v := range vals {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(v))
	}
	return sb.String()
}
