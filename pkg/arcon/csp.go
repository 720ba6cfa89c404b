package arcon

import (
	"fmt"
)

// CSP aggregates the variables and constraints of one problem instance
// and indexes constraints by the variables in their scope.
type CSP struct {
	name        string
	variables   []*Variable
	constraints []*Constraint
	byName      map[string]*Variable
	byVariable  map[*Variable][]*Constraint
}

// NewCSP returns a CSP holding the given variables. Variable names must
// be unique.
func NewCSP(name string, vars ...*Variable) (*CSP, error) {
	c := &CSP{
		name:       name,
		byName:     make(map[string]*Variable),
		byVariable: make(map[*Variable][]*Constraint),
	}
	for _, v := range vars {
		if err := c.AddVariable(v); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Name returns the CSP's name.
func (c *CSP) Name() string {
	return c.name
}

// AddVariable adds v to the CSP. It fails if a variable with the same
// name is already present.
func (c *CSP) AddVariable(v *Variable) error {
	if _, ok := c.byName[v.Name()]; ok {
		return DuplicateVariable(v.Name())
	}
	c.byName[v.Name()] = v
	c.byVariable[v] = nil
	c.variables = append(c.variables, v)
	return nil
}

// AddConstraint adds con to the CSP and indexes it under every variable
// in its scope. Every scope variable must already be in the CSP.
func (c *CSP) AddConstraint(con *Constraint) error {
	for _, v := range con.scope {
		if _, ok := c.byVariable[v]; !ok {
			return fmt.Errorf("constraint %q: scope variable %q not in csp %q", con.Name(), v.Name(), c.name)
		}
	}
	c.constraints = append(c.constraints, con)
	seen := make(map[*Variable]struct{}, len(con.scope))
	for _, v := range con.scope {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		c.byVariable[v] = append(c.byVariable[v], con)
	}
	return nil
}

// Variables returns a copy of the CSP's variables in insertion order.
func (c *CSP) Variables() []*Variable {
	return append([]*Variable(nil), c.variables...)
}

// UnassignedVariables returns the currently unassigned variables in
// insertion order.
func (c *CSP) UnassignedVariables() []*Variable {
	var vars []*Variable
	for _, v := range c.variables {
		if !v.Assigned() {
			vars = append(vars, v)
		}
	}
	return vars
}

// Constraints returns a copy of the CSP's constraints in insertion order.
func (c *CSP) Constraints() []*Constraint {
	return append([]*Constraint(nil), c.constraints...)
}

// ConstraintsWith returns the constraints whose scope contains v.
func (c *CSP) ConstraintsWith(v *Variable) []*Constraint {
	return append([]*Constraint(nil), c.byVariable[v]...)
}
