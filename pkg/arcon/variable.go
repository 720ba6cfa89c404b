package arcon

import (
	"fmt"
	"strings"
)

// Variable is a finite-domain variable. Its original domain is fixed at
// construction; its current domain shrinks as propagators prune values
// and grows back only through the Restore calls the search driver makes
// while backtracking. Assignment state is owned by the driver: while a
// variable is assigned, its current domain is reported as the single
// assigned value.
type Variable struct {
	name      string
	domain    []int
	index     map[int]int
	live      []bool
	liveCount int
	assigned  bool
	value     int
}

// NewVariable returns a variable with the given name and original domain.
// Duplicate domain values are dropped; order is preserved.
func NewVariable(name string, domain []int) *Variable {
	v := &Variable{
		name:  name,
		index: make(map[int]int, len(domain)),
	}
	for _, val := range domain {
		if _, ok := v.index[val]; ok {
			continue
		}
		v.index[val] = len(v.domain)
		v.domain = append(v.domain, val)
		v.live = append(v.live, true)
	}
	v.liveCount = len(v.domain)
	return v
}

// Name returns the variable's name, unique within its CSP.
func (v *Variable) Name() string {
	return v.name
}

// OriginalDomain returns a copy of the full domain in construction order.
func (v *Variable) OriginalDomain() []int {
	return append([]int(nil), v.domain...)
}

// CurrentDomain returns the values currently available to the variable,
// in original-domain order. While the variable is assigned this is
// exactly the assigned value.
func (v *Variable) CurrentDomain() []int {
	if v.assigned {
		return []int{v.value}
	}
	vals := make([]int, 0, v.liveCount)
	for i, val := range v.domain {
		if v.live[i] {
			vals = append(vals, val)
		}
	}
	return vals
}

// CurrentDomainSize returns the number of values in the current domain.
func (v *Variable) CurrentDomainSize() int {
	if v.assigned {
		return 1
	}
	return v.liveCount
}

// InCurrentDomain reports whether val is in the current domain.
func (v *Variable) InCurrentDomain(val int) bool {
	i, ok := v.index[val]
	if !ok {
		return false
	}
	if v.assigned {
		return val == v.value
	}
	return v.live[i]
}

// Prune removes val from the current domain and reports whether it was
// still present. Callers rely on the report to record each pruning
// exactly once.
func (v *Variable) Prune(val int) bool {
	i, ok := v.index[val]
	if !ok || !v.live[i] {
		return false
	}
	v.live[i] = false
	v.liveCount--
	return true
}

// Restore returns a previously pruned val to the current domain. It is
// called only by the search driver while undoing prunings.
func (v *Variable) Restore(val int) {
	i, ok := v.index[val]
	if !ok || v.live[i] {
		return
	}
	v.live[i] = true
	v.liveCount++
}

// RestoreAll resets the current domain to the full original domain.
func (v *Variable) RestoreAll() {
	for i := range v.live {
		v.live[i] = true
	}
	v.liveCount = len(v.domain)
}

// Assign fixes the variable to val. It fails if the variable is already
// assigned or val is not in the current domain.
func (v *Variable) Assign(val int) error {
	if v.assigned {
		return fmt.Errorf("assign %s=%d: %w", v.name, val, ErrAlreadyAssigned)
	}
	if !v.InCurrentDomain(val) {
		return fmt.Errorf("assign %s=%d: %w", v.name, val, ErrValueNotInDomain)
	}
	v.assigned = true
	v.value = val
	return nil
}

// Unassign clears the assignment set by Assign.
func (v *Variable) Unassign() error {
	if !v.assigned {
		return fmt.Errorf("unassign %s: %w", v.name, ErrNotAssigned)
	}
	v.assigned = false
	v.value = 0
	return nil
}

// Assigned reports whether the variable currently holds an assignment.
func (v *Variable) Assigned() bool {
	return v.assigned
}

// AssignedValue returns the assigned value, if any.
func (v *Variable) AssignedValue() (int, bool) {
	if !v.assigned {
		return 0, false
	}
	return v.value, true
}

// String implements fmt.Stringer and returns a human-readable message
// representing the receiver.
func (v *Variable) String() string {
	if v.assigned {
		return fmt.Sprintf("%s=%d", v.name, v.value)
	}
	cur := v.CurrentDomain()
	vals := make([]string, len(cur))
	for i, val := range cur {
		vals[i] = fmt.Sprint(val)
	}
	return fmt.Sprintf("%s{%s}", v.name, strings.Join(vals, ","))
}
