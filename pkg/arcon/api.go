package arcon

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyAssigned is returned by Variable.Assign when the variable
	// already holds an assignment.
	ErrAlreadyAssigned = errors.New("variable already assigned")

	// ErrNotAssigned is returned by Variable.Unassign when the variable
	// holds no assignment.
	ErrNotAssigned = errors.New("variable not assigned")

	// ErrValueNotInDomain is returned by Variable.Assign when the value is
	// outside the variable's current domain.
	ErrValueNotInDomain = errors.New("value not in current domain")
)

// DuplicateVariable is an error indicating that two variables with the
// same name were added to a CSP.
type DuplicateVariable string

func (e DuplicateVariable) Error() string {
	return fmt.Sprintf("duplicate variable %q in csp", string(e))
}

// Pruning records the removal of a single value from a variable's current
// domain. Propagators report every pruning they perform, in order, so the
// search driver can undo them exactly on backtrack.
type Pruning struct {
	Variable *Variable
	Value    int
}

// String implements fmt.Stringer and returns a human-readable message
// representing the receiver.
func (p Pruning) String() string {
	return fmt.Sprintf("%s!=%d", p.Variable.Name(), p.Value)
}

// Propagator values prune variable domains after each assignment the
// search driver makes. Propagate receives the variable assigned
// immediately before the call, or nil for the one pre-search call, and
// returns whether the CSP remains consistent together with the complete
// ordered list of prunings performed. On an inconsistent result the list
// still contains everything pruned up to the point of failure, and no
// (variable, value) pair ever appears twice.
type Propagator interface {
	Propagate(csp *CSP, newly *Variable) (bool, []Pruning)
	String() string
}
