package solver

import "fmt"

// DomainError reports an attempt to build a CDCL input from a clause
// list that is not a 3-CNF.
type DomainError struct {
	Msg string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("domain error: %s", e.Msg)
}

// InvariantError reports a broken solver invariant. It is only ever
// raised when a solver runs with checks enabled.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("solver invariant violated: %s", e.Msg)
}
