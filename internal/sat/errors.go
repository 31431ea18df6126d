package sat

import "fmt"

// ContractError marks a programmer contract violation: a call the solver's
// API cannot satisfy for any input, as opposed to an UNSAT/UNKNOWN outcome
// produced by a valid input. The teacher solver used log.Fatalln for these
// same conditions (e.g. Simplify below level 0); panicking with a typed error
// instead lets a caller recover at a boundary of its choosing rather than
// killing the process.
type ContractError struct {
	Op  string
	Msg string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("sat: %s: %s", e.Op, e.Msg)
}

func contractViolation(op, format string, args ...any) {
	panic(&ContractError{Op: op, Msg: fmt.Sprintf(format, args...)})
}
