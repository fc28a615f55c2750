package allocation

import (
	"errors"
	"fmt"
)

// ErrEmptyGroup is returned when no metric records survive input joining;
// there is nothing to distribute the pool over.
var ErrEmptyGroup = errors.New("allocation: no metric records in group")

// ErrInvalidConfig is returned when the configuration fails semantic
// validation. It is always wrapped with detail.
var ErrInvalidConfig = errors.New("allocation: invalid config")

// ReconciliationError is returned when the rounding residual exceeds the
// tolerance even after the proportional re-correction pass. It indicates a
// configuration or data bug, such as a non-positive pool.
type ReconciliationError struct {
	Residual  int64
	Tolerance int64
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("allocation: unreconciled residual %d exceeds tolerance %d", e.Residual, e.Tolerance)
}
