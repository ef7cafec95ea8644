package engine

import (
	"fmt"
	"strings"
)

// InvalidSquadError signals that the squad supplied by the squad state
// provider fails validation before any search starts. No repair is attempted;
// the caller owns re-fetching fresh squad data.
type InvalidSquadError struct {
	Violations []ViolationKind
}

func (e *InvalidSquadError) Error() string {
	kinds := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		kinds[i] = string(v)
	}
	return fmt.Sprintf("current squad is not legal: %s", strings.Join(kinds, ", "))
}

// InsufficientDataError signals that the candidate pool is empty or a player
// record is missing attributes required for scoring. Never defaulted to zero.
type InsufficientDataError struct {
	Reason string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data for optimization: %s", e.Reason)
}
