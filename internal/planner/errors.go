package planner

import (
	"fmt"
	"strings"

	"ah-mealplanner/internal/catalog"
)

// InsufficientCandidatesError reports that no viable recipe or product was
// left for a day after exclusion filtering. It carries the day so range
// callers can report exactly which dates failed.
type InsufficientCandidatesError struct {
	Date       string
	Exclusions []string
}

func (e *InsufficientCandidatesError) Error() string {
	if len(e.Exclusions) == 0 {
		return fmt.Sprintf("no viable candidates for %s", e.Date)
	}
	return fmt.Sprintf("no viable candidates for %s with exclusions [%s]",
		e.Date, strings.Join(e.Exclusions, ", "))
}

// Unwrap makes errors.Is(err, catalog.ErrNoCandidates) work.
func (e *InsufficientCandidatesError) Unwrap() error {
	return catalog.ErrNoCandidates
}

// InvalidTargetError rejects a malformed planning request before any
// planning starts.
type InvalidTargetError struct {
	Reason string
}

func (e *InvalidTargetError) Error() string {
	return "invalid planning target: " + e.Reason
}
