package ir

import "fmt"

// ValidationError describes a structural problem in a loaded state.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid sort state: %s: %s", e.Field, e.Message)
}

// ValidateState checks the structural invariants a published SortState
// must satisfy. It is meant for states coming from storage; states produced
// by the engine always pass.
func ValidateState(s SortState) error {
	for i, g := range s.Arr {
		if g == nil {
			return &ValidationError{Field: fmt.Sprintf("arr[%d]", i), Message: "group is null"}
		}
	}

	if s.CurrentSize < 1 {
		return &ValidationError{Field: "currentSize", Message: fmt.Sprintf("must be >= 1, got %d", s.CurrentSize)}
	}
	if s.LeftStart < 0 {
		return &ValidationError{Field: "leftStart", Message: fmt.Sprintf("must be >= 0, got %d", s.LeftStart)}
	}

	switch s.Status {
	case StatusPaused, StatusWaiting, StatusDone, StatusEnd:
	default:
		return &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", s.Status)}
	}

	if (s.Status == StatusEnd) != (s.MergeState == nil) {
		return &ValidationError{Field: "mergeState", Message: "must be absent exactly when status is end"}
	}
	if s.MergeState == nil {
		return nil
	}

	m := s.MergeState
	n := len(s.Arr)
	if m.Start < 0 || m.Start > m.Mid || m.Mid > m.End || m.End >= n {
		return &ValidationError{
			Field:   "mergeState",
			Message: fmt.Sprintf("bounds start=%d mid=%d end=%d out of range for %d groups", m.Start, m.Mid, m.End, n),
		}
	}
	if !m.Started() {
		return nil
	}
	if len(m.LeftArr) != m.Mid-m.Start+1 || len(m.RightArr) != m.End-m.Mid {
		return &ValidationError{Field: "mergeState", Message: "run snapshots do not match bounds"}
	}
	if m.LeftArrIdx < 0 || m.LeftArrIdx > len(m.LeftArr) {
		return &ValidationError{Field: "mergeState.leftArrIdx", Message: fmt.Sprintf("%d out of range", m.LeftArrIdx)}
	}
	if m.RightArrIdx < 0 || m.RightArrIdx > len(m.RightArr) {
		return &ValidationError{Field: "mergeState.rightArrIdx", Message: fmt.Sprintf("%d out of range", m.RightArrIdx)}
	}
	if m.ArrIdx != m.Start+m.LeftArrIdx+m.RightArrIdx {
		return &ValidationError{Field: "mergeState.arrIdx", Message: fmt.Sprintf("%d inconsistent with run cursors", m.ArrIdx)}
	}
	return nil
}

// ValidateSnapshot validates the current state and every history entry.
func ValidateSnapshot(s Snapshot) error {
	if err := ValidateState(s.State); err != nil {
		return fmt.Errorf("state: %w", err)
	}
	for i, h := range s.History {
		if err := ValidateState(h); err != nil {
			return fmt.Errorf("history[%d]: %w", i, err)
		}
	}
	return nil
}
