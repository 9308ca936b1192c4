package ir

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStateAccepts(t *testing.T) {
	tests := []struct {
		name  string
		state SortState
	}{
		{"paused", pausedState()},
		{"ended", SortState{Arr: []Group{{"a"}}, CurrentSize: 1, Status: StatusEnd}},
		{"empty", SortState{Arr: []Group{}, CurrentSize: 1, Status: StatusEnd}},
		{"not started", SortState{
			Arr:         []Group{{"a"}, {"b"}},
			CurrentSize: 1,
			Status:      StatusWaiting,
			MergeState:  &MergeState{Start: 0, Mid: 0, End: 1},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, ValidateState(tt.state))
		})
	}
}

func TestValidateStateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SortState)
		field  string
	}{
		{"null group", func(s *SortState) { s.Arr[2] = nil }, "arr[2]"},
		{"zero size", func(s *SortState) { s.CurrentSize = 0 }, "currentSize"},
		{"negative left start", func(s *SortState) { s.LeftStart = -1 }, "leftStart"},
		{"unknown status", func(s *SortState) { s.Status = "sleeping" }, "status"},
		{"end with merge", func(s *SortState) { s.Status = StatusEnd }, "mergeState"},
		{"bounds", func(s *SortState) { s.MergeState.End = 5 }, "mergeState"},
		{"snapshot length", func(s *SortState) { s.MergeState.RightArr = []Group{{"b"}, {"c"}} }, "mergeState"},
		{"left cursor", func(s *SortState) { s.MergeState.LeftArrIdx = 2 }, "mergeState.leftArrIdx"},
		{"right cursor", func(s *SortState) { s.MergeState.RightArrIdx = -1 }, "mergeState.rightArrIdx"},
		{"arr cursor", func(s *SortState) { s.MergeState.ArrIdx = 1 }, "mergeState.arrIdx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := pausedState()
			tt.mutate(&s)

			err := ValidateState(s)
			require.Error(t, err)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestValidateStateMissingMergeState(t *testing.T) {
	s := SortState{Arr: []Group{{"a"}, {"b"}}, CurrentSize: 1}
	assert.Error(t, ValidateState(s))
}

func TestValidateSnapshotReportsHistoryIndex(t *testing.T) {
	bad := pausedState()
	bad.CurrentSize = 0
	snap := Snapshot{State: pausedState(), History: []SortState{pausedState(), bad}}

	err := ValidateSnapshot(snap)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "history[1]")
}
