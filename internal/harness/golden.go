package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/rankr/internal/ir"
)

// TraceSnapshot captures the observable outcome of a scenario execution.
// All fields use canonical JSON serialization for deterministic comparison.
type TraceSnapshot struct {
	ScenarioName string
	Trace        []TraceEvent
	Ranking      []ir.Group
	Comparisons  int
	Undos        int
	HistoryLen   int
	Ended        bool
}

// toCanonicalMap converts a TraceSnapshot to a map[string]any for canonical JSON serialization.
// This is required because ir.MarshalCanonical only handles IR types and primitives.
func (s *TraceSnapshot) toCanonicalMap() map[string]any {
	traceList := make([]any, len(s.Trace))
	for i, event := range s.Trace {
		eventMap := map[string]any{
			"seq": event.Seq,
			"op":  event.Op,
		}
		if len(event.Left) > 0 {
			eventMap["left"] = event.Left
		}
		if len(event.Right) > 0 {
			eventMap["right"] = event.Right
		}
		traceList[i] = eventMap
	}

	ranking := s.Ranking
	if ranking == nil {
		ranking = []ir.Group{}
	}

	return map[string]any{
		"name":        s.ScenarioName,
		"trace":       traceList,
		"ranking":     ranking,
		"comparisons": s.Comparisons,
		"undos":       s.Undos,
		"history_len": s.HistoryLen,
		"ended":       s.Ended,
	}
}

// CanonicalTrace returns the canonical JSON form of a result, as stored in
// golden files.
func CanonicalTrace(name string, result *Result) ([]byte, error) {
	snapshot := TraceSnapshot{
		ScenarioName: name,
		Trace:        result.Trace,
		Ranking:      result.Ranking,
		Comparisons:  result.Comparisons,
		Undos:        result.Undos,
		HistoryLen:   result.HistoryLen,
		Ended:        result.Ended,
	}
	return ir.MarshalCanonical(snapshot.toCanonicalMap())
}

// RunWithGolden executes a scenario and compares the trace against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if trace doesn't match golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares the given result's trace against a golden file.
// This is useful when you've already run a scenario and want to compare
// the result against a golden file without re-running.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	traceJSON, err := CanonicalTrace(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, traceJSON)

	return nil
}
