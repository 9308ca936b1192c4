package harness

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/roach88/rankr/internal/engine"
	"github.com/roach88/rankr/internal/ir"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for _, event := range e.Trace {
		if event.Op == StepUndo {
			fmt.Fprintf(&buf, "  [%d] undo\n", event.Seq)
			continue
		}
		fmt.Fprintf(&buf, "  [%d] %s %v vs %v\n", event.Seq, event.Op, event.Left, event.Right)
	}

	return buf.String()
}

// assertRanking compares the final ranking group by group. Items within a
// group must match in order.
func assertRanking(result *Result, assertion Assertion) error {
	want := make([]ir.Group, len(assertion.Ranking))
	for i, g := range assertion.Ranking {
		want[i] = ir.Group(g)
		if want[i] == nil {
			want[i] = ir.Group{}
		}
	}

	if reflect.DeepEqual(want, result.Ranking) {
		return nil
	}
	return &AssertionError{
		Type:     AssertRanking,
		Expected: formatRanking(want),
		Actual:   formatRanking(result.Ranking),
		Trace:    result.Trace,
	}
}

func assertCount(result *Result, assertion Assertion, got int) error {
	if got == assertion.Count {
		return nil
	}
	return &AssertionError{
		Type:     assertion.Type,
		Expected: fmt.Sprintf("%d", assertion.Count),
		Actual:   fmt.Sprintf("%d", got),
		Trace:    result.Trace,
	}
}

// assertWithinBound checks the decision count against the worst case of a
// bottom-up merge sort over itemCount items.
func assertWithinBound(result *Result, itemCount int) error {
	bound := engine.Comparisons(itemCount)
	if result.Comparisons <= bound {
		return nil
	}
	return &AssertionError{
		Type:     AssertWithinBound,
		Expected: fmt.Sprintf("at most %d decisions for %d items", bound, itemCount),
		Actual:   fmt.Sprintf("%d decisions", result.Comparisons),
		Trace:    result.Trace,
	}
}

func assertEnded(result *Result, assertion Assertion) error {
	want := assertion.Type == AssertEnded
	if result.Ended == want {
		return nil
	}
	return &AssertionError{
		Type:     assertion.Type,
		Expected: fmt.Sprintf("ended=%t", want),
		Actual:   fmt.Sprintf("ended=%t", result.Ended),
		Trace:    result.Trace,
	}
}

// formatRanking renders groups as "a > b = c > d".
func formatRanking(groups []ir.Group) string {
	if len(groups) == 0 {
		return "(empty)"
	}
	parts := make([]string, len(groups))
	for i, g := range groups {
		items := make([]string, len(g))
		for j, item := range g {
			items[j] = string(item)
		}
		parts[i] = strings.Join(items, " = ")
	}
	return strings.Join(parts, " > ")
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion, itemCount int) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertRanking:
			err = assertRanking(result, assertion)
		case AssertComparisons:
			err = assertCount(result, assertion, result.Comparisons)
		case AssertHistoryLen:
			err = assertCount(result, assertion, result.HistoryLen)
		case AssertUndos:
			err = assertCount(result, assertion, result.Undos)
		case AssertWithinBound:
			err = assertWithinBound(result, itemCount)
		case AssertEnded, AssertPending:
			err = assertEnded(result, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
