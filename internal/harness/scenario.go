package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/rankr/internal/ir"
	"github.com/roach88/rankr/internal/testutil"
)

// Scenario defines a scripted ranking run.
type Scenario struct {
	// Name uniquely identifies this scenario. It names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Items is the initial order handed to the engine.
	Items []ir.Item `yaml:"items"`

	// MaxHistory caps the undo history. Zero means the session default.
	MaxHistory int `yaml:"max_history,omitempty"`

	// Steps are explicit operations applied before the strategy runs:
	// left, right, tie or undo.
	Steps []string `yaml:"steps,omitempty"`

	// Strategy answers every comparison left after Steps. Without one the
	// run stops after Steps.
	Strategy *Strategy `yaml:"strategy,omitempty"`

	// Assertions validate the final outcome.
	Assertions []Assertion `yaml:"assertions"`

	// SessionID is an optional fixed session ID.
	// Defaults to "test-session-default".
	SessionID string `yaml:"session_id,omitempty"`
}

// Strategy decides comparisons from a known true order.
// Exactly one field must be set.
type Strategy struct {
	// Order lists every item, best first.
	Order []ir.Item `yaml:"order,omitempty"`

	// Keys maps every item to a rank key; lower is better and equal keys tie.
	Keys map[ir.Item]int `yaml:"keys,omitempty"`

	// Tie answers every comparison with a tie.
	Tie bool `yaml:"tie,omitempty"`
}

// Assertion validates the outcome of a run.
type Assertion struct {
	// Type specifies the assertion type:
	// - "ranking": final ranking equals Ranking, placeholders removed
	// - "comparisons": exactly Count decisions were applied
	// - "within_bound": decisions do not exceed the merge-sort worst case
	// - "history_len": the undo history holds Count states
	// - "undos": exactly Count undos were applied
	// - "ended": the ranking is complete
	// - "pending": the ranking is not complete
	Type string `yaml:"type"`

	// Ranking is the expected ranking (used by ranking).
	Ranking [][]ir.Item `yaml:"ranking,omitempty"`

	// Count is the expected number (used by comparisons, history_len, undos).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertRanking     = "ranking"
	AssertComparisons = "comparisons"
	AssertWithinBound = "within_bound"
	AssertHistoryLen  = "history_len"
	AssertUndos       = "undos"
	AssertEnded       = "ended"
	AssertPending     = "pending"
)

// StepUndo is the step name for an undo.
const StepUndo = "undo"

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.MaxHistory < 0 {
		return fmt.Errorf("max_history must be non-negative")
	}

	seen := make(map[ir.Item]bool, len(s.Items))
	for i, item := range s.Items {
		if item == "" {
			return fmt.Errorf("items[%d]: empty item", i)
		}
		if seen[item] {
			return fmt.Errorf("items[%d]: duplicate item %q", i, item)
		}
		seen[item] = true
	}

	for i, step := range s.Steps {
		if step == StepUndo {
			continue
		}
		if _, err := ir.ParseDecision(step); err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
	}

	if s.Strategy != nil {
		if err := validateStrategy(s.Strategy, s.Items); err != nil {
			return fmt.Errorf("strategy: %w", err)
		}
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateStrategy checks that exactly one strategy is set and that it
// covers every item, so the oracle never meets an unknown item.
func validateStrategy(st *Strategy, items []ir.Item) error {
	set := 0
	if len(st.Order) > 0 {
		set++
	}
	if len(st.Keys) > 0 {
		set++
	}
	if st.Tie {
		set++
	}
	if set != 1 {
		return fmt.Errorf("exactly one of order, keys or tie is required")
	}

	switch {
	case len(st.Order) > 0:
		ranked := make(map[ir.Item]bool, len(st.Order))
		for _, item := range st.Order {
			ranked[item] = true
		}
		for _, item := range items {
			if !ranked[item] {
				return fmt.Errorf("order is missing item %q", item)
			}
		}
	case len(st.Keys) > 0:
		for _, item := range items {
			if _, ok := st.Keys[item]; !ok {
				return fmt.Errorf("keys is missing item %q", item)
			}
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertRanking:
		if a.Ranking == nil {
			return fmt.Errorf("assertions[%d]: ranking is required for ranking", index)
		}
	case AssertComparisons, AssertHistoryLen, AssertUndos:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for %s", index, a.Type)
		}
	case AssertWithinBound, AssertEnded, AssertPending:
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}

// oracle builds the comparison oracle for a validated strategy.
func (st *Strategy) oracle() testutil.Oracle {
	switch {
	case len(st.Order) > 0:
		return testutil.InOrder(st.Order)
	case len(st.Keys) > 0:
		return testutil.ByRank(st.Keys)
	default:
		return testutil.AlwaysTie()
	}
}
