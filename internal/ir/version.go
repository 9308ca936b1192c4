package ir

// Version constants for the persisted state shape and the engine.
const (
	// StateVersion is the version of the persisted {state, history} shape.
	StateVersion = "1"

	// EngineVersion is the rankr engine version.
	EngineVersion = "0.1.0"
)
