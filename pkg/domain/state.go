package domain

// State represents the full snapshot of one calculator session.
//
// The display invariant holds at every operation boundary: Display mirrors
// Input while an expression is being entered, Result right after a successful
// calculation, and EmptyDisplay when both are empty. It is never stale.
type State struct {
	// SessionID identifies the session in a StateStore. Empty for
	// throwaway, non-persisted sessions.
	SessionID string `json:"session_id,omitempty"`

	// Input is the raw accumulated expression string.
	Input string `json:"input"`

	// Result is the display string of the last successful calculation,
	// or empty while an expression is being entered.
	Result string `json:"result"`

	// Display is what the calculator currently shows.
	Display string `json:"display"`

	// Mode selects how trig function arguments are interpreted.
	Mode TrigMode `json:"mode"`

	// Memory maps single-letter slot names to stored decimal strings.
	Memory Bank `json:"memory"`

	// History is the capped, most-recent-first calculation ledger.
	History Ledger `json:"history"`

	// Keypad modifier flags.
	Shift      bool `json:"shift"`
	Inverse    bool `json:"inverse"`
	Hyperbolic bool `json:"hyperbolic"`

	// Precision is the display precision in significant digits.
	Precision int `json:"precision"`

	// Err holds the last user-visible error message, empty when none.
	Err string `json:"error,omitempty"`
}

// NewState creates a fresh session with startup defaults: DEG mode, empty
// input/result/memory/history, display showing "0".
func NewState(sessionID string) *State {
	return &State{
		SessionID: sessionID,
		Display:   EmptyDisplay,
		Mode:      ModeDeg,
		Memory:    make(Bank),
		History:   Ledger{},
		Precision: DefaultPrecision,
	}
}
