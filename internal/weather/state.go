// Package weather resolves the current weather condition for the player's
// location. It is consulted once at startup; the game treats the result as a
// possibly stale hint for the sky colour.
package weather

// Condition is the primary weather category reported by the remote service.
// The set is open-ended; only Rain and Snow are drawn differently.
type Condition string

// Known conditions.
const (
	Clear Condition = "Clear"
	Rain  Condition = "Rain"
	Snow  Condition = "Snow"
)

// UnknownPlace is shown until a lookup names the location.
const UnknownPlace = "Unknown"

// Report is the outcome of one resolve attempt.
// Err is non-nil when the lookup failed; Condition is then Clear.
type Report struct {
	Condition Condition
	Place     string
	Err       error
}

// State is the weather as seen by the game loop.
type State struct {
	Condition Condition
	Place     string
}

// NewState returns the state used before any lookup completes.
func NewState() State {
	return State{Condition: Clear, Place: UnknownPlace}
}

// Apply merges a report. A failed or empty report resets the condition to
// Clear and leaves the place untouched.
func (s *State) Apply(r Report) {
	if r.Err != nil || r.Condition == "" {
		s.Condition = Clear
		return
	}
	s.Condition = r.Condition
	if r.Place != "" {
		s.Place = r.Place
	}
}
