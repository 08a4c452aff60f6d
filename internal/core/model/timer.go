package model

// TimerState is the countdown mode.
type TimerState int

const (
	StateIdle TimerState = iota
	StateRunning
	StatePaused
	StateFinished
)

var stateNames = [...]string{
	StateIdle:     "Idle",
	StateRunning:  "Running",
	StatePaused:   "Paused",
	StateFinished: "Finished",
}

// String returns the persisted name of the state.
func (state TimerState) String() string {
	if !state.Valid() {
		return "TimerState(?)"
	}
	return stateNames[state]
}

// Valid reports whether state is one of the four declared variants.
func (state TimerState) Valid() bool {
	return state >= StateIdle && state <= StateFinished
}

// ParseTimerState maps a persisted name back to a state.
// ok is false for unknown names.
func ParseTimerState(name string) (TimerState, bool) {
	for index, candidate := range stateNames {
		if candidate == name {
			return TimerState(index), true
		}
	}
	return StateIdle, false
}

// DefaultRemainingMillis is the 00:30 countdown used on first run.
const DefaultRemainingMillis int64 = 30_000

// TimerRecord is the durable mirror of the live timing fields.
type TimerRecord struct {
	RemainingMillis int64
	State           TimerState
}

// DefaultTimerRecord is returned when nothing has been persisted yet.
func DefaultTimerRecord() TimerRecord {
	return TimerRecord{RemainingMillis: DefaultRemainingMillis, State: StateIdle}
}

// Preferences is the durable theme selection.
type Preferences struct {
	UseSystemTheme  bool
	DarkThemeManual bool
}

// DefaultPreferences follows the device theme.
func DefaultPreferences() Preferences {
	return Preferences{UseSystemTheme: true, DarkThemeManual: false}
}
