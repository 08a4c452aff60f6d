package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimerStateNamesRoundTrip(t *testing.T) {
	for _, state := range []TimerState{StateIdle, StateRunning, StatePaused, StateFinished} {
		parsed, ok := ParseTimerState(state.String())
		assert.True(t, ok, state.String())
		assert.Equal(t, state, parsed)
	}
}

func TestParseTimerStateUnknown(t *testing.T) {
	for _, name := range []string{"", "running", "Stopped", "TimerState(?)"} {
		state, ok := ParseTimerState(name)
		assert.False(t, ok, name)
		assert.Equal(t, StateIdle, state)
	}
}

func TestDefaults(t *testing.T) {
	assert.Equal(t, TimerRecord{RemainingMillis: 30000, State: StateIdle}, DefaultTimerRecord())
	assert.Equal(t, Preferences{UseSystemTheme: true}, DefaultPreferences())
	assert.Equal(t, BackendBolt, DefaultConfig().Backend)
}
