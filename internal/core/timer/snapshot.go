package timer

import "simpletimer/internal/core/model"

// ErrorMessage is an optional user-visible validation message.
// The zero value carries no message.
type ErrorMessage struct {
	text    string
	present bool
}

// NoError is the empty ErrorMessage.
func NoError() ErrorMessage {
	return ErrorMessage{}
}

// ErrorText wraps a message to show to the user.
func ErrorText(text string) ErrorMessage {
	return ErrorMessage{text: text, present: true}
}

// Get returns the message and whether one is set.
func (message ErrorMessage) Get() (string, bool) {
	return message.text, message.present
}

// IsSet reports whether a message is present.
func (message ErrorMessage) IsSet() bool {
	return message.present
}

// String returns the message text, or "" when none is set.
func (message ErrorMessage) String() string {
	return message.text
}

// Snapshot is one published value of the timer state. Snapshots are values:
// observers receive copies and the engine replaces its own in one assignment.
type Snapshot struct {
	InputMinutes    string
	InputSeconds    string
	State           model.TimerState
	RemainingMillis int64
	Error           ErrorMessage
	JustFinished    bool

	KeepScreenOn    bool
	UseSystemTheme  bool
	DarkThemeManual bool
}

// DefaultSnapshot is the engine's initial value: 00:30, idle.
func DefaultSnapshot() Snapshot {
	prefs := model.DefaultPreferences()
	return Snapshot{
		InputMinutes:    "00",
		InputSeconds:    "30",
		State:           model.StateIdle,
		RemainingMillis: model.DefaultRemainingMillis,
		KeepScreenOn:    true,
		UseSystemTheme:  prefs.UseSystemTheme,
		DarkThemeManual: prefs.DarkThemeManual,
	}
}

// RemainingFormatted renders RemainingMillis as MM:SS.
func (snapshot Snapshot) RemainingFormatted() string {
	return FormatMillis(snapshot.RemainingMillis)
}

// Record returns the persisted timing fields.
func (snapshot Snapshot) Record() model.TimerRecord {
	return model.TimerRecord{RemainingMillis: snapshot.RemainingMillis, State: snapshot.State}
}

// Preferences returns the persisted theme fields.
func (snapshot Snapshot) Preferences() model.Preferences {
	return model.Preferences{
		UseSystemTheme:  snapshot.UseSystemTheme,
		DarkThemeManual: snapshot.DarkThemeManual,
	}
}
