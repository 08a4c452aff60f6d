package window

import (
	"strconv"

	"simpletimer/internal/core/model"
	"simpletimer/internal/core/timer"
	"simpletimer/internal/widget"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	fynewidget "fyne.io/fyne/v2/widget"
)

// Engine is the command surface the window drives.
type Engine interface {
	Start()
	Pause()
	Resume()
	Reset()
	UpdateMinutes(text string)
	UpdateSeconds(text string)
	AckFinishHandled()
	SetUseSystemTheme(enabled bool)
	SetDarkThemeManual(dark bool)
	SetKeepScreenOn(enabled bool)
}

// Window is the main timer window.
type Window struct {
	app       fyne.App
	window    fyne.Window
	engine    Engine
	state     model.TimerState
	rendering bool
	lastTheme [2]bool
	announced bool

	minutes      *fynewidget.Entry
	seconds      *fynewidget.Entry
	remaining    *fynewidget.Label
	status       *fynewidget.Label
	errorLabel   *fynewidget.Label
	primary      *fynewidget.Button
	reset        *fynewidget.Button
	systemTheme  *fynewidget.Check
	darkTheme    *fynewidget.Check
	keepScreenOn *fynewidget.Check
}

// New creates the timer window. Callbacks go straight to engine; Render
// must be called on the fyne goroutine.
func New(app fyne.App, engine Engine) *Window {
	window := app.NewWindow(widget.Title)

	timerWindow := &Window{
		app:        app,
		window:     window,
		engine:     engine,
		minutes:    fynewidget.NewEntry(),
		seconds:    fynewidget.NewEntry(),
		remaining:  fynewidget.NewLabelWithStyle("00:30", fyne.TextAlignCenter, fyne.TextStyle{Bold: true, Monospace: true}),
		status:     fynewidget.NewLabelWithStyle("State: Idle", fyne.TextAlignCenter, fyne.TextStyle{}),
		errorLabel: fynewidget.NewLabel(""),
	}

	timerWindow.minutes.SetPlaceHolder("MM")
	timerWindow.seconds.SetPlaceHolder("SS")
	timerWindow.minutes.OnChanged = timerWindow.inputChanged(timerWindow.minutes, engine.UpdateMinutes)
	timerWindow.seconds.OnChanged = timerWindow.inputChanged(timerWindow.seconds, engine.UpdateSeconds)
	timerWindow.errorLabel.Importance = fynewidget.DangerImportance

	timerWindow.primary = fynewidget.NewButton("Start", timerWindow.handlePrimary)
	timerWindow.primary.Importance = fynewidget.HighImportance
	timerWindow.reset = fynewidget.NewButton("Reset", engine.Reset)

	timerWindow.systemTheme = fynewidget.NewCheck("Follow device theme", func(checked bool) {
		if !timerWindow.rendering {
			engine.SetUseSystemTheme(checked)
		}
	})
	timerWindow.darkTheme = fynewidget.NewCheck("Dark mode", func(checked bool) {
		if !timerWindow.rendering {
			engine.SetDarkThemeManual(checked)
		}
	})
	timerWindow.keepScreenOn = fynewidget.NewCheck("Keep screen on", func(checked bool) {
		if !timerWindow.rendering {
			engine.SetKeepScreenOn(checked)
		}
	})

	inputs := container.NewHBox(
		layout.NewSpacer(),
		container.NewGridWrap(fyne.NewSize(64, 40), timerWindow.minutes),
		fynewidget.NewLabel(":"),
		container.NewGridWrap(fyne.NewSize(64, 40), timerWindow.seconds),
		layout.NewSpacer(),
	)
	buttons := container.NewHBox(layout.NewSpacer(), timerWindow.primary, timerWindow.reset, layout.NewSpacer())
	settings := container.NewVBox(
		fynewidget.NewSeparator(),
		timerWindow.systemTheme,
		timerWindow.darkTheme,
		timerWindow.keepScreenOn,
	)

	content := container.NewVBox(
		inputs,
		timerWindow.remaining,
		timerWindow.status,
		timerWindow.errorLabel,
		buttons,
		settings,
	)
	window.SetContent(container.NewPadded(content))
	window.Resize(fyne.NewSize(320, 360))
	return timerWindow
}

// Show displays the window.
func (timerWindow *Window) Show() {
	timerWindow.window.Show()
	timerWindow.window.RequestFocus()
}

// SetCloseIntercept replaces the default close behavior.
func (timerWindow *Window) SetCloseIntercept(callback func()) {
	timerWindow.window.SetCloseIntercept(callback)
}

// Hide hides the window without quitting.
func (timerWindow *Window) Hide() {
	timerWindow.window.Hide()
}

// Render applies a snapshot to the widgets.
func (timerWindow *Window) Render(snapshot timer.Snapshot) {
	timerWindow.rendering = true
	defer func() { timerWindow.rendering = false }()

	timerWindow.state = snapshot.State
	syncEntry(timerWindow.minutes, snapshot.InputMinutes)
	syncEntry(timerWindow.seconds, snapshot.InputSeconds)
	timerWindow.remaining.SetText(snapshot.RemainingFormatted())
	timerWindow.status.SetText("State: " + snapshot.State.String())
	timerWindow.errorLabel.SetText(snapshot.Error.String())
	timerWindow.primary.SetText(PrimaryLabel(snapshot.State))

	timerWindow.systemTheme.SetChecked(snapshot.UseSystemTheme)
	timerWindow.darkTheme.SetChecked(snapshot.DarkThemeManual)
	if snapshot.UseSystemTheme {
		timerWindow.darkTheme.Disable()
	} else {
		timerWindow.darkTheme.Enable()
	}
	timerWindow.keepScreenOn.SetChecked(snapshot.KeepScreenOn)

	themeKey := [2]bool{snapshot.UseSystemTheme, snapshot.DarkThemeManual}
	if themeKey != timerWindow.lastTheme {
		timerWindow.lastTheme = themeKey
		timerWindow.app.Settings().SetTheme(themeFor(snapshot.UseSystemTheme, snapshot.DarkThemeManual))
	}

	// One alert per completion, even if several flagged snapshots queue up
	// before the ack is published.
	if !snapshot.JustFinished {
		timerWindow.announced = false
	} else if !timerWindow.announced {
		timerWindow.announced = true
		timerWindow.announceFinish()
	}
}

func (timerWindow *Window) announceFinish() {
	timerWindow.app.SendNotification(fyne.NewNotification(widget.Title, "Time's up!"))
	dialog.ShowInformation("Time's up", "The countdown has finished.", timerWindow.window)
	timerWindow.window.RequestFocus()
	timerWindow.engine.AckFinishHandled()
}

func (timerWindow *Window) handlePrimary() {
	switch timerWindow.state {
	case model.StateRunning:
		timerWindow.engine.Pause()
	case model.StatePaused:
		timerWindow.engine.Resume()
	default:
		timerWindow.engine.Start()
	}
}

func (timerWindow *Window) inputChanged(entry *fynewidget.Entry, update func(string)) func(string) {
	return func(text string) {
		if timerWindow.rendering {
			return
		}
		filtered := timer.FilterInput(text)
		if filtered != text {
			timerWindow.rendering = true
			entry.SetText(filtered)
			timerWindow.rendering = false
		}
		update(filtered)
	}
}

// PrimaryLabel names the start/pause/resume action for state.
func PrimaryLabel(state model.TimerState) string {
	switch state {
	case model.StateRunning:
		return "Pause"
	case model.StatePaused:
		return "Resume"
	default:
		return "Start"
	}
}

// syncEntry overwrites the entry only when the numbers differ, so that
// zero-padding does not jump the cursor while the user types.
func syncEntry(entry *fynewidget.Entry, value string) {
	if entry.Text == value {
		return
	}
	current, currentErr := strconv.Atoi(entry.Text)
	wanted, wantedErr := strconv.Atoi(value)
	if currentErr == nil && wantedErr == nil && current == wanted {
		return
	}
	entry.SetText(value)
}
