package window

import (
	"testing"

	"simpletimer/internal/core/model"
	"simpletimer/internal/core/timer"

	"fyne.io/fyne/v2/test"
	fynewidget "fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
)

func TestPrimaryLabel(t *testing.T) {
	assert.Equal(t, "Start", PrimaryLabel(model.StateIdle))
	assert.Equal(t, "Pause", PrimaryLabel(model.StateRunning))
	assert.Equal(t, "Resume", PrimaryLabel(model.StatePaused))
	assert.Equal(t, "Start", PrimaryLabel(model.StateFinished))
}

func TestSyncEntryKeepsEquivalentText(t *testing.T) {
	test.NewTempApp(t)
	entry := fynewidget.NewEntry()
	entry.SetText("5")

	syncEntry(entry, "05")
	assert.Equal(t, "5", entry.Text)

	syncEntry(entry, "12")
	assert.Equal(t, "12", entry.Text)

	syncEntry(entry, "")
	assert.Equal(t, "", entry.Text)
}

func TestThemeFor(t *testing.T) {
	assert.NotNil(t, themeFor(true, false))
	assert.IsType(t, variantTheme{}, themeFor(false, true))
	assert.IsType(t, variantTheme{}, themeFor(false, false))
}

type ackCounter struct {
	acks int
}

func (engine *ackCounter) Start()                  {}
func (engine *ackCounter) Pause()                  {}
func (engine *ackCounter) Resume()                 {}
func (engine *ackCounter) Reset()                  {}
func (engine *ackCounter) UpdateMinutes(string)    {}
func (engine *ackCounter) UpdateSeconds(string)    {}
func (engine *ackCounter) AckFinishHandled()       { engine.acks++ }
func (engine *ackCounter) SetUseSystemTheme(bool)  {}
func (engine *ackCounter) SetDarkThemeManual(bool) {}
func (engine *ackCounter) SetKeepScreenOn(bool)    {}

func TestRenderAnnouncesEachFinishOnce(t *testing.T) {
	app := test.NewTempApp(t)
	engine := &ackCounter{}
	timerWindow := New(app, engine)

	finished := timer.DefaultSnapshot()
	finished.State = model.StateFinished
	finished.RemainingMillis = 0
	finished.JustFinished = true

	timerWindow.Render(finished)
	finished.DarkThemeManual = true
	timerWindow.Render(finished)
	assert.Equal(t, 1, engine.acks)

	acked := finished
	acked.JustFinished = false
	timerWindow.Render(acked)
	timerWindow.Render(finished)
	assert.Equal(t, 2, engine.acks)
}
