package tray

import (
	"simpletimer/internal/widget"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow    func()
	OnPrimary func()
	OnReset   func()
	OnRefresh func()
	OnQuit    func()
}

// Manager handles the system tray menu. Its status line is the secondary
// display and only changes when Refresh results are handed to SetStatus.
type Manager struct {
	app         desktop.App
	callbacks   Callbacks
	statusItem  *fyne.MenuItem
	primaryItem *fyne.MenuItem
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem(widget.Title, nil)
	manager.statusItem.Disabled = true
	manager.primaryItem = fyne.NewMenuItem("Start", invoke(&manager.callbacks.OnPrimary))

	manager.refreshMenu()
	return manager
}

// SetStatus shows a rendered secondary display view.
func (manager *Manager) SetStatus(view widget.View) {
	manager.statusItem.Label = view.Line()
	manager.refreshMenu()
}

// SetPrimaryLabel renames the start/pause/resume item.
func (manager *Manager) SetPrimaryLabel(label string) {
	if manager.primaryItem.Label == label {
		return
	}
	manager.primaryItem.Label = label
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	quit := fyne.NewMenuItem("Quit", invoke(&manager.callbacks.OnQuit))
	quit.IsQuit = true
	manager.app.SetSystemTrayMenu(fyne.NewMenu(widget.Title,
		manager.statusItem,
		fyne.NewMenuItem("Refresh", invoke(&manager.callbacks.OnRefresh)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Open", invoke(&manager.callbacks.OnShow)),
		manager.primaryItem,
		fyne.NewMenuItem("Reset", invoke(&manager.callbacks.OnReset)),
		fyne.NewMenuItemSeparator(),
		quit,
	))
}

func invoke(callback *func()) func() {
	return func() {
		if *callback != nil {
			(*callback)()
		}
	}
}
