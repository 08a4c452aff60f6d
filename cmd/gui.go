package main

import (
	"context"

	"simpletimer/internal/core/model"
	"simpletimer/internal/core/timer"
	"simpletimer/internal/platform"
	"simpletimer/internal/ui/tray"
	"simpletimer/internal/ui/window"
	"simpletimer/internal/widget"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/rs/zerolog"
)

func runGUI(ctx context.Context, config model.Config, logger zerolog.Logger) error {
	lock, err := platform.LockDataDir(appName, config.DataDir)
	if err != nil {
		return err
	}
	defer func() {
		_ = lock.Release()
	}()

	store, err := openStore(config)
	if err != nil {
		return err
	}

	engine := timer.New(store, timer.Options{TickInterval: config.TickInterval}, logger)
	defer engine.Close()
	snapshots := engine.Subscribe(16)

	engine.SetKeepScreenOn(config.KeepScreenOn)
	_ = engine.LoadPreferences(ctx)
	record, err := store.ReadTimer(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("read persisted timer")
	}
	engine.Restore(record)

	fyneApp := app.NewWithID("com.simpletimer.app")
	timerWindow := window.New(fyneApp, engine)
	timerWindow.Render(engine.Snapshot())

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		refresh := func() {
			view, err := widget.Refresh(ctx, store)
			if err != nil {
				logger.Warn().Err(err).Msg("refresh tray status")
			}
			trayManager.SetStatus(view)
		}
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow: timerWindow.Show,
			OnPrimary: func() {
				switch engine.Snapshot().State {
				case model.StateRunning:
					engine.Pause()
				case model.StatePaused:
					engine.Resume()
				default:
					engine.Start()
				}
			},
			OnReset:   engine.Reset,
			OnRefresh: refresh,
			OnQuit: func() {
				fyneApp.Quit()
			},
		})
		trayManager.SetPrimaryLabel(window.PrimaryLabel(engine.Snapshot().State))
		refresh()
		timerWindow.SetCloseIntercept(timerWindow.Hide)
	} else {
		logger.Info().Msg("system tray unsupported on this platform")
	}

	go func() {
		for snapshot := range snapshots {
			fyne.Do(func() {
				timerWindow.Render(snapshot)
				if trayManager != nil {
					trayManager.SetPrimaryLabel(window.PrimaryLabel(snapshot.State))
				}
			})
		}
	}()

	timerWindow.Show()
	fyneApp.Run()
	return nil
}
