// Package widget renders the secondary timer display. It reads only the
// persisted record, never a live engine, so it can trail a running
// countdown by up to one tick.
package widget

import (
	"context"
	"fmt"

	"simpletimer/internal/core/model"
	"simpletimer/internal/core/timer"
	"simpletimer/internal/storage"
)

// Title is the heading shown above the remaining time.
const Title = "Simple Timer"

// View is the rendered secondary display.
type View struct {
	Title     string
	Remaining string
	State     string
}

// Render formats a persisted record.
func Render(record model.TimerRecord) View {
	return View{
		Title:     Title,
		Remaining: timer.FormatMillis(record.RemainingMillis),
		State:     fmt.Sprintf("State: %s", record.State),
	}
}

// Refresh re-reads the store and renders it. On a read failure the
// default record is rendered and the error is returned alongside.
func Refresh(ctx context.Context, store storage.Store) (View, error) {
	record, err := store.ReadTimer(ctx)
	return Render(record), err
}

// Line joins the view into one status line.
func (view View) Line() string {
	return fmt.Sprintf("%s %s (%s)", view.Title, view.Remaining, view.State)
}
