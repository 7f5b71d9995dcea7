package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/penwyp/go-jobflow/internal/config"
	"github.com/penwyp/go-jobflow/internal/core/threshold"
	"github.com/penwyp/go-jobflow/internal/data/settings"
	"github.com/penwyp/go-jobflow/internal/data/store"
	"github.com/penwyp/go-jobflow/internal/presentation/display"
	"github.com/penwyp/go-jobflow/internal/presentation/formatter"
	"github.com/penwyp/go-jobflow/internal/util"
)

// appContext is what setup hands to every command.
type appContext struct {
	cfg      *config.Config
	dataDir  string
	store    *store.Store
	tp       *util.TimeProvider
	clock    util.Clock
	out      io.Writer
	maxWidth int

	settings settings.Store
}

var app *appContext

func closeApp() {
	if app != nil && app.settings != nil {
		if err := app.settings.Close(); err != nil {
			util.LogWarn("failed to close settings", util.F("error", err.Error()))
		}
		app.settings = nil
	}
	util.CloseLogger()
}

// openSettings opens the settings database on first use.
func (a *appContext) openSettings() (settings.Store, error) {
	if a.settings != nil {
		return a.settings, nil
	}
	s, err := settings.OpenSQLite(config.ExpandPath(a.cfg.SettingsDB))
	if err != nil {
		return nil, err
	}
	a.settings = s
	return s, nil
}

// maybeWelcome prints the welcome screen on the first run against a
// settings database. Failures only cost the screen.
func (a *appContext) maybeWelcome(ctx context.Context) {
	s, err := a.openSettings()
	if err != nil {
		util.LogWarn("settings unavailable, skipping welcome", util.F("error", err.Error()))
		return
	}
	show, err := settings.NewWelcomeGate(s).ShouldShow(ctx)
	if err != nil {
		util.LogWarn("could not read welcome flag", util.F("error", err.Error()))
		return
	}
	if show {
		a.renderer().Welcome()
		fmt.Fprintln(a.out)
	}
}

func (a *appContext) renderer() *display.Renderer {
	return display.NewRenderer(a.out, a.tp)
}

// badges returns styles for table output, nil for machine formats.
func (a *appContext) badges() *display.Styles {
	if a.cfg.Output != "table" {
		return nil
	}
	return display.NewStyles(a.out)
}

func (a *appContext) thresholds() threshold.Config {
	return a.cfg.ThresholdConfig()
}

func (a *appContext) isJSON() bool {
	return a.cfg.Output == "json"
}

// render writes t in the configured tabular format, or v as JSON.
func (a *appContext) render(t *formatter.Table, v interface{}) error {
	if a.isJSON() {
		return formatter.WriteJSON(a.out, v)
	}
	f, err := formatter.New(a.cfg.Output, a.maxWidth)
	if err != nil {
		return err
	}
	return f.Format(a.out, t)
}

// note prints a trailing line under a table. Machine formats skip it.
func (a *appContext) note(format string, args ...interface{}) {
	if a.cfg.Output != "table" {
		return
	}
	fmt.Fprintf(a.out, format+"\n", args...)
}

const timeLayout = "2006-01-02 15:04"

func (a *appContext) formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return a.tp.Format(t, timeLayout)
}
