package settings

import (
	"context"
	"sync"

	"github.com/penwyp/go-jobflow/internal/util"
)

// VisitedKey marks that the welcome screen has been shown.
const VisitedKey = "jobflow-ai-visited"

// WelcomeGate decides whether to show the first-run welcome screen. The
// flag is read at most once per gate and written at most once.
type WelcomeGate struct {
	store Store

	once sync.Once
	show bool
	err  error
}

// NewWelcomeGate creates a gate backed by store.
func NewWelcomeGate(store Store) *WelcomeGate {
	return &WelcomeGate{store: store}
}

// ShouldShow reports whether the welcome screen should be displayed. The
// first call consults the store and, unless the flag reads "true", sets it
// so later runs skip the screen. Subsequent calls return the same answer.
func (g *WelcomeGate) ShouldShow(ctx context.Context) (bool, error) {
	g.once.Do(func() {
		value, ok, err := g.store.Get(ctx, VisitedKey)
		if err != nil {
			g.err = err
			return
		}
		if ok && value == "true" {
			return
		}
		g.show = true
		if err := g.store.Set(ctx, VisitedKey, "true"); err != nil {
			util.LogWarn("could not record welcome flag", util.F("error", err.Error()))
		}
	})
	return g.show, g.err
}
