package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/grimoire/internal/screen"
	"github.com/abhisek/grimoire/internal/session"
)

// Factory builds the screen for a top-level session state.
type Factory func(kind session.Screen) screen.Screen

// Router keeps the screen that matches the session's top-level state.
// Screens are created on entry and dropped on exit, so per-screen UI
// state (cursor, scroll, spinner) never outlives its state.
type Router struct {
	factory Factory
	kind    session.Screen
	active  screen.Screen
}

// New creates a Router. No screen is active until the first Show.
func New(factory Factory) *Router {
	return &Router{factory: factory, kind: -1}
}

// Show makes the screen for kind active, synced with v. It creates and
// initialises a new screen only when kind changes.
func (r *Router) Show(kind session.Screen, v session.View) tea.Cmd {
	if r.active != nil && r.kind == kind {
		r.active.Sync(v)
		return nil
	}

	s := r.factory(kind)
	if s == nil {
		return nil
	}
	r.kind = kind
	r.active = s
	s.Sync(v)
	return s.Init()
}

// Active returns the current screen, or nil before the first Show.
func (r *Router) Active() screen.Screen {
	return r.active
}

// Kind returns the session state the active screen renders.
func (r *Router) Kind() session.Screen {
	return r.kind
}

// Update forwards a message to the active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	if r.active == nil {
		return nil
	}
	updated, cmd := r.active.Update(msg)
	r.active = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	if r.active == nil {
		return ""
	}
	return r.active.View(width, height)
}
