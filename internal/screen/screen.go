package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/grimoire/internal/session"
	"github.com/abhisek/grimoire/internal/ui/layout"
)

// Screen defines the interface for all application screens. Screens
// render the session view and turn key presses into gesture messages;
// they never mutate the session themselves.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Sync hands the screen the latest session snapshot. It is called
	// before Init and after every update.
	Sync(v session.View)

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
