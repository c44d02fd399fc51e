package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/ui/layout"
)

// Screen is one page of the terminal UI.
type Screen interface {
	// Init returns an initial command when the screen is first shown.
	Init() tea.Cmd

	// Update handles messages and returns the updated screen and command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content without header and footer.
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is implemented by screens that override the footer
// key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
