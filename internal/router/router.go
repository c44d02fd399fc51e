// Package router keeps the terminal UI's stack of open screens.
package router

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/screen"
)

// PushScreenMsg opens Screen on top of the current one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg goes back one screen.
type PopScreenMsg struct{}

// HomeMsg drops every screen above the home menu.
type HomeMsg struct{}

// Router routes messages to the newest screen. The home screen at the
// bottom is never removed.
type Router struct {
	screens []screen.Screen
}

func New(home screen.Screen) *Router {
	return &Router{screens: []screen.Screen{home}}
}

// Push opens s and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.screens = append(r.screens, s)
	return s.Init()
}

// Back closes the newest screen and reports whether one was closed.
func (r *Router) Back() bool {
	if len(r.screens) == 1 {
		return false
	}
	r.screens[len(r.screens)-1] = nil
	r.screens = r.screens[:len(r.screens)-1]
	return true
}

// Home closes everything but the home screen.
func (r *Router) Home() {
	clear(r.screens[1:])
	r.screens = r.screens[:1]
}

func (r *Router) Active() screen.Screen {
	return r.screens[len(r.screens)-1]
}

func (r *Router) Depth() int {
	return len(r.screens)
}

// Trail joins the titles of the open screens, oldest first, skipping the
// home screen.
func (r *Router) Trail() string {
	titles := make([]string, 0, len(r.screens)-1)
	for _, s := range r.screens[1:] {
		titles = append(titles, s.Title())
	}
	return strings.Join(titles, " › ")
}

// Update applies navigation messages; anything else goes to the newest
// screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		r.Back()
		return nil
	case HomeMsg:
		r.Home()
		return nil
	}

	top := len(r.screens) - 1
	next, cmd := r.screens[top].Update(msg)
	r.screens[top] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
