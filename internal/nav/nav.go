// Package nav defines the navigation intents exchanged between pages and the
// router. Intents carry no payload beyond an optional post id.
package nav

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Route identifies a view.
type Route int

const (
	RouteList Route = iota
	RouteCreate
	RouteDetail
	RouteBack
)

func (r Route) String() string {
	switch r {
	case RouteList:
		return "list"
	case RouteCreate:
		return "create"
	case RouteDetail:
		return "detail"
	case RouteBack:
		return "back"
	}
	return fmt.Sprintf("route(%d)", int(r))
}

// Intent is a navigation request. It is delivered to the router as a
// tea.Msg.
type Intent struct {
	Route Route
	ID    int // only meaningful for RouteDetail
}

func (i Intent) String() string {
	if i.Route == RouteDetail {
		return fmt.Sprintf("detail(%d)", i.ID)
	}
	return i.Route.String()
}

// List requests the post list.
func List() Intent { return Intent{Route: RouteList} }

// Create requests the creation form.
func Create() Intent { return Intent{Route: RouteCreate} }

// Detail requests the single-post view for id.
func Detail(id int) Intent { return Intent{Route: RouteDetail, ID: id} }

// Back requests the previous view.
func Back() Intent { return Intent{Route: RouteBack} }

// Go wraps an intent as a command for the router.
func Go(i Intent) tea.Cmd {
	return func() tea.Msg { return i }
}

// History is the router's back stack.
type History struct {
	stack []Intent
}

// Push records a visited view.
func (h *History) Push(i Intent) {
	h.stack = append(h.stack, i)
}

// Pop removes the current view and returns the one before it. With nothing
// to go back to it returns List.
func (h *History) Pop() Intent {
	if len(h.stack) > 0 {
		h.stack = h.stack[:len(h.stack)-1]
	}
	if len(h.stack) == 0 {
		return List()
	}
	prev := h.stack[len(h.stack)-1]
	h.stack = h.stack[:len(h.stack)-1]
	return prev
}

// Len returns the number of recorded views.
func (h *History) Len() int {
	return len(h.stack)
}
