package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// DefaultFlashDuration is how long a confirmation stays visible.
const DefaultFlashDuration = 5 * time.Second

// Flash is a boolean that switches itself off a fixed delay after it was
// last switched on. Expiry arrives as a flashExpiredMsg through the normal
// update loop; each Arm or Cancel starts a new generation, so a tick from an
// earlier generation, or from another Flash, is ignored.
type Flash struct {
	id       string
	gen      int
	on       bool
	duration time.Duration
}

// flashExpiredMsg is delivered when an armed flash's delay elapses.
type flashExpiredMsg struct {
	id  string
	gen int
}

// NewFlash creates a flash that expires after d.
func NewFlash(d time.Duration) Flash {
	if d <= 0 {
		d = DefaultFlashDuration
	}
	return Flash{id: uuid.NewString(), duration: d}
}

// Arm switches the flash on and returns the command that expires it. Any
// previously armed expiry is superseded.
func (f *Flash) Arm() tea.Cmd {
	f.gen++
	f.on = true
	id, gen := f.id, f.gen
	return tea.Tick(f.duration, func(time.Time) tea.Msg {
		return flashExpiredMsg{id: id, gen: gen}
	})
}

// Cancel switches the flash off and invalidates any pending expiry.
func (f *Flash) Cancel() {
	f.gen++
	f.on = false
}

// On reports whether the flash is currently on.
func (f Flash) On() bool {
	return f.on
}

// Duration returns the expiry delay.
func (f Flash) Duration() time.Duration {
	return f.duration
}

// Handle consumes msg if it is this flash's current expiry and switches the
// flash off. It reports whether the message belonged to this flash at all.
func (f *Flash) Handle(msg tea.Msg) bool {
	m, ok := msg.(flashExpiredMsg)
	if !ok || m.id != f.id {
		return false
	}
	if m.gen == f.gen {
		f.on = false
	}
	return true
}
