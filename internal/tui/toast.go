package tui

// toast.go: non-blocking toast notifications shown above the theme list.
// Toasts auto-dismiss after a configurable duration.

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ToastKind controls the colour of the toast.
type ToastKind int

const (
	ToastInfo ToastKind = iota
	ToastSuccess
	ToastWarning
	ToastError
)

const defaultToastDuration = 3 * time.Second

// Toast is a single notification entry.
type Toast struct {
	Message string
	Kind    ToastKind
	Expiry  time.Time
}

// ToastDismissMsg is fired by the timer to remove an expired toast.
type ToastDismissMsg struct{}

// toastTickCmd schedules the next dismiss check after d.
func toastTickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ToastDismissMsg{}
	})
}

// showToast adds a new toast and returns a Cmd to auto-dismiss it.
func (m *Model) showToast(msg string, kind ToastKind, dur time.Duration) tea.Cmd {
	if dur == 0 {
		dur = defaultToastDuration
	}
	m.toasts = append(m.toasts, Toast{
		Message: msg,
		Kind:    kind,
		Expiry:  m.now().Add(dur),
	})
	return toastTickCmd(dur + 100*time.Millisecond)
}

// pruneToasts removes all expired toasts.
func (m *Model) pruneToasts() {
	now := m.now()
	kept := m.toasts[:0]
	for _, t := range m.toasts {
		if now.Before(t.Expiry) {
			kept = append(kept, t)
		}
	}
	m.toasts = kept
}

// renderToasts returns the toast stack, newest last.
func (m *Model) renderToasts() string {
	if len(m.toasts) == 0 {
		return ""
	}

	p := m.palette()
	var lines []string
	for _, toast := range m.toasts {
		var bg string
		switch toast.Kind {
		case ToastSuccess:
			bg = p.Secondary
		case ToastWarning:
			bg = p.Accent
		case ToastError:
			bg = "#C0392B"
		default:
			bg = p.Primary
		}
		style := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ContrastText(bg))).
			Background(lipgloss.Color(bg)).
			Padding(0, 2).
			Bold(true)
		lines = append(lines, style.Render(toast.Message))
	}
	return strings.Join(lines, "\n")
}
