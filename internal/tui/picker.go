// Package tui is the terminal theme picker.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dhanuzh/dbexplorer/internal/theme"
	"github.com/Dhanuzh/dbexplorer/internal/themectl"
)

// KeyMap defines the picker keybindings
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Mode    key.Binding
	Quit    key.Binding
}

// DefaultKeys is the picker's default KeyMap.
var DefaultKeys = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k", "ctrl+p"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j", "ctrl+n"),
		key.WithHelp("↓/j", "down"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "q"),
		key.WithHelp("esc", "cancel"),
	),
	Mode: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "preview light/dark"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Confirm, k.Cancel, k.Mode}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Quit}}
}

// Result is what the picker ended with.
type Result struct {
	ThemeKey  string
	Mode      theme.Mode
	Confirmed bool
}

// Model is the bubbletea model of the picker. It previews the highlighted
// theme and mode through the controller's Preview and commits both with
// SetSelection on confirm.
type Model struct {
	ctx    context.Context
	ctl    *themectl.Controller
	dialog *themeDialogState
	mode   theme.Mode
	keys   KeyMap
	help   help.Model
	toasts []Toast
	width  int
	result Result
	done   bool
	now    func() time.Time
}

// NewPicker creates a picker over an initialized controller.
func NewPicker(ctx context.Context, ctl *themectl.Controller) (*Model, error) {
	sel, err := ctl.Selection()
	if err != nil {
		return nil, err
	}
	lipgloss.SetHasDarkBackground(sel.Mode == theme.ModeDark)

	return &Model{
		ctx:    ctx,
		ctl:    ctl,
		dialog: newThemeDialog(ctl.Registry().List(), sel.ThemeKey),
		mode:   sel.Mode,
		keys:   DefaultKeys,
		help:   help.New(),
		width:  72,
		result: Result{ThemeKey: sel.ThemeKey, Mode: sel.Mode},
		now:    time.Now,
	}, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.SetWindowTitle("dbexplorer themes")
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = min(max(msg.Width-2, 40), 96)
		m.help.Width = m.width
		return m, nil

	case ToastDismissMsg:
		m.pruneToasts()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.dialog

	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Cancel):
		// Cancel: restore the committed theme and mode
		m.restore()
		m.done = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Confirm):
		def, ok := s.highlighted()
		if !ok {
			return m, m.showToast("No theme selected", ToastWarning, 0)
		}
		if err := m.ctl.SetSelection(m.ctx, themectl.Selection{ThemeKey: def.Key, Mode: m.mode}); err != nil {
			return m, m.showToast(err.Error(), ToastError, 0)
		}
		m.result = Result{ThemeKey: def.Key, Mode: m.mode, Confirmed: true}
		m.done = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		s.up()
		m.preview()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		s.down()
		m.preview()
		return m, nil

	case key.Matches(msg, m.keys.Mode):
		m.mode = m.mode.Toggle()
		lipgloss.SetHasDarkBackground(m.mode == theme.ModeDark)
		m.preview()
		return m, m.showToast(fmt.Sprintf("Previewing %s mode", m.mode), ToastInfo, 0)

	case msg.Type == tea.KeyBackspace:
		if s.backspace() {
			m.preview()
		}
		return m, nil

	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1:
		s.typeRune(string(msg.Runes))
		m.preview()
		return m, nil
	}
	return m, nil
}

// preview applies the highlighted theme in the picker's mode without
// persisting either.
func (m *Model) preview() {
	themeKey := m.dialog.previousKey
	if def, ok := m.dialog.highlighted(); ok {
		themeKey = def.Key
	}
	_ = m.ctl.Preview(themectl.Selection{ThemeKey: themeKey, Mode: m.mode})
}

// restore re-applies the committed selection.
func (m *Model) restore() {
	sel, err := m.ctl.Selection()
	if err != nil {
		return
	}
	m.mode = sel.Mode
	lipgloss.SetHasDarkBackground(sel.Mode == theme.ModeDark)
	_ = m.ctl.Apply(m.ctl.ComputeVariables(sel))
}

// palette is the palette of the highlighted theme, or the committed one.
func (m *Model) palette() theme.Palette {
	if def, ok := m.dialog.highlighted(); ok {
		return def.Colors
	}
	return m.ctl.Registry().Resolve(m.dialog.previousKey).Colors
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.done {
		return ""
	}
	st := NewStyles(m.palette(), m.mode)

	var b strings.Builder
	if toasts := m.renderToasts(); toasts != "" {
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Right, toasts) + "\n")
	}
	b.WriteString(m.dialog.render(st, m.mode, m.width) + "\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// Result returns how the picker ended.
func (m *Model) Result() Result {
	return m.result
}

// Run shows the picker until the user confirms or cancels.
func Run(ctx context.Context, ctl *themectl.Controller) (Result, error) {
	m, err := NewPicker(ctx, ctl)
	if err != nil {
		return Result{}, err
	}
	final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil {
		return Result{}, err
	}
	return final.(*Model).Result(), nil
}
