package tui

// theme_dialog.go: the theme list: filtering, cursor movement and rendering.
//
// Moving the cursor previews the highlighted theme on the root scope
// without persisting it. Enter commits; Esc/q restores the committed theme
// and mode.

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dhanuzh/dbexplorer/internal/theme"
)

// themeDialogState holds all runtime state for the theme list.
type themeDialogState struct {
	themes      []theme.Definition // registry order
	selected    int                // cursor position within filteredThemes
	filter      string             // incremental search
	previousKey string             // theme to restore on cancel
}

func newThemeDialog(themes []theme.Definition, current string) *themeDialogState {
	s := &themeDialogState{themes: themes, previousKey: current}
	for i, def := range themes {
		if def.Key == current {
			s.selected = i
			break
		}
	}
	return s
}

// filteredThemes returns themes whose key or display name matches the filter.
func (s *themeDialogState) filteredThemes() []theme.Definition {
	if s.filter == "" {
		return s.themes
	}
	f := strings.ToLower(s.filter)
	var out []theme.Definition
	for _, def := range s.themes {
		if strings.Contains(strings.ToLower(def.DisplayName), f) || strings.Contains(strings.ToLower(def.Key), f) {
			out = append(out, def)
		}
	}
	return out
}

// highlighted returns the theme under the cursor.
func (s *themeDialogState) highlighted() (theme.Definition, bool) {
	items := s.filteredThemes()
	if len(items) == 0 {
		return theme.Definition{}, false
	}
	idx := s.selected
	if idx >= len(items) {
		idx = len(items) - 1
	}
	return items[idx], true
}

func (s *themeDialogState) up() {
	items := s.filteredThemes()
	if s.selected > 0 {
		s.selected--
	} else if len(items) > 0 {
		s.selected = len(items) - 1
	}
}

func (s *themeDialogState) down() {
	items := s.filteredThemes()
	if s.selected < len(items)-1 {
		s.selected++
	} else {
		s.selected = 0
	}
}

func (s *themeDialogState) typeRune(r string) {
	s.filter += r
	s.selected = 0
}

func (s *themeDialogState) backspace() bool {
	if len(s.filter) == 0 {
		return false
	}
	_, size := utf8.DecodeLastRuneInString(s.filter)
	s.filter = s.filter[:len(s.filter)-size]
	s.selected = 0
	return true
}

// render draws the list inside a rounded border of width w.
func (s *themeDialogState) render(st Styles, mode theme.Mode, w int) string {
	items := s.filteredThemes()
	inner := w - 4

	var b strings.Builder
	b.WriteString(st.Title.Render("Themes") + st.Dim.Render(fmt.Sprintf("  %s mode", mode)) + "\n")

	// Filter input
	filterLine := st.Dim.Render("Filter: ")
	if s.filter != "" {
		filterLine += st.Filter.Render(s.filter)
	} else {
		filterLine += st.Dim.Render("type to search...")
	}
	b.WriteString(filterLine + "\n")
	b.WriteString(st.Dim.Render(strings.Repeat("─", inner)) + "\n")

	if len(items) == 0 {
		b.WriteString(st.Dim.Render("  No themes match") + "\n")
	} else {
		for i, def := range items {
			label := fmt.Sprintf("  %-18s %s", def.DisplayName, def.Key)
			line := st.Text.Width(inner - 14).Render(label)
			if i == s.selected {
				line = st.Selected.Width(inner - 14).Render(label)
			}
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, line, " ", PaletteStrip(def.Colors)) + "\n")
		}
	}

	b.WriteString(st.Dim.Render(strings.Repeat("─", inner)))
	return st.Border.Width(w).Render(b.String())
}
