// Package tui is the interactive review screen: the comments a scan found,
// each one selectable, so the user can pick which ones to act on.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ghostcomment/ghostcomment/internal/types"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true).
			Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true)

	locStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7"))

	contentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	deselectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Strikethrough(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	All     key.Binding
	None    key.Binding
	Confirm key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k")),
	Down:    key.NewBinding(key.WithKeys("down", "j")),
	Toggle:  key.NewBinding(key.WithKeys(" ")),
	All:     key.NewBinding(key.WithKeys("a")),
	None:    key.NewBinding(key.WithKeys("n")),
	Confirm: key.NewBinding(key.WithKeys("enter")),
	Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
}

type Model struct {
	comments  []types.GhostComment
	selected  map[int]bool
	cursor    int
	confirmed bool
	quitting  bool
}

// NewModel starts with every comment selected.
func NewModel(comments []types.GhostComment) Model {
	selected := make(map[int]bool, len(comments))
	for i := range comments {
		selected[i] = true
	}
	return Model{comments: comments, selected: selected}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if m.cursor < len(m.comments)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, keys.Toggle):
		m.selected[m.cursor] = !m.selected[m.cursor]
	case key.Matches(keyMsg, keys.All):
		for i := range m.comments {
			m.selected[i] = true
		}
	case key.Matches(keyMsg, keys.None):
		for i := range m.comments {
			m.selected[i] = false
		}
	case key.Matches(keyMsg, keys.Confirm):
		m.confirmed = true
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, keys.Quit):
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Ghost comments (%d selected of %d)", m.selectedCount(), len(m.comments))))
	b.WriteString("\n\n")

	for i, gc := range m.comments {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		mark := "[x]"
		if !m.selected[i] {
			mark = "[ ]"
		}
		loc := locStyle.Render(fmt.Sprintf("%s:%d", gc.FilePath, gc.LineNumber))
		content := contentStyle.Render(gc.Content)
		if !m.selected[i] {
			content = deselectedStyle.Render(gc.Content)
		}
		b.WriteString(fmt.Sprintf("%s%s %s  %s\n", cursor, mark, loc, content))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ move · space toggle · a all · n none · enter confirm · q quit"))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the comments still checked, in their original order.
func (m Model) Selected() []types.GhostComment {
	var out []types.GhostComment
	for i, gc := range m.comments {
		if m.selected[i] {
			out = append(out, gc)
		}
	}
	return out
}

// Confirmed reports whether the user accepted the selection rather than
// quitting out of the screen.
func (m Model) Confirmed() bool {
	return m.confirmed
}

func (m Model) selectedCount() int {
	n := 0
	for _, ok := range m.selected {
		if ok {
			n++
		}
	}
	return n
}
