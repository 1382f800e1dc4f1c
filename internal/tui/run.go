package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbletea"

	"github.com/ghostcomment/ghostcomment/internal/types"
)

// Run shows the review screen and returns the comments the user kept
// selected and whether the selection was confirmed with enter.
func Run(comments []types.GhostComment) ([]types.GhostComment, bool, error) {
	m := NewModel(comments)
	out, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return nil, false, fmt.Errorf("error running TUI: %w", err)
	}
	final, ok := out.(Model)
	if !ok {
		return nil, false, fmt.Errorf("unexpected model type %T", out)
	}
	return final.Selected(), final.Confirmed(), nil
}
