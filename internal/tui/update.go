package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetColumns(columnsFor(msg.Width))
		m.table.SetHeight(max(5, msg.Height/2-4))
		return m, nil

	case ComparisonLoadedMsg:
		m.loading = false
		m.err = nil
		m.comparison = msg.Comparison
		m.table.SetRows(rowsFor(msg.Comparison))
		if m.table.Cursor() >= len(msg.Comparison.Results) {
			m.table.SetCursor(0)
		}
		return m, tea.SetWindowTitle(comparisonTitle(msg.Comparison))

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// Any other key dismisses an error; the last good comparison stays on screen
	if m.err != nil {
		m.err = nil
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Pane):
		m.pane = m.pane.Next()
		return m, nil

	case key.Matches(msg, m.keys.Payoff):
		m.options.IncludePayoff = !m.options.IncludePayoff
		m.loading = true
		return m, loadComparisonCmd(m.inputPath, m.engine, m.options)

	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		return m, loadComparisonCmd(m.inputPath, m.engine, m.options)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}
