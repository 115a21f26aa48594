package cli

import tea "github.com/charmbracelet/bubbletea"

// runProgram runs a full-screen view and returns its final model. Tests
// replace it to drive models without a terminal.
var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m, tea.WithAltScreen()).Run()
}
