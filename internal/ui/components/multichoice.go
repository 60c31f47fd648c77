package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sgoswami/tutorbox/internal/ui/theme"
)

// MultiChoice is a four-option selector. The correct option stays hidden
// until Revealed is set, so exam sessions never leak the answer.
type MultiChoice struct {
	Options      []string
	CorrectIndex int
	Selected     int
	Chosen       int
	Revealed     bool
}

// NewMultiChoice creates a selector with no option chosen yet.
func NewMultiChoice(options []string, correctIndex int) MultiChoice {
	return MultiChoice{
		Options:      options,
		CorrectIndex: correctIndex,
		Chosen:       -1,
	}
}

// Update handles keyboard navigation and choosing.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter", " ":
		m.Chosen = m.Selected
	case "1", "2", "3", "4":
		i := int(kmsg.String()[0] - '1')
		if i < len(m.Options) {
			m.Selected = i
			m.Chosen = i
		}
	}

	return m, nil
}

// View renders the option list.
func (m MultiChoice) View() string {
	var s string
	labels := []string{"A", "B", "C", "D"}

	for i, opt := range m.Options {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		cursor := "  "
		if i == m.Selected {
			cursor = "▸ "
		}
		mark := " "
		if i == m.Chosen {
			mark = "●"
		}
		line := fmt.Sprintf("%s%s %s)  %s", cursor, mark, label, opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case m.Revealed && i == m.CorrectIndex:
			style = lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
		case m.Revealed && i == m.Chosen && i != m.CorrectIndex:
			style = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
		case i == m.Selected:
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		s += style.Render(line) + "\n"
	}

	return s
}
