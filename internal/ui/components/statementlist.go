package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sgoswami/tutorbox/internal/ui/theme"
)

// StatementList marks each statement in a true/false cluster as true,
// false, or unmarked. Marks mirror the cluster size: a nil entry means
// the learner has not decided yet.
type StatementList struct {
	Statements []string
	Truths     []bool
	Marks      []*bool
	Selected   int
	Revealed   bool
}

// NewStatementList creates a list with all statements unmarked.
func NewStatementList(statements []string, truths []bool) StatementList {
	return StatementList{
		Statements: statements,
		Truths:     truths,
		Marks:      make([]*bool, len(statements)),
	}
}

// Update handles navigation and marking keys.
func (l StatementList) Update(msg tea.Msg) (StatementList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if l.Selected > 0 {
			l.Selected--
		}
	case "down", "j":
		if l.Selected < len(l.Statements)-1 {
			l.Selected++
		}
	case "t", "y":
		v := true
		l.Marks[l.Selected] = &v
		l.advance()
	case "f", "n":
		v := false
		l.Marks[l.Selected] = &v
		l.advance()
	case "backspace":
		l.Marks[l.Selected] = nil
	}

	return l, nil
}

func (l *StatementList) advance() {
	if l.Selected < len(l.Statements)-1 {
		l.Selected++
	}
}

// View renders the statement cluster.
func (l StatementList) View() string {
	var s string
	for i, st := range l.Statements {
		cursor := "  "
		if i == l.Selected {
			cursor = "▸ "
		}

		mark := "[ ]"
		if l.Marks[i] != nil {
			if *l.Marks[i] {
				mark = "[T]"
			} else {
				mark = "[F]"
			}
		}

		line := fmt.Sprintf("%s%s  %s", cursor, mark, st)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case l.Revealed && l.Marks[i] != nil && *l.Marks[i] == l.Truths[i]:
			style = lipgloss.NewStyle().Foreground(theme.Success)
		case l.Revealed:
			style = lipgloss.NewStyle().Foreground(theme.Error)
			line += fmt.Sprintf("  (answer: %s)", boolWord(l.Truths[i]))
		case i == l.Selected:
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		s += style.Render(line) + "\n"
	}
	return s
}

func boolWord(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
