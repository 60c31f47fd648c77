package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/sgoswami/tutorbox/internal/question"
	"github.com/sgoswami/tutorbox/internal/scoring"
	"github.com/sgoswami/tutorbox/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.generating {
		return renderGenerating(width)
	}
	if s.showingQuit {
		return renderConfirm(width, "End the session early?", "Answers so far will be graded.")
	}
	if s.showingSubmit {
		return renderConfirm(width, "Submit your answers?", fmt.Sprintf("%d of %d questions answered.", s.answeredCount(), len(s.questions)))
	}
	if len(s.questions) == 0 {
		return renderError(width, "no questions were generated")
	}
	return s.renderQuestion(width)
}

func (s *SessionScreen) renderQuestion(width int) string {
	q := s.questions[s.idx]
	state := s.controller.State()
	ans, answered := state.Answers[q.ID]

	var b strings.Builder

	// Position line with answer progress.
	posLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Question %d of %d", s.idx+1, len(s.questions)))
	posRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d answered  ", s.answeredCount()))

	gap := width - lipgloss.Width(posLeft) - lipgloss.Width(posRight)
	if gap < 1 {
		gap = 1
	}
	b.WriteString(posLeft + strings.Repeat(" ", gap) + posRight)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	// Prompt.
	promptStyle := lipgloss.NewStyle().
		Width(min(width-8, 76)).
		Foreground(theme.Text).
		Bold(true)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, promptStyle.Render(q.Prompt)))
	b.WriteString("\n\n")

	// Input area.
	in := s.current()
	revealed := answered && ans.Revealed
	var input string
	switch in.kind {
	case question.KindMultipleChoice:
		mc := in.mc
		mc.Revealed = revealed
		input = mc.View()
	case question.KindTrueFalse:
		tf := in.tf
		tf.Revealed = revealed
		input = tf.View()
	case question.KindShortAnswer:
		input = "Answer: " + in.text.View()
		if revealed {
			input += "\n\n" + lipgloss.NewStyle().
				Foreground(theme.Success).
				Render("Expected: "+q.Expected)
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, input))

	// Explanation once revealed.
	if revealed && q.Explanation != "" {
		b.WriteString("\n\n")
		exp := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.TextDim).
			Render(q.Explanation)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
	}

	if s.cfg.Mode == scoring.ModeReview && !revealed {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Ctrl+R checks this answer"))
	}

	return b.String()
}

func (s *SessionScreen) answeredCount() int {
	state := s.controller.State()
	n := 0
	for _, q := range s.questions {
		if ans, ok := state.Answers[q.ID]; ok && isAnswered(q, ans) {
			n++
		}
	}
	return n
}

func isAnswered(q question.Question, ans question.Answer) bool {
	switch q.Kind {
	case question.KindMultipleChoice:
		return ans.Choice >= 0
	case question.KindTrueFalse:
		for _, m := range ans.Marks {
			if m != nil {
				return true
			}
		}
		return false
	case question.KindShortAnswer:
		return strings.TrimSpace(ans.Text) != ""
	}
	return false
}

func renderGenerating(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Generating questions...")
}

func renderConfirm(width int, title, detail string) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(detail))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Yes"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No"))
	return b.String()
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}

func formatClock(mins, secs int) string {
	return fmt.Sprintf("⏱ %d:%02d", mins, secs)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
