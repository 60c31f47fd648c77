// Package setup collects the attempt configuration before a session starts.
package setup

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sgoswami/tutorbox/internal/exam"
	"github.com/sgoswami/tutorbox/internal/generator"
	"github.com/sgoswami/tutorbox/internal/router"
	"github.com/sgoswami/tutorbox/internal/scoring"
	"github.com/sgoswami/tutorbox/internal/screen"
	"github.com/sgoswami/tutorbox/internal/screens/session"
	"github.com/sgoswami/tutorbox/internal/screens/summary"
	"github.com/sgoswami/tutorbox/internal/store"
	"github.com/sgoswami/tutorbox/internal/ui/components"
	"github.com/sgoswami/tutorbox/internal/ui/layout"
	"github.com/sgoswami/tutorbox/internal/ui/theme"
)

// Field indexes in navigation order.
const (
	fieldTopic = iota
	fieldDifficulty
	fieldMultipleChoice
	fieldTrueFalse
	fieldShortAnswer
	fieldTimed
	fieldBegin
	fieldCount
)

var difficulties = []string{
	string(generator.DifficultyEasy),
	string(generator.DifficultyMedium),
	string(generator.DifficultyHard),
}

// SetupScreen configures one attempt and hands off to the session screen.
type SetupScreen struct {
	controller *exam.Controller
	store      *store.Store
	mode       scoring.Mode

	topic      components.TextInput
	difficulty int
	counts     exam.Counts
	timed      bool
	selected   int
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates a setup screen for the given mode with sensible defaults.
func New(controller *exam.Controller, st *store.Store, mode scoring.Mode) *SetupScreen {
	topic := components.NewTextInput("e.g. fractions, reading comprehension", false, 60)
	topic.Model.Blur()

	return &SetupScreen{
		controller: controller,
		store:      st,
		mode:       mode,
		topic:      topic,
		difficulty: 1,
		counts: exam.Counts{
			MultipleChoice:   6,
			TrueFalseCluster: 2,
			ShortAnswer:      4,
		},
	}
}

func (s *SetupScreen) Init() tea.Cmd {
	return nil
}

func (s *SetupScreen) Title() string {
	if s.mode == scoring.ModeExam {
		return "Exam Setup"
	}
	return "Review Setup"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Field"},
		{Key: "←→", Description: "Adjust"},
		{Key: "Enter", Description: "Begin"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if s.selected == fieldTopic {
			var cmd tea.Cmd
			s.topic, cmd = s.topic.Update(msg)
			return s, cmd
		}
		return s, nil
	}

	switch kmsg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }

	case "up", "down":
		s.move(kmsg.String())
		return s, nil

	case "left", "right":
		if s.selected != fieldTopic {
			s.adjust(kmsg.String() == "right")
			return s, nil
		}

	case "enter":
		if s.selected == fieldBegin {
			return s.begin()
		}
		s.move("down")
		return s, nil
	}

	if s.selected == fieldTopic {
		var cmd tea.Cmd
		s.topic, cmd = s.topic.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SetupScreen) move(dir string) {
	if dir == "up" && s.selected > 0 {
		s.selected--
	}
	if dir == "down" && s.selected < fieldCount-1 {
		s.selected++
	}
	// Review is the only mode with a timed toggle; skip the row in exam mode.
	if s.mode == scoring.ModeExam && s.selected == fieldTimed {
		if dir == "up" {
			s.selected--
		} else {
			s.selected++
		}
	}
	if s.selected == fieldTopic {
		s.topic.Model.Focus()
	} else {
		s.topic.Model.Blur()
	}
}

func (s *SetupScreen) adjust(up bool) {
	delta := -1
	if up {
		delta = 1
	}
	clampCount := func(n int) int {
		if n < 0 {
			return 0
		}
		if n > 20 {
			return 20
		}
		return n
	}

	switch s.selected {
	case fieldDifficulty:
		s.difficulty = (s.difficulty + delta + len(difficulties)) % len(difficulties)
	case fieldMultipleChoice:
		s.counts.MultipleChoice = clampCount(s.counts.MultipleChoice + delta)
	case fieldTrueFalse:
		s.counts.TrueFalseCluster = clampCount(s.counts.TrueFalseCluster + delta)
	case fieldShortAnswer:
		s.counts.ShortAnswer = clampCount(s.counts.ShortAnswer + delta)
	case fieldTimed:
		s.timed = !s.timed
	}
}

func (s *SetupScreen) begin() (screen.Screen, tea.Cmd) {
	total := s.counts.MultipleChoice + s.counts.TrueFalseCluster + s.counts.ShortAnswer
	if total == 0 {
		return s, nil
	}

	cfg := exam.Config{
		Mode:       s.mode,
		Timed:      s.timed,
		TopicScope: s.topic.Value(),
		Difficulty: difficulties[s.difficulty],
		Counts:     s.counts,
	}

	// The session and summary screens receive factories instead of
	// importing each other's packages.
	makeSetup := func() screen.Screen {
		return New(s.controller, s.store, s.mode)
	}
	makeSummary := func(state exam.State) screen.Screen {
		return summary.New(s.controller, cfg, state, makeSetup)
	}

	next := session.New(s.controller, s.store, cfg, makeSummary)
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (s *SetupScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	rows := []struct {
		field int
		label string
		value string
	}{
		{fieldTopic, "Topics", s.topic.View()},
		{fieldDifficulty, "Difficulty", "◂ " + difficulties[s.difficulty] + " ▸"},
		{fieldMultipleChoice, "Multiple choice", fmt.Sprintf("◂ %d ▸", s.counts.MultipleChoice)},
		{fieldTrueFalse, "True/false clusters", fmt.Sprintf("◂ %d ▸", s.counts.TrueFalseCluster)},
		{fieldShortAnswer, "Short answer", fmt.Sprintf("◂ %d ▸", s.counts.ShortAnswer)},
	}
	if s.mode == scoring.ModeReview {
		rows = append(rows, struct {
			field int
			label string
			value string
		}{fieldTimed, "Timed (60 min)", onOff(s.timed)})
	}

	for _, row := range rows {
		labelStyle := lipgloss.NewStyle().Foreground(theme.Text).Width(22)
		if row.field == s.selected {
			labelStyle = labelStyle.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString("    " + labelStyle.Render(row.label) + "  " + row.value + "\n\n")
	}

	if s.mode == scoring.ModeExam {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render("    Exam sessions run a 90 minute clock and are scored out of 10.\n\n"))
	}

	begin := "  BEGIN  "
	if s.selected == fieldBegin {
		begin = theme.ButtonActive.Render(begin)
	} else {
		begin = theme.ButtonInactive.Render(begin)
	}
	b.WriteString("    " + begin + "\n")

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
