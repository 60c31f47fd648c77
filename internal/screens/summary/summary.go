// Package summary shows the graded result of an attempt.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sgoswami/tutorbox/internal/exam"
	"github.com/sgoswami/tutorbox/internal/question"
	"github.com/sgoswami/tutorbox/internal/router"
	"github.com/sgoswami/tutorbox/internal/scoring"
	"github.com/sgoswami/tutorbox/internal/screen"
	"github.com/sgoswami/tutorbox/internal/ui/components"
	"github.com/sgoswami/tutorbox/internal/ui/layout"
	"github.com/sgoswami/tutorbox/internal/ui/theme"
)

// SummaryScreen renders the graded result and offers a retake. The setup
// screen for a retake comes from an injected factory, which keeps this
// package out of the screen construction cycle.
type SummaryScreen struct {
	controller *exam.Controller
	cfg        exam.Config
	state      exam.State
	makeSetup  func() screen.Screen
	scroll     int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a summary screen from a graded session snapshot.
func New(controller *exam.Controller, cfg exam.Config, state exam.State, makeSetup func() screen.Screen) *SummaryScreen {
	return &SummaryScreen{
		controller: controller,
		cfg:        cfg,
		state:      state,
		makeSetup:  makeSetup,
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "R", Description: "Retake"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "esc", "enter", "q":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if s.scroll > 0 {
			s.scroll--
		}
	case "down", "j":
		if s.scroll < len(s.state.Questions)-1 {
			s.scroll++
		}
	case "r", "R":
		// A fresh attempt starts over from configuration.
		if err := s.controller.Retake(); err != nil {
			return s, nil
		}
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: s.makeSetup()}
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	res := s.state.Result
	if res == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  No result to show.")
	}

	var b strings.Builder
	b.WriteString("\n")

	// Headline score.
	var headline string
	if s.cfg.Mode == scoring.ModeExam {
		headline = fmt.Sprintf("%.2f / %.0f", res.Score, res.MaxScore)
	} else {
		headline = fmt.Sprintf("%.2f / %.2f points", res.Score, res.MaxScore)
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(headline))
	b.WriteString("\n\n")

	// Score bar.
	pct := 0.0
	if res.MaxScore > 0 {
		pct = res.Score / res.MaxScore
	}
	bar := components.NewProgressBar("", pct, true, min(width-20, 50))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	// Per-question breakdown, scrolled to the selected row.
	byID := make(map[string]question.Question, len(s.state.Questions))
	for _, q := range s.state.Questions {
		byID[q.ID] = q
	}

	visible := height - 10
	if visible < 3 {
		visible = 3
	}
	start := s.scroll
	if start > len(res.PerQuestion)-visible {
		start = len(res.PerQuestion) - visible
	}
	if start < 0 {
		start = 0
	}

	rowWidth := min(width-8, 76)
	for i := start; i < len(res.PerQuestion) && i < start+visible; i++ {
		qs := res.PerQuestion[i]
		q := byID[qs.QuestionID]

		marker := lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		if qs.NeedsReview {
			marker = lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}

		prompt := q.Prompt
		if lipgloss.Width(prompt) > rowWidth-24 {
			prompt = truncateTo(prompt, rowWidth-24)
		}

		line := fmt.Sprintf("%s  %-*s  %.2f/%.2f", marker, rowWidth-24, prompt, qs.Points, qs.Max)
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.scroll {
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	// Flashcard note for missed exam questions.
	if s.cfg.Mode == scoring.ModeExam {
		missed := 0
		for _, qs := range res.PerQuestion {
			if qs.NeedsReview {
				missed++
			}
		}
		if missed > 0 {
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.TextDim).
				Render(fmt.Sprintf("%d missed question(s) added to flashcards.", missed)))
		}
	}

	return b.String()
}

func truncateTo(s string, w int) string {
	runes := []rune(s)
	if len(runes) <= w {
		return s
	}
	if w < 1 {
		return ""
	}
	return string(runes[:w-1]) + "…"
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
