// Package home is the top-level menu screen.
package home

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sgoswami/tutorbox/internal/exam"
	"github.com/sgoswami/tutorbox/internal/flashcards"
	"github.com/sgoswami/tutorbox/internal/router"
	"github.com/sgoswami/tutorbox/internal/scoring"
	"github.com/sgoswami/tutorbox/internal/screen"
	"github.com/sgoswami/tutorbox/internal/screens/cards"
	historyscreen "github.com/sgoswami/tutorbox/internal/screens/history"
	"github.com/sgoswami/tutorbox/internal/screens/placeholder"
	"github.com/sgoswami/tutorbox/internal/screens/setup"
	"github.com/sgoswami/tutorbox/internal/store"
	"github.com/sgoswami/tutorbox/internal/ui/components"
	"github.com/sgoswami/tutorbox/internal/ui/theme"
)

// HomeScreen is the main menu.
type HomeScreen struct {
	menu     components.Menu
	store    *store.Store
	sessions int
	cardsDue int
}

var _ screen.Screen = (*HomeScreen)(nil)

type statsLoadedMsg struct {
	Sessions int
	CardsDue int
}

// New creates the home screen. controller is nil when no LLM provider is
// configured; exam and review entries then show a placeholder.
func New(controller *exam.Controller, st *store.Store) *HomeScreen {
	startScreen := func(mode scoring.Mode, label string) func() tea.Cmd {
		return func() tea.Cmd {
			if controller == nil {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: placeholder.New(label)}
				}
			}
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: setup.New(controller, st, mode)}
			}
		}
	}

	items := []components.MenuItem{
		{Label: "TAKE AN EXAM", Action: startScreen(scoring.ModeExam, "Exam")},
		{Label: "REVIEW SESSION", Action: startScreen(scoring.ModeReview, "Review")},
		{Label: "FLASHCARDS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: cards.New(st)}
			}
		}},
		{Label: "HISTORY", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: historyscreen.New(st)}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:     components.NewMenu(items),
		store:    st,
		sessions: -1,
		cardsDue: -1,
	}
}

// Init loads the home stats off the UI goroutine. Stats are cosmetic;
// store errors just leave them hidden.
func (h *HomeScreen) Init() tea.Cmd {
	st := h.store
	return func() tea.Msg {
		msg := statsLoadedMsg{Sessions: -1, CardsDue: -1}
		if st == nil {
			return msg
		}
		ctx := context.Background()
		if records, err := st.HistoryRepo().List(ctx, 0); err == nil {
			msg.Sessions = len(records)
		}
		if all, err := st.CardRepo().List(ctx); err == nil {
			msg.CardsDue = len(flashcards.Due(all, time.Now()))
		}
		return msg
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if stats, ok := msg.(statsLoadedMsg); ok {
		h.sessions = stats.Sessions
		h.cardsDue = stats.CardsDue
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("TUTORBOX"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("exam & review sessions, one topic at a time"))
	b.WriteString("\n\n")

	if h.sessions >= 0 || h.cardsDue >= 0 {
		var parts []string
		if h.sessions >= 0 {
			parts = append(parts, fmt.Sprintf("%d session(s) taken", h.sessions))
		}
		if h.cardsDue >= 0 {
			parts = append(parts, fmt.Sprintf("%d card(s) due", h.cardsDue))
		}
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(strings.Join(parts, "   ")))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View()))

	return b.String()
}

func (h *HomeScreen) Title() string {
	return "Home"
}
