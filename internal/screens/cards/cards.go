// Package cards runs a flashcard review pass over due cards.
package cards

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sgoswami/tutorbox/internal/flashcards"
	"github.com/sgoswami/tutorbox/internal/router"
	"github.com/sgoswami/tutorbox/internal/screen"
	"github.com/sgoswami/tutorbox/internal/store"
	"github.com/sgoswami/tutorbox/internal/ui/layout"
	"github.com/sgoswami/tutorbox/internal/ui/theme"
)

// CardsScreen walks through due flashcards one at a time: show the front,
// flip, self-grade, reschedule.
type CardsScreen struct {
	store *store.Store

	due      []flashcards.Card
	idx      int
	flipped  bool
	reviewed int
	errMsg   string
	loaded   bool
}

var _ screen.Screen = (*CardsScreen)(nil)
var _ screen.KeyHintProvider = (*CardsScreen)(nil)

type cardsLoadedMsg struct {
	Due []flashcards.Card
	Err error
}

// New creates a flashcard review screen backed by the store.
func New(st *store.Store) *CardsScreen {
	return &CardsScreen{store: st}
}

func (c *CardsScreen) Init() tea.Cmd {
	st := c.store
	return func() tea.Msg {
		all, err := st.CardRepo().List(context.Background())
		if err != nil {
			return cardsLoadedMsg{Err: err}
		}
		return cardsLoadedMsg{Due: flashcards.Due(all, time.Now())}
	}
}

func (c *CardsScreen) Title() string {
	return "Flashcards"
}

func (c *CardsScreen) KeyHints() []layout.KeyHint {
	if !c.loaded || c.idx >= len(c.due) {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	if !c.flipped {
		return []layout.KeyHint{
			{Key: "Space", Description: "Flip"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Y", Description: "Got it"},
		{Key: "N", Description: "Missed it"},
		{Key: "Esc", Description: "Back"},
	}
}

func (c *CardsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case cardsLoadedMsg:
		c.loaded = true
		if msg.Err != nil {
			c.errMsg = msg.Err.Error()
			return c, nil
		}
		c.due = msg.Due
		return c, nil

	case tea.KeyMsg:
		return c.handleKey(msg)
	}
	return c, nil
}

func (c *CardsScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if key == "esc" || key == "q" {
		return c, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if !c.loaded || c.idx >= len(c.due) {
		return c, nil
	}

	if !c.flipped {
		if key == " " || key == "enter" {
			c.flipped = true
		}
		return c, nil
	}

	switch key {
	case "y", "Y":
		return c, c.grade(true)
	case "n", "N":
		return c, c.grade(false)
	}
	return c, nil
}

// grade records the outcome, persists the reschedule, and advances.
func (c *CardsScreen) grade(correct bool) tea.Cmd {
	card := c.due[c.idx]
	card.Review(correct, time.Now())
	c.due[c.idx] = card

	c.idx++
	c.flipped = false
	c.reviewed++

	st := c.store
	return func() tea.Msg {
		_ = st.CardRepo().Update(context.Background(), card)
		return nil
	}
}

func (c *CardsScreen) View(width, height int) string {
	if c.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("\n\n  Error: " + c.errMsg)
	}
	if !c.loaded {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Loading...")
	}
	if len(c.due) == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  No cards due. Come back tomorrow!")
	}
	if c.idx >= len(c.due) {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Bold(true).
			Render(fmt.Sprintf("\n\n  All done! %d card(s) reviewed.", c.reviewed))
	}

	card := c.due[c.idx]

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Card %d of %d", c.idx+1, len(c.due))))
	b.WriteString("\n\n")

	face := card.Front
	if c.flipped {
		face = card.Back
	}
	cardBox := theme.Card.Width(min(width-8, 70)).Render(face)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, cardBox))
	b.WriteString("\n\n")

	hint := "Space flips the card"
	if c.flipped {
		hint = "Did you get it right?  [Y] yes   [N] no"
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(hint))

	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
