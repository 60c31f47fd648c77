// Package history lists past graded sessions.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sgoswami/tutorbox/internal/history"
	"github.com/sgoswami/tutorbox/internal/router"
	"github.com/sgoswami/tutorbox/internal/screen"
	"github.com/sgoswami/tutorbox/internal/store"
	"github.com/sgoswami/tutorbox/internal/ui/layout"
	"github.com/sgoswami/tutorbox/internal/ui/theme"
)

const pageSize = 50

// HistoryScreen lists past attempts newest first.
type HistoryScreen struct {
	store    *store.Store
	records  []history.Record
	selected int
	errMsg   string
	loaded   bool
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

type recordsLoadedMsg struct {
	Records []history.Record
	Err     error
}

// New creates a history screen backed by the store.
func New(st *store.Store) *HistoryScreen {
	return &HistoryScreen{store: st}
}

func (h *HistoryScreen) Init() tea.Cmd {
	st := h.store
	return func() tea.Msg {
		records, err := st.HistoryRepo().List(context.Background(), pageSize)
		return recordsLoadedMsg{Records: records, Err: err}
	}
}

func (h *HistoryScreen) Title() string {
	return "History"
}

func (h *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (h *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case recordsLoadedMsg:
		h.loaded = true
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
			return h, nil
		}
		h.records = msg.Records
		return h, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return h, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if h.selected > 0 {
				h.selected--
			}
		case "down", "j":
			if h.selected < len(h.records)-1 {
				h.selected++
			}
		}
	}
	return h, nil
}

func (h *HistoryScreen) View(width, height int) string {
	if h.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("\n\n  Error: " + h.errMsg)
	}
	if !h.loaded {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Loading...")
	}
	if len(h.records) == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  No sessions yet. Take an exam to see it here.")
	}

	var b strings.Builder
	b.WriteString("\n")

	header := fmt.Sprintf("  %-19s  %-8s  %-10s  %s", "Date", "Mode", "Score", "Questions")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(header))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render("  " + strings.Repeat("─", max(width-6, 0))))
	b.WriteString("\n")

	visible := height - 5
	if visible < 1 {
		visible = 1
	}
	start := 0
	if h.selected >= visible {
		start = h.selected - visible + 1
	}

	for i := start; i < len(h.records) && i < start+visible; i++ {
		rec := h.records[i]
		line := fmt.Sprintf("  %-19s  %-8s  %5.2f/%-4.0f  %d",
			rec.Timestamp.Local().Format("2006-01-02 15:04"),
			rec.Mode,
			rec.Score,
			rec.MaxScore,
			len(rec.Questions),
		)
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == h.selected {
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
