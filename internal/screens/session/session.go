// Package session drives an active attempt: it renders the question set,
// forwards answers to the controller, and hands off to the summary when
// the attempt is graded.
package session

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/sgoswami/tutorbox/internal/exam"
	"github.com/sgoswami/tutorbox/internal/flashcards"
	"github.com/sgoswami/tutorbox/internal/question"
	"github.com/sgoswami/tutorbox/internal/router"
	"github.com/sgoswami/tutorbox/internal/scoring"
	"github.com/sgoswami/tutorbox/internal/screen"
	"github.com/sgoswami/tutorbox/internal/store"
	"github.com/sgoswami/tutorbox/internal/ui/components"
	"github.com/sgoswami/tutorbox/internal/ui/layout"
)

// questionInput is the per-question input model. Exactly one of the three
// components is live, matching the question variant.
type questionInput struct {
	mc    components.MultiChoice
	tf    components.StatementList
	text  components.TextInput
	kind  question.Kind
	dirty bool
}

// SessionScreen implements screen.Screen for an active attempt. The
// summary screen is built through an injected factory so the screen
// packages stay free of construction cycles.
type SessionScreen struct {
	controller  *exam.Controller
	store       *store.Store
	cfg         exam.Config
	makeSummary func(exam.State) screen.Screen

	questions []question.Question
	inputs    []questionInput
	idx       int

	generating       bool
	errMsg           string
	showingQuit      bool
	showingSubmit    bool
	secondsRemaining int
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.HeaderStatusProvider = (*SessionScreen)(nil)

// New creates a session screen that will start the attempt on Init.
func New(controller *exam.Controller, st *store.Store, cfg exam.Config, makeSummary func(exam.State) screen.Screen) *SessionScreen {
	return &SessionScreen{
		controller:  controller,
		store:       st,
		cfg:         cfg,
		makeSummary: makeSummary,
		generating:  true,
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	return s.startSession()
}

func (s *SessionScreen) Title() string {
	if s.cfg.Mode == scoring.ModeExam {
		return "Exam"
	}
	return "Review"
}

// HeaderStatus shows the countdown while a timed attempt is running.
func (s *SessionScreen) HeaderStatus() string {
	if s.generating || s.secondsRemaining <= 0 {
		return ""
	}
	mins := s.secondsRemaining / 60
	secs := s.secondsRemaining % 60
	return formatClock(mins, secs)
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.showingQuit || s.showingSubmit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Yes"},
			{Key: "N", Description: "No"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Next question"},
		{Key: "Ctrl+S", Description: "Submit"},
	}
	if s.cfg.Mode == scoring.ModeReview {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+R", Description: "Check answer"})
	}
	hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
	return hints
}

// startSession issues the generation request off the UI goroutine.
func (s *SessionScreen) startSession() tea.Cmd {
	controller := s.controller
	cfg := s.cfg
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		return generateDoneMsg{Err: controller.Start(ctx, cfg)}
	}
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generateDoneMsg:
		return s.handleGenerated(msg)

	case clockTickMsg:
		return s.handleClockTick()

	case finishedMsg:
		return s.handleFinished()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s.forwardToInput(msg)
}

func (s *SessionScreen) handleGenerated(msg generateDoneMsg) (screen.Screen, tea.Cmd) {
	s.generating = false
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}

	state := s.controller.State()
	s.questions = state.Questions
	s.secondsRemaining = state.SecondsRemaining
	s.inputs = make([]questionInput, len(s.questions))
	for i, q := range s.questions {
		s.inputs[i] = newQuestionInput(q)
	}
	if len(s.inputs) > 0 && s.inputs[0].kind == question.KindShortAnswer {
		s.inputs[0].text.Model.Focus()
	}

	return s, tickCmd()
}

func (s *SessionScreen) handleClockTick() (screen.Screen, tea.Cmd) {
	state := s.controller.State()
	s.secondsRemaining = state.SecondsRemaining

	// The controller auto-submits when the countdown expires.
	if state.Phase == exam.PhaseResult {
		return s, func() tea.Msg { return finishedMsg{} }
	}
	if state.Phase != exam.PhaseTaking {
		return s, nil
	}
	return s, tickCmd()
}

// handleFinished saves flashcards for missed exam questions and replaces
// the session with the summary screen.
func (s *SessionScreen) handleFinished() (screen.Screen, tea.Cmd) {
	state := s.controller.State()
	if state.Result == nil {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.cfg.Mode == scoring.ModeExam && s.store != nil {
		cards := flashcards.FromResult(*state.Result, state.Questions, time.Now())
		if len(cards) > 0 {
			_ = s.store.CardRepo().Save(context.Background(), cards)
		}
	}

	next := s.makeSummary(state)
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		// Generation failed; the controller reverted to setup.
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.generating {
		return s, nil
	}

	if s.showingQuit {
		switch key {
		case "y", "Y":
			// Quitting early grades whatever has been answered so far.
			if err := s.controller.Submit(); err != nil {
				s.errMsg = err.Error()
				return s, nil
			}
			return s, func() tea.Msg { return finishedMsg{} }
		case "n", "N", "esc":
			s.showingQuit = false
			s.controller.Resume()
		}
		return s, nil
	}

	if s.showingSubmit {
		switch key {
		case "y", "Y":
			s.showingSubmit = false
			s.controller.Resume()
			if err := s.controller.Submit(); err != nil {
				s.errMsg = err.Error()
				return s, nil
			}
			return s, func() tea.Msg { return finishedMsg{} }
		case "n", "N", "esc":
			s.showingSubmit = false
			s.controller.Resume()
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.showingQuit = true
		s.controller.Pause()
		return s, nil
	case "ctrl+s":
		s.showingSubmit = true
		s.controller.Pause()
		return s, nil
	case "ctrl+r":
		if s.cfg.Mode == scoring.ModeReview && s.idx < len(s.questions) {
			_ = s.controller.Reveal(s.questions[s.idx].ID)
		}
		return s, nil
	case "tab":
		return s.moveTo(s.idx + 1)
	case "shift+tab":
		return s.moveTo(s.idx - 1)
	case "left", "right":
		// Arrow navigation only when the question has no text cursor.
		if s.current() != nil && s.current().kind != question.KindShortAnswer {
			if key == "right" {
				return s.moveTo(s.idx + 1)
			}
			return s.moveTo(s.idx - 1)
		}
	}

	return s.forwardToInput(msg)
}

// moveTo switches the visible question, wrapping at both ends.
func (s *SessionScreen) moveTo(idx int) (screen.Screen, tea.Cmd) {
	n := len(s.questions)
	if n == 0 {
		return s, nil
	}
	s.idx = ((idx % n) + n) % n

	var cmd tea.Cmd
	in := s.current()
	if in.kind == question.KindShortAnswer {
		cmd = in.text.Model.Focus()
	}
	return s, cmd
}

func (s *SessionScreen) current() *questionInput {
	if s.idx < 0 || s.idx >= len(s.inputs) {
		return nil
	}
	return &s.inputs[s.idx]
}

// forwardToInput routes the message to the active question's component and
// pushes any answer change to the controller.
func (s *SessionScreen) forwardToInput(msg tea.Msg) (screen.Screen, tea.Cmd) {
	in := s.current()
	if in == nil || s.generating {
		return s, nil
	}

	q := s.questions[s.idx]
	var cmd tea.Cmd

	switch in.kind {
	case question.KindMultipleChoice:
		before := in.mc.Chosen
		in.mc, cmd = in.mc.Update(msg)
		if in.mc.Chosen != before && in.mc.Chosen >= 0 {
			_ = s.controller.UpdateAnswer(q.ID, question.ChoiceValue(in.mc.Chosen))
		}

	case question.KindTrueFalse:
		before := cloneMarks(in.tf.Marks)
		in.tf, cmd = in.tf.Update(msg)
		if !marksEqual(before, in.tf.Marks) {
			var marks question.MarksValue
			copy(marks[:], in.tf.Marks)
			_ = s.controller.UpdateAnswer(q.ID, marks)
		}

	case question.KindShortAnswer:
		before := in.text.Value()
		in.text, cmd = in.text.Update(msg)
		if in.text.Value() != before {
			_ = s.controller.UpdateAnswer(q.ID, question.TextValue(in.text.Value()))
		}
	}

	return s, cmd
}

func newQuestionInput(q question.Question) questionInput {
	in := questionInput{kind: q.Kind}
	switch q.Kind {
	case question.KindMultipleChoice:
		in.mc = components.NewMultiChoice(q.Options, q.CorrectIndex)
	case question.KindTrueFalse:
		statements := make([]string, len(q.Statements))
		truths := make([]bool, len(q.Statements))
		for i, st := range q.Statements {
			statements[i] = st.Text
			truths[i] = st.IsTrue
		}
		in.tf = components.NewStatementList(statements, truths)
	case question.KindShortAnswer:
		ti := components.NewTextInput("Type your answer...", false, 120)
		ti.Model.Blur()
		in.text = ti
	}
	return in
}

func cloneMarks(marks []*bool) []*bool {
	out := make([]*bool, len(marks))
	copy(out, marks)
	return out
}

func marksEqual(a, b []*bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if (a[i] == nil) != (b[i] == nil) {
			return false
		}
		if a[i] != nil && *a[i] != *b[i] {
			return false
		}
	}
	return true
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}
