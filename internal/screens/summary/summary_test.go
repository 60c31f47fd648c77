package summary

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/sgoswami/tutorbox/internal/exam"
	"github.com/sgoswami/tutorbox/internal/generator"
	"github.com/sgoswami/tutorbox/internal/question"
	"github.com/sgoswami/tutorbox/internal/router"
	"github.com/sgoswami/tutorbox/internal/scoring"
	"github.com/sgoswami/tutorbox/internal/screen"
)

type mockGenerator struct {
	questions []question.Question
}

func (m *mockGenerator) Generate(_ context.Context, _ generator.Request) ([]question.Question, error) {
	return m.questions, nil
}

type stubScreen struct{}

func (stubScreen) Init() tea.Cmd                           { return nil }
func (stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return stubScreen{}, nil }
func (stubScreen) View(int, int) string                    { return "" }
func (stubScreen) Title() string                           { return "stub" }

// gradedSummary builds a summary screen over a real graded attempt.
func gradedSummary(t *testing.T, mode scoring.Mode) *SummaryScreen {
	t.Helper()
	questions := []question.Question{
		{ID: "mc1", Kind: question.KindMultipleChoice, Prompt: "What is 2 + 2?",
			Options: []string{"3", "4", "5", "6"}, CorrectIndex: 1},
		{ID: "sa1", Kind: question.KindShortAnswer, Prompt: "Solve x + 1 = 3", Expected: "2"},
	}
	controller := exam.New(&mockGenerator{questions: questions}, nil)
	cfg := exam.Config{Mode: mode}

	if err := controller.Start(context.Background(), cfg); err != nil {
		t.Fatalf("Start: %v", err)
	}
	controller.UpdateAnswer("mc1", question.ChoiceValue(1))
	if err := controller.Submit(); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	return New(controller, cfg, controller.State(), func() screen.Screen { return stubScreen{} })
}

func TestSummaryScreen_Title(t *testing.T) {
	s := gradedSummary(t, scoring.ModeReview)
	if s.Title() != "Results" {
		t.Errorf("Title = %q, want Results", s.Title())
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := gradedSummary(t, scoring.ModeReview)
	view := s.View(80, 24)
	if view == "" {
		t.Fatal("expected non-empty summary view")
	}
	if !strings.Contains(view, "points") {
		t.Error("review summary should show the floating point scale")
	}
}

func TestSummaryScreen_ExamShowsFlashcardNote(t *testing.T) {
	s := gradedSummary(t, scoring.ModeExam)
	view := s.View(80, 24)
	if !strings.Contains(view, "flashcards") {
		t.Error("exam summary should note missed questions became flashcards")
	}
}

func TestSummaryScreen_Navigation_Esc(t *testing.T) {
	s := gradedSummary(t, scoring.ModeReview)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on Esc (pop)")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestSummaryScreen_Retake(t *testing.T) {
	s := gradedSummary(t, scoring.ModeReview)
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd == nil {
		t.Fatal("expected a command on R (retake)")
	}
	rep, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if _, ok := rep.Screen.(stubScreen); !ok {
		t.Errorf("replacement screen = %T, want the injected setup", rep.Screen)
	}
	if got := s.controller.State().Phase; got != exam.PhaseSetup {
		t.Errorf("Phase after retake = %v, want setup", got)
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := gradedSummary(t, scoring.ModeReview)
	if hints := s.KeyHints(); len(hints) != 3 {
		t.Errorf("KeyHints length = %d, want 3", len(hints))
	}
}
