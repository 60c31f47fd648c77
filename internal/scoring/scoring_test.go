package scoring

import (
	"testing"

	"github.com/sgoswami/tutorbox/internal/question"
)

func mcQuestion(id string, correct int) question.Question {
	return question.Question{
		ID:           id,
		Kind:         question.KindMultipleChoice,
		Options:      []string{"a", "b", "c", "d"},
		CorrectIndex: correct,
	}
}

func tfQuestion(id string, truths [4]bool) question.Question {
	statements := make([]question.Statement, question.ClusterSize)
	for i := range statements {
		statements[i] = question.Statement{Text: "s", IsTrue: truths[i]}
	}
	return question.Question{ID: id, Kind: question.KindTrueFalse, Statements: statements}
}

func saQuestion(id, expected string) question.Question {
	return question.Question{ID: id, Kind: question.KindShortAnswer, Expected: expected}
}

func choiceAnswer(id string, choice int) question.Answer {
	a := question.NewAnswer(id)
	question.Apply(&a, question.ChoiceValue(choice))
	return a
}

func marksAnswer(id string, marks [4]*bool) question.Answer {
	a := question.NewAnswer(id)
	question.Apply(&a, question.MarksValue(marks))
	return a
}

func textAnswer(id, text string) question.Answer {
	a := question.NewAnswer(id)
	question.Apply(&a, question.TextValue(text))
	return a
}

func boolPtr(b bool) *bool { return &b }

func TestClusterCreditTable(t *testing.T) {
	truths := [4]bool{true, false, true, false}

	tests := []struct {
		name  string
		marks [4]*bool
		want  float64
	}{
		{"zero correct", [4]*bool{boolPtr(false), boolPtr(true), boolPtr(false), boolPtr(true)}, 0},
		{"one correct", [4]*bool{boolPtr(true), boolPtr(true), boolPtr(false), boolPtr(true)}, 0.1},
		{"two correct", [4]*bool{boolPtr(true), boolPtr(false), boolPtr(false), boolPtr(true)}, 0.25},
		{"three correct", [4]*bool{boolPtr(true), boolPtr(false), boolPtr(true), boolPtr(true)}, 0.5},
		{"all correct", [4]*bool{boolPtr(true), boolPtr(false), boolPtr(true), boolPtr(false)}, 1.0},
		{"unmarked never counts", [4]*bool{boolPtr(true), nil, nil, nil}, 0.1},
		{"all unmarked", [4]*bool{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tfQuestion("tf1", truths)
			answers := map[string]question.Answer{"tf1": marksAnswer("tf1", tt.marks)}

			res := Grade(ModeReview, []question.Question{q}, answers)
			if res.RawTotal != tt.want {
				t.Errorf("cluster credit = %v, want %v", res.RawTotal, tt.want)
			}
		})
	}
}

func TestGradeWeights(t *testing.T) {
	questions := []question.Question{
		mcQuestion("mc1", 2),
		saQuestion("sa1", "42"),
		tfQuestion("tf1", [4]bool{true, true, true, true}),
	}
	answers := map[string]question.Answer{
		"mc1": choiceAnswer("mc1", 2),
		"sa1": textAnswer("sa1", "42"),
		"tf1": marksAnswer("tf1", [4]*bool{boolPtr(true), boolPtr(true), boolPtr(true), boolPtr(true)}),
	}

	res := Grade(ModeReview, questions, answers)

	if res.RawTotal != 0.25+0.5+1.0 {
		t.Errorf("RawTotal = %v, want 1.75", res.RawTotal)
	}
	if res.MaxTotal != 1.75 {
		t.Errorf("MaxTotal = %v, want 1.75", res.MaxTotal)
	}
	for _, qs := range res.PerQuestion {
		if qs.NeedsReview {
			t.Errorf("question %s flagged for review despite full marks", qs.QuestionID)
		}
	}
}

func TestGradeExamClamp(t *testing.T) {
	// 11 clusters at full credit exceed the display scale.
	var questions []question.Question
	answers := make(map[string]question.Answer)
	for i := 0; i < 11; i++ {
		id := string(rune('a' + i))
		questions = append(questions, tfQuestion(id, [4]bool{true, true, true, true}))
		answers[id] = marksAnswer(id, [4]*bool{boolPtr(true), boolPtr(true), boolPtr(true), boolPtr(true)})
	}

	res := Grade(ModeExam, questions, answers)

	if res.Score != ExamScale {
		t.Errorf("exam Score = %v, want clamp to %v", res.Score, ExamScale)
	}
	if res.MaxScore != ExamScale {
		t.Errorf("exam MaxScore = %v, want %v", res.MaxScore, ExamScale)
	}
	if res.RawTotal != 11.0 {
		t.Errorf("RawTotal = %v, want unclamped 11.0", res.RawTotal)
	}
}

func TestGradeReviewNoClamp(t *testing.T) {
	var questions []question.Question
	answers := make(map[string]question.Answer)
	for i := 0; i < 11; i++ {
		id := string(rune('a' + i))
		questions = append(questions, tfQuestion(id, [4]bool{true, true, true, true}))
		answers[id] = marksAnswer(id, [4]*bool{boolPtr(true), boolPtr(true), boolPtr(true), boolPtr(true)})
	}

	res := Grade(ModeReview, questions, answers)

	if res.Score != 11.0 {
		t.Errorf("review Score = %v, want 11.0", res.Score)
	}
	if res.MaxScore != 11.0 {
		t.Errorf("review MaxScore = %v, want 11.0", res.MaxScore)
	}
}

func TestGradeUnanswered(t *testing.T) {
	questions := []question.Question{
		mcQuestion("mc1", 0),
		saQuestion("sa1", "7"),
	}
	answers := map[string]question.Answer{
		"mc1": choiceAnswer("mc1", 0),
	}

	res := Grade(ModeReview, questions, answers)

	if res.RawTotal != 0.25 {
		t.Errorf("RawTotal = %v, want 0.25", res.RawTotal)
	}
	// Unanswered stays in the denominator.
	if res.MaxTotal != 0.75 {
		t.Errorf("MaxTotal = %v, want 0.75", res.MaxTotal)
	}

	var sa QuestionScore
	for _, qs := range res.PerQuestion {
		if qs.QuestionID == "sa1" {
			sa = qs
		}
	}
	if sa.Points != 0 {
		t.Errorf("unanswered Points = %v, want 0", sa.Points)
	}
	if !sa.NeedsReview {
		t.Error("unanswered question should be flagged for review")
	}
}

func TestGradeWrongAnswers(t *testing.T) {
	questions := []question.Question{
		mcQuestion("mc1", 1),
		saQuestion("sa1", "10"),
	}
	answers := map[string]question.Answer{
		"mc1": choiceAnswer("mc1", 3),
		"sa1": textAnswer("sa1", "11"),
	}

	res := Grade(ModeExam, questions, answers)

	if res.RawTotal != 0 {
		t.Errorf("RawTotal = %v, want 0", res.RawTotal)
	}
	for _, qs := range res.PerQuestion {
		if !qs.NeedsReview {
			t.Errorf("question %s should need review", qs.QuestionID)
		}
	}
}

func TestGradeDeterministic(t *testing.T) {
	questions := []question.Question{
		mcQuestion("mc1", 2),
		tfQuestion("tf1", [4]bool{true, false, false, true}),
		saQuestion("sa1", "3.5"),
	}
	answers := map[string]question.Answer{
		"mc1": choiceAnswer("mc1", 2),
		"tf1": marksAnswer("tf1", [4]*bool{boolPtr(true), boolPtr(false), boolPtr(true), boolPtr(true)}),
		"sa1": textAnswer("sa1", "3.5"),
	}

	first := Grade(ModeExam, questions, answers)
	for i := 0; i < 10; i++ {
		got := Grade(ModeExam, questions, answers)
		if got.Score != first.Score || got.RawTotal != first.RawTotal {
			t.Fatalf("grading not deterministic: %v vs %v", got, first)
		}
	}
}
