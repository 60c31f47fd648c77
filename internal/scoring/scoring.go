// Package scoring computes per-question and aggregate scores for a
// completed attempt. Grading is a pure function of the question/answer
// pairs and the session mode.
package scoring

import (
	"github.com/sgoswami/tutorbox/internal/match"
	"github.com/sgoswami/tutorbox/internal/question"
)

// Mode selects the aggregation policy.
type Mode string

const (
	// ModeExam is the timed mode with a fixed 10-point display scale.
	ModeExam Mode = "exam"

	// ModeReview is the open-scale mode; the displayed maximum floats
	// with the configured question count.
	ModeReview Mode = "review"
)

// Per-question weights. Fixed, not configurable per instance: the exam
// question mix is designed to sum to roughly 10 at full marks.
const (
	WeightMultipleChoice = 0.25
	WeightShortAnswer    = 0.5
	WeightTrueFalse      = 1.0
)

// ExamScale is the fixed displayed maximum in exam mode.
const ExamScale = 10.0

// clusterCredit maps the number of correctly marked statements (0-4) to
// awarded points. Deliberately non-linear: 3 of 4 correct is worth half
// credit, not three quarters, so guessing the last statement pays little.
var clusterCredit = [question.ClusterSize + 1]float64{0, 0.1, 0.25, 0.5, 1.0}

// QuestionScore is the grading detail for one question.
type QuestionScore struct {
	QuestionID string

	// Points awarded and the question's maximum weight.
	Points float64
	Max    float64

	// NeedsReview is set when the question earned less than its maximum,
	// including partial true/false credit and unanswered questions.
	NeedsReview bool
}

// Result is the aggregate outcome of grading an attempt.
type Result struct {
	// Score and MaxScore are the displayed values: clamped to the fixed
	// 10-point scale in exam mode, raw in review mode.
	Score    float64
	MaxScore float64

	// RawTotal and MaxTotal are the unclamped sums.
	RawTotal float64
	MaxTotal float64

	// PerQuestion holds the detail rows in question order.
	PerQuestion []QuestionScore
}

// Grade scores every question against the answer map. Questions without an
// answer entry score zero and stay in the denominator.
func Grade(mode Mode, questions []question.Question, answers map[string]question.Answer) Result {
	res := Result{PerQuestion: make([]QuestionScore, 0, len(questions))}

	for _, q := range questions {
		ans, answered := answers[q.ID]
		qs := gradeQuestion(q, ans, answered)
		res.RawTotal += qs.Points
		res.MaxTotal += qs.Max
		res.PerQuestion = append(res.PerQuestion, qs)
	}

	if mode == ModeExam {
		res.Score = min(ExamScale, res.RawTotal)
		res.MaxScore = ExamScale
	} else {
		res.Score = res.RawTotal
		res.MaxScore = res.MaxTotal
	}
	return res
}

func gradeQuestion(q question.Question, ans question.Answer, answered bool) QuestionScore {
	qs := QuestionScore{QuestionID: q.ID, Max: maxWeight(q.Kind)}

	if answered {
		switch q.Kind {
		case question.KindMultipleChoice:
			if ans.Choice == q.CorrectIndex {
				qs.Points = WeightMultipleChoice
			}
		case question.KindTrueFalse:
			qs.Points = clusterCredit[countClusterHits(q.Statements, ans.Marks)]
		case question.KindShortAnswer:
			if match.Matches(ans.Text, q.Expected) {
				qs.Points = WeightShortAnswer
			}
		}
	}

	qs.NeedsReview = qs.Points < qs.Max
	return qs
}

// countClusterHits counts statements whose mark equals IsTrue. An unmarked
// slot never counts as a hit.
func countClusterHits(statements []question.Statement, marks [question.ClusterSize]*bool) int {
	hits := 0
	for i, st := range statements {
		if i >= question.ClusterSize {
			break
		}
		if marks[i] != nil && *marks[i] == st.IsTrue {
			hits++
		}
	}
	return hits
}

func maxWeight(k question.Kind) float64 {
	switch k {
	case question.KindTrueFalse:
		return WeightTrueFalse
	case question.KindShortAnswer:
		return WeightShortAnswer
	default:
		return WeightMultipleChoice
	}
}
