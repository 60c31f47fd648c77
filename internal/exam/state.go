package exam

import (
	"github.com/sgoswami/tutorbox/internal/question"
	"github.com/sgoswami/tutorbox/internal/scoring"
)

// Phase is the session lifecycle phase.
type Phase int

const (
	// PhaseSetup means no attempt is active; Start is the only valid operation.
	PhaseSetup Phase = iota

	// PhaseGenerating means the generation request is in flight. All other
	// operations are rejected until it resolves.
	PhaseGenerating

	// PhaseTaking means the learner is answering questions.
	PhaseTaking

	// PhaseResult means the attempt has been graded.
	PhaseResult
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseGenerating:
		return "generating"
	case PhaseTaking:
		return "taking"
	case PhaseResult:
		return "result"
	}
	return "unknown"
}

// Session durations in seconds. Exam attempts always run the full exam
// clock; review attempts are untimed unless explicitly configured.
const (
	ExamDurationSecs        = 5400
	TimedReviewDurationSecs = 3600
)

// Config is the setup payload for one attempt.
type Config struct {
	// Mode selects exam or review semantics.
	Mode scoring.Mode

	// Timed enables the 3600s countdown for review mode. Ignored in exam
	// mode, which is always timed.
	Timed bool

	// TopicScope is the topic hint forwarded to the generator.
	TopicScope string

	// Difficulty is one of "easy", "medium", "hard".
	Difficulty string

	// Counts is the requested per-variant question mix.
	Counts Counts
}

// Counts is the requested number of questions per variant.
type Counts struct {
	MultipleChoice   int
	TrueFalseCluster int
	ShortAnswer      int
}

// State is a snapshot of the session aggregate. The controller hands out
// copies; mutation happens only through controller operations.
type State struct {
	Phase            Phase
	Mode             scoring.Mode
	Questions        []question.Question
	Answers          map[string]question.Answer
	SecondsRemaining int
	Result           *scoring.Result
}

// duration returns the initial countdown for the configured attempt, or 0
// for untimed review.
func (c Config) duration() int {
	if c.Mode == scoring.ModeExam {
		return ExamDurationSecs
	}
	if c.Timed {
		return TimedReviewDurationSecs
	}
	return 0
}
