package question

// Kind discriminates the three question variants.
type Kind string

const (
	// KindMultipleChoice means the learner picks one of 4 options.
	KindMultipleChoice Kind = "multiple_choice"

	// KindTrueFalse means the learner marks each of 4 statements true or false.
	KindTrueFalse Kind = "true_false"

	// KindShortAnswer means the learner types a free-form answer.
	KindShortAnswer Kind = "short_answer"
)

// Level is the cognitive difficulty level of a question.
type Level string

const (
	LevelRecognition   Level = "recognition"
	LevelUnderstanding Level = "understanding"
	LevelApplication   Level = "application"
)

// ClusterSize is the number of statements in a true/false cluster.
const ClusterSize = 4

// Statement is a single sub-statement of a true/false cluster.
type Statement struct {
	// Text is the statement shown to the learner. May embed $...$ math markup.
	Text string

	// IsTrue is whether the statement is correct.
	IsTrue bool
}

// Question is a single generated question ready for an attempt.
// Kind selects which variant fields are meaningful: Options/CorrectIndex
// for multiple choice, Statements for true/false clusters, Expected for
// short answers.
type Question struct {
	// ID uniquely identifies the question within its session.
	ID string

	// TopicID is the id of the topic the question was generated for.
	TopicID string

	// Prompt is the question text shown to the learner.
	// May embed $...$ math markup.
	Prompt string

	// Explanation is the worked solution shown after grading.
	Explanation string

	// Level is the self-assessed difficulty level.
	Level Level

	// Kind selects the variant.
	Kind Kind

	// Options holds exactly 4 choices for multiple choice questions.
	Options []string

	// CorrectIndex is the 0-based index of the correct option.
	CorrectIndex int

	// Statements holds exactly 4 sub-statements for true/false clusters.
	Statements []Statement

	// Expected is the canonical short answer. Multi-part answers are
	// comma or semicolon separated.
	Expected string
}

// Answer records the learner's response to one question.
type Answer struct {
	// QuestionID pairs the answer with its question.
	QuestionID string

	// Choice is the selected option index for multiple choice, -1 if unset.
	Choice int

	// Marks holds the per-statement booleans for a true/false cluster.
	// A nil slot means the learner has not marked that statement.
	Marks [ClusterSize]*bool

	// Text is the free-form short answer input.
	Text string

	// Revealed is whether per-question feedback has been shown.
	// Meaningful only in review mode.
	Revealed bool
}

// AnswerValue is the closed union of answer payload shapes accepted by the
// session controller. Exactly one of ChoiceValue, MarksValue, or TextValue
// implements it per variant.
type AnswerValue interface {
	apply(a *Answer)
}

// ChoiceValue is a multiple choice selection (0-based option index).
type ChoiceValue int

func (v ChoiceValue) apply(a *Answer) { a.Choice = int(v) }

// MarksValue is the full 4-slot true/false marking; nil slots are unmarked.
type MarksValue [ClusterSize]*bool

func (v MarksValue) apply(a *Answer) { a.Marks = v }

// TextValue is a free-form short answer.
type TextValue string

func (v TextValue) apply(a *Answer) { a.Text = string(v) }

// Apply writes the value into the answer and invalidates prior feedback.
// Any change to the answer resets Revealed.
func Apply(a *Answer, v AnswerValue) {
	v.apply(a)
	a.Revealed = false
}

// NewAnswer returns a blank answer for the given question.
func NewAnswer(questionID string) Answer {
	return Answer{QuestionID: questionID, Choice: -1}
}
