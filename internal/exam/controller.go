// Package exam implements the session engine: the state machine that turns
// a generated question set into a timed, stateful attempt and grades it.
package exam

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sgoswami/tutorbox/internal/generator"
	"github.com/sgoswami/tutorbox/internal/history"
	"github.com/sgoswami/tutorbox/internal/question"
	"github.com/sgoswami/tutorbox/internal/scoring"
)

// Controller owns the session aggregate and is its only mutation surface.
// The UI reads snapshots via State and drives transitions through the
// operations below. The clock goroutine is the only concurrent mutator,
// so all state is guarded by one mutex.
type Controller struct {
	mu sync.Mutex

	phase            Phase
	mode             scoring.Mode
	questions        []question.Question
	answers          map[string]question.Answer
	secondsRemaining int
	result           *scoring.Result

	clock         *Clock
	clockInterval time.Duration

	gen  generator.Service
	hist history.Appender
	now  func() time.Time
}

// New creates a controller in the setup phase.
func New(gen generator.Service, hist history.Appender) *Controller {
	return &Controller{
		phase:         PhaseSetup,
		answers:       make(map[string]question.Answer),
		clockInterval: time.Second,
		gen:           gen,
		hist:          hist,
		now:           time.Now,
	}
}

// Start issues the generation request and, on success, begins the attempt.
// Valid only from setup. While the request is in flight the session is in
// the generating phase and every other operation is rejected. On failure
// the session reverts to setup and the error wraps
// ErrContentGenerationFailed for the caller to surface.
func (c *Controller) Start(ctx context.Context, cfg Config) error {
	c.mu.Lock()
	if c.phase != PhaseSetup {
		defer c.mu.Unlock()
		return &ErrInvalidTransition{Op: "start", From: c.phase}
	}
	c.phase = PhaseGenerating
	c.mu.Unlock()

	questions, err := c.gen.Generate(ctx, generator.Request{
		TopicScope: cfg.TopicScope,
		Difficulty: generator.Difficulty(cfg.Difficulty),
		Counts: generator.PartCounts{
			MultipleChoice:   cfg.Counts.MultipleChoice,
			TrueFalseCluster: cfg.Counts.TrueFalseCluster,
			ShortAnswer:      cfg.Counts.ShortAnswer,
		},
	})

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.phase = PhaseSetup
		return fmt.Errorf("%w: %w", ErrContentGenerationFailed, err)
	}

	c.mode = cfg.Mode
	c.questions = questions
	c.answers = make(map[string]question.Answer)
	c.result = nil
	c.secondsRemaining = cfg.duration()
	c.phase = PhaseTaking

	if c.secondsRemaining > 0 {
		c.clock = NewClock(c.clockInterval, c.tick)
		c.clock.Start()
	}
	return nil
}

// UpdateAnswer upserts the learner's answer for a question. Valid only
// while taking. Any change resets the revealed flag, since prior feedback
// no longer applies. Unknown question ids are ignored.
func (c *Controller) UpdateAnswer(questionID string, value question.AnswerValue) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseTaking {
		return &ErrInvalidTransition{Op: "update-answer", From: c.phase}
	}
	if !c.hasQuestion(questionID) {
		return nil
	}

	ans, ok := c.answers[questionID]
	if !ok {
		ans = question.NewAnswer(questionID)
	}
	question.Apply(&ans, value)
	c.answers[questionID] = ans
	return nil
}

// Reveal marks per-question feedback as shown. Review mode only; the exam
// mode gets feedback at the end of the session, never per question.
func (c *Controller) Reveal(questionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseTaking || c.mode != scoring.ModeReview {
		return &ErrInvalidTransition{Op: "reveal", From: c.phase}
	}
	if !c.hasQuestion(questionID) {
		return nil
	}

	ans, ok := c.answers[questionID]
	if !ok {
		ans = question.NewAnswer(questionID)
	}
	ans.Revealed = true
	c.answers[questionID] = ans
	return nil
}

// Submit grades the attempt and emits the history record. Valid only while
// taking.
func (c *Controller) Submit() error {
	c.mu.Lock()
	if c.phase != PhaseTaking {
		defer c.mu.Unlock()
		return &ErrInvalidTransition{Op: "submit", From: c.phase}
	}
	rec := c.finishLocked()
	c.mu.Unlock()

	c.emit(rec)
	return nil
}

// Retake discards the finished attempt and returns to setup. No question
// or answer carries over.
func (c *Controller) Retake() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseResult {
		return &ErrInvalidTransition{Op: "retake", From: c.phase}
	}

	c.questions = nil
	c.answers = make(map[string]question.Answer)
	c.result = nil
	c.secondsRemaining = 0
	c.phase = PhaseSetup
	return nil
}

// Pause suspends the countdown without resetting it.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.clock != nil {
		c.clock.Pause()
	}
}

// Resume re-enables a paused countdown.
func (c *Controller) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.clock != nil {
		c.clock.Resume()
	}
}

// State returns a read-only snapshot of the session aggregate.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	answers := make(map[string]question.Answer, len(c.answers))
	for id, a := range c.answers {
		answers[id] = a
	}
	questions := make([]question.Question, len(c.questions))
	copy(questions, c.questions)

	return State{
		Phase:            c.phase,
		Mode:             c.mode,
		Questions:        questions,
		Answers:          answers,
		SecondsRemaining: c.secondsRemaining,
		Result:           c.result,
	}
}

// tick runs on the clock goroutine once per second. Reaching zero behaves
// as if Submit were called; the expiry itself cancels the clock so no tick
// lands after the phase has left taking.
func (c *Controller) tick() {
	c.mu.Lock()
	if c.phase != PhaseTaking || c.secondsRemaining <= 0 {
		c.mu.Unlock()
		return
	}

	c.secondsRemaining--
	if c.secondsRemaining > 0 {
		c.mu.Unlock()
		return
	}

	rec := c.finishLocked()
	c.mu.Unlock()

	c.emit(rec)
}

// finishLocked stops the clock, grades the attempt, and builds the history
// record. Caller holds the mutex.
func (c *Controller) finishLocked() history.Record {
	if c.clock != nil {
		c.clock.Stop()
		c.clock = nil
	}

	res := scoring.Grade(c.mode, c.questions, c.answers)
	c.result = &res
	c.phase = PhaseResult

	answers := make(map[string]question.Answer, len(c.answers))
	for id, a := range c.answers {
		answers[id] = a
	}
	questions := make([]question.Question, len(c.questions))
	copy(questions, c.questions)

	return history.Record{
		ID:        uuid.New().String(),
		Timestamp: c.now(),
		Mode:      string(c.mode),
		Score:     res.Score,
		MaxScore:  res.MaxScore,
		Questions: questions,
		Answers:   answers,
	}
}

// emit appends the record to the history collaborator. A persistence
// failure does not roll back the result phase.
func (c *Controller) emit(rec history.Record) {
	if c.hist == nil {
		return
	}
	if err := c.hist.Append(context.Background(), rec); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to append history record: %v\n", err)
	}
}

func (c *Controller) hasQuestion(id string) bool {
	for _, q := range c.questions {
		if q.ID == id {
			return true
		}
	}
	return false
}
