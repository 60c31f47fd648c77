// Package history defines the immutable attempt record handed to the
// persistence collaborator. The engine only ever appends; it never reads
// history back.
package history

import (
	"context"
	"time"

	"github.com/sgoswami/tutorbox/internal/question"
)

// Record is a snapshot of one completed session. Built once on submit and
// appended exactly once.
type Record struct {
	ID        string
	Timestamp time.Time
	Mode      string
	Score     float64
	MaxScore  float64
	Questions []question.Question
	Answers   map[string]question.Answer
}

// Appender accepts completed session records.
type Appender interface {
	Append(ctx context.Context, rec Record) error
}
