// Package generator produces question sets through the external content
// generation collaborator. The response is free text; only the resolver in
// the question package is allowed to construct internal question values
// from it.
package generator

import (
	"context"

	"github.com/sgoswami/tutorbox/internal/question"
)

// Difficulty is the requested difficulty band.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// PartCounts is the requested question mix.
type PartCounts struct {
	MultipleChoice   int `json:"multiple_choice"`
	TrueFalseCluster int `json:"true_false_cluster"`
	ShortAnswer      int `json:"short_answer"`
}

// Total returns the total requested question count.
func (c PartCounts) Total() int {
	return c.MultipleChoice + c.TrueFalseCluster + c.ShortAnswer
}

// Request is the generation contract: a topic scope, a difficulty band,
// and per-variant counts.
type Request struct {
	TopicScope string
	Difficulty Difficulty
	Counts     PartCounts
}

// Service produces a question set for a request.
type Service interface {
	// Generate requests a question set and resolves the raw payload into
	// the internal model. Returns question.ErrMalformedContent (wrapped)
	// when the payload survives none of the repair attempts.
	Generate(ctx context.Context, req Request) ([]question.Question, error)
}
