package flashcards

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/sgoswami/tutorbox/internal/question"
	"github.com/sgoswami/tutorbox/internal/scoring"
)

// FromResult builds cards for every question the attempt flagged as
// needing review. The card front is the prompt; the back is the canonical
// answer plus the explanation.
func FromResult(res scoring.Result, questions []question.Question, now time.Time) []Card {
	byID := make(map[string]question.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	var cards []Card
	for _, qs := range res.PerQuestion {
		if !qs.NeedsReview {
			continue
		}
		q, ok := byID[qs.QuestionID]
		if !ok {
			continue
		}
		cards = append(cards, Card{
			ID:         uuid.New().String(),
			QuestionID: q.ID,
			TopicID:    q.TopicID,
			Front:      q.Prompt,
			Back:       cardBack(q),
			NextReview: now.AddDate(0, 0, BaseIntervals[0]),
		})
	}
	return cards
}

// Due filters and orders cards ready for review, most overdue first.
func Due(cards []Card, now time.Time) []Card {
	var due []Card
	for _, c := range cards {
		if c.IsDue(now) {
			due = append(due, c)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		return due[i].NextReview.Before(due[j].NextReview)
	})
	return due
}

func cardBack(q question.Question) string {
	answer := ""
	switch q.Kind {
	case question.KindMultipleChoice:
		if q.CorrectIndex >= 0 && q.CorrectIndex < len(q.Options) {
			answer = q.Options[q.CorrectIndex]
		}
	case question.KindShortAnswer:
		answer = q.Expected
	case question.KindTrueFalse:
		for i, st := range q.Statements {
			if i > 0 {
				answer += "; "
			}
			if st.IsTrue {
				answer += "true"
			} else {
				answer += "false"
			}
		}
	}
	if q.Explanation == "" {
		return answer
	}
	if answer == "" {
		return q.Explanation
	}
	return answer + "\n" + q.Explanation
}
