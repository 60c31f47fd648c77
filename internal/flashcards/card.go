// Package flashcards turns missed exam questions into spaced-repetition
// review cards with an expanding interval schedule.
package flashcards

import "time"

// BaseIntervals is the expanding review schedule in days. Stage 0 is the
// first review after the card is created.
var BaseIntervals = []int{1, 3, 7, 14, 30, 60}

// GraduationStage is the stage at which a card graduates; graduated cards
// settle on a long fixed interval.
const GraduationStage = 6

// GraduatedIntervalDays is the review interval for graduated cards.
const GraduatedIntervalDays = 90

// Card is one spaced-repetition item derived from a missed question.
type Card struct {
	ID         string    `json:"id"`
	QuestionID string    `json:"question_id"`
	TopicID    string    `json:"topic_id"`
	Front      string    `json:"front"`
	Back       string    `json:"back"`
	Stage      int       `json:"stage"`
	Hits       int       `json:"hits"`
	Graduated  bool      `json:"graduated"`
	LastReview time.Time `json:"last_review"`
	NextReview time.Time `json:"next_review"`
}

// IsDue reports whether the card is at or past its review date.
func (c *Card) IsDue(now time.Time) bool {
	return !now.Before(c.NextReview)
}

// CurrentIntervalDays returns the card's current interval in days.
func (c *Card) CurrentIntervalDays() int {
	if c.Graduated {
		return GraduatedIntervalDays
	}
	if c.Stage >= len(BaseIntervals) {
		return BaseIntervals[len(BaseIntervals)-1]
	}
	return BaseIntervals[c.Stage]
}

// Review records one review outcome and reschedules the card. A hit
// advances the stage; a miss resets the card to stage 0 the next day.
func (c *Card) Review(correct bool, now time.Time) {
	c.LastReview = now

	if !correct {
		c.Stage = 0
		c.Hits = 0
		c.Graduated = false
		c.NextReview = now.AddDate(0, 0, BaseIntervals[0])
		return
	}

	c.Hits++
	if c.Hits >= GraduationStage {
		c.Graduated = true
	}
	if !c.Graduated {
		c.Stage++
		if c.Stage >= len(BaseIntervals) {
			c.Stage = len(BaseIntervals) - 1
		}
	}
	c.NextReview = now.AddDate(0, 0, c.CurrentIntervalDays())
}
