package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sgoswami/tutorbox/internal/flashcards"
)

// CardRepo persists flashcards.
type CardRepo struct {
	db *sql.DB
}

// Save upserts a batch of cards. Re-missing the same question keeps the
// existing card and its schedule.
func (r *CardRepo) Save(ctx context.Context, cards []flashcards.Card) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, c := range cards {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO cards
			 (id, question_id, topic_id, front, back, stage, hits, graduated, last_review, next_review)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET
			   stage = excluded.stage,
			   hits = excluded.hits,
			   graduated = excluded.graduated,
			   last_review = excluded.last_review,
			   next_review = excluded.next_review`,
			c.ID, c.QuestionID, c.TopicID, c.Front, c.Back,
			c.Stage, c.Hits, c.Graduated, nullableTime(c.LastReview), c.NextReview.UTC(),
		)
		if err != nil {
			return fmt.Errorf("upsert card: %w", err)
		}
	}
	return tx.Commit()
}

// Update rewrites one card's review state.
func (r *CardRepo) Update(ctx context.Context, c flashcards.Card) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE cards SET stage = ?, hits = ?, graduated = ?, last_review = ?, next_review = ?
		 WHERE id = ?`,
		c.Stage, c.Hits, c.Graduated, nullableTime(c.LastReview), c.NextReview.UTC(), c.ID,
	)
	if err != nil {
		return fmt.Errorf("update card: %w", err)
	}
	return nil
}

// List returns all cards ordered by review date.
func (r *CardRepo) List(ctx context.Context) ([]flashcards.Card, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, question_id, topic_id, front, back, stage, hits, graduated, last_review, next_review
		 FROM cards ORDER BY next_review ASC`)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	defer rows.Close()

	var cards []flashcards.Card
	for rows.Next() {
		var (
			c    flashcards.Card
			last sql.NullTime
		)
		if err := rows.Scan(&c.ID, &c.QuestionID, &c.TopicID, &c.Front, &c.Back,
			&c.Stage, &c.Hits, &c.Graduated, &last, &c.NextReview); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		if last.Valid {
			c.LastReview = last.Time
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC()
}
