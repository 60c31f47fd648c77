package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sgoswami/tutorbox/internal/history"
)

// HistoryRepo is the append-only session history store. It implements
// history.Appender; the engine never reads records back, only the CLI does.
type HistoryRepo struct {
	db *sql.DB
}

var _ history.Appender = (*HistoryRepo)(nil)

// Append stores one completed session record.
func (r *HistoryRepo) Append(ctx context.Context, rec history.Record) error {
	questions, err := json.Marshal(rec.Questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}
	answers, err := json.Marshal(rec.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO history (id, timestamp, mode, score, max_score, questions, answers)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Timestamp.UTC(), rec.Mode, rec.Score, rec.MaxScore,
		string(questions), string(answers),
	)
	if err != nil {
		return fmt.Errorf("insert history record: %w", err)
	}
	return nil
}

// List returns the most recent records, newest first. limit <= 0 means
// unlimited.
func (r *HistoryRepo) List(ctx context.Context, limit int) ([]history.Record, error) {
	q := `SELECT id, timestamp, mode, score, max_score, questions, answers
	      FROM history ORDER BY timestamp DESC`
	args := []any{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var records []history.Record
	for rows.Next() {
		var (
			rec       history.Record
			ts        time.Time
			questions string
			answers   string
		)
		if err := rows.Scan(&rec.ID, &ts, &rec.Mode, &rec.Score, &rec.MaxScore, &questions, &answers); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		rec.Timestamp = ts
		if err := json.Unmarshal([]byte(questions), &rec.Questions); err != nil {
			return nil, fmt.Errorf("unmarshal questions: %w", err)
		}
		if err := json.Unmarshal([]byte(answers), &rec.Answers); err != nil {
			return nil, fmt.Errorf("unmarshal answers: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
