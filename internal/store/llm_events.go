package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sgoswami/tutorbox/internal/llm"
)

// LLMEventRecord is one stored LLM request event.
type LLMEventRecord struct {
	ID           int
	Timestamp    time.Time
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRepo persists and queries LLM request events. It implements
// llm.EventAppender for the logging decorator.
type LLMEventRepo struct {
	db *sql.DB
}

var _ llm.EventAppender = (*LLMEventRepo)(nil)

// AppendLLMEvent records one LLM API call.
func (r *LLMEventRepo) AppendLLMEvent(ctx context.Context, ev llm.Event) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO llm_events
		 (timestamp, provider, model, purpose, input_tokens, output_tokens,
		  latency_ms, success, error_message, request_body, response_body)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC(), ev.Provider, ev.Model, ev.Purpose,
		ev.InputTokens, ev.OutputTokens, ev.LatencyMs,
		ev.Success, ev.ErrorMessage, ev.RequestBody, ev.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("insert llm event: %w", err)
	}
	return nil
}

// List returns the most recent events, newest first.
func (r *LLMEventRepo) List(ctx context.Context, limit int) ([]LLMEventRecord, error) {
	q := `SELECT id, timestamp, provider, model, purpose, input_tokens,
	             output_tokens, latency_ms, success, error_message
	      FROM llm_events ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query llm events: %w", err)
	}
	defer rows.Close()

	var events []LLMEventRecord
	for rows.Next() {
		var ev LLMEventRecord
		if err := rows.Scan(&ev.ID, &ev.Timestamp, &ev.Provider, &ev.Model,
			&ev.Purpose, &ev.InputTokens, &ev.OutputTokens, &ev.LatencyMs,
			&ev.Success, &ev.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan llm event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// Get returns the full event including request/response bodies, or nil if
// not found.
func (r *LLMEventRepo) Get(ctx context.Context, id int) (*LLMEventRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, timestamp, provider, model, purpose, input_tokens,
		        output_tokens, latency_ms, success, error_message,
		        request_body, response_body
		 FROM llm_events WHERE id = ?`, id)

	var ev LLMEventRecord
	err := row.Scan(&ev.ID, &ev.Timestamp, &ev.Provider, &ev.Model,
		&ev.Purpose, &ev.InputTokens, &ev.OutputTokens, &ev.LatencyMs,
		&ev.Success, &ev.ErrorMessage, &ev.RequestBody, &ev.ResponseBody)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get llm event: %w", err)
	}
	return &ev, nil
}
