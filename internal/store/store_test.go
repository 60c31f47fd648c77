package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/sgoswami/tutorbox/internal/flashcards"
	"github.com/sgoswami/tutorbox/internal/history"
	"github.com/sgoswami/tutorbox/internal/llm"
	"github.com/sgoswami/tutorbox/internal/question"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenIdempotentMigration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s1, err := Open(path)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	s1.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	s2.Close()
}

func TestHistoryRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.HistoryRepo()
	ctx := context.Background()

	rec := history.Record{
		ID:        "rec1",
		Timestamp: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Mode:      "exam",
		Score:     7.25,
		MaxScore:  10,
		Questions: []question.Question{
			{ID: "q1", Kind: question.KindShortAnswer, Prompt: "Solve x+1=3", Expected: "2"},
		},
		Answers: map[string]question.Answer{
			"q1": {QuestionID: "q1", Choice: -1, Text: "2"},
		},
	}

	if err := repo.Append(ctx, rec); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got, err := repo.List(ctx, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
	r := got[0]
	if r.ID != "rec1" || r.Mode != "exam" || r.Score != 7.25 || r.MaxScore != 10 {
		t.Errorf("record = %+v", r)
	}
	if len(r.Questions) != 1 || r.Questions[0].Expected != "2" {
		t.Errorf("questions = %+v", r.Questions)
	}
	if r.Answers["q1"].Text != "2" {
		t.Errorf("answers = %+v", r.Answers)
	}
}

func TestHistoryListOrderAndLimit(t *testing.T) {
	s := openTestStore(t)
	repo := s.HistoryRepo()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "mid", "new"} {
		rec := history.Record{
			ID:        id,
			Timestamp: base.Add(time.Duration(i) * time.Hour),
			Mode:      "review",
		}
		if err := repo.Append(ctx, rec); err != nil {
			t.Fatalf("Append(%s): %v", id, err)
		}
	}

	got, err := repo.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	if got[0].ID != "new" || got[1].ID != "mid" {
		t.Errorf("order = %s, %s, want new, mid", got[0].ID, got[1].ID)
	}
}

func TestCardUpsertAndUpdate(t *testing.T) {
	s := openTestStore(t)
	repo := s.CardRepo()
	ctx := context.Background()

	next := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	card := flashcards.Card{
		ID:         "c1",
		QuestionID: "q1",
		TopicID:    "fractions",
		Front:      "Solve x+1=3",
		Back:       "2",
		NextReview: next,
	}

	if err := repo.Save(ctx, []flashcards.Card{card}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d cards, want 1", len(got))
	}
	if !got[0].LastReview.IsZero() {
		t.Errorf("LastReview = %v, want zero for unreviewed card", got[0].LastReview)
	}

	// Review and update in place.
	card.Review(true, next)
	if err := repo.Update(ctx, card); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	c := got[0]
	if c.Stage != 1 || c.Hits != 1 {
		t.Errorf("card after update = %+v", c)
	}
	if c.LastReview.IsZero() {
		t.Error("LastReview not persisted")
	}

	// Saving the same id again keeps a single row.
	if err := repo.Save(ctx, []flashcards.Card{card}); err != nil {
		t.Fatalf("re-Save: %v", err)
	}
	got, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d cards after upsert, want 1", len(got))
	}
}

func TestCardListOrder(t *testing.T) {
	s := openTestStore(t)
	repo := s.CardRepo()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	cards := []flashcards.Card{
		{ID: "later", QuestionID: "q", TopicID: "t", Front: "f", Back: "b", NextReview: base.AddDate(0, 0, 7)},
		{ID: "sooner", QuestionID: "q", TopicID: "t", Front: "f", Back: "b", NextReview: base.AddDate(0, 0, 1)},
	}
	if err := repo.Save(ctx, cards); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got[0].ID != "sooner" || got[1].ID != "later" {
		t.Errorf("order = %s, %s, want sooner, later", got[0].ID, got[1].ID)
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.LLMEventRepo()
	ctx := context.Background()

	ev := llm.Event{
		Provider:     "anthropic",
		Model:        "claude-sonnet-4-5",
		Purpose:      "question-gen",
		InputTokens:  1200,
		OutputTokens: 900,
		LatencyMs:    1534,
		Success:      true,
		RequestBody:  `{"messages":[]}`,
		ResponseBody: `[{"type":"short_answer"}]`,
	}
	if err := repo.AppendLLMEvent(ctx, ev); err != nil {
		t.Fatalf("AppendLLMEvent: %v", err)
	}

	events, err := repo.List(ctx, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	e := events[0]
	if e.Provider != "anthropic" || e.Purpose != "question-gen" || !e.Success {
		t.Errorf("event = %+v", e)
	}
	if e.RequestBody != "" {
		t.Errorf("List should not hydrate bodies, got %q", e.RequestBody)
	}

	full, err := repo.Get(ctx, e.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if full == nil {
		t.Fatal("Get returned nil for existing event")
	}
	if full.RequestBody != ev.RequestBody || full.ResponseBody != ev.ResponseBody {
		t.Errorf("bodies = %q / %q", full.RequestBody, full.ResponseBody)
	}

	missing, err := repo.Get(ctx, 99999)
	if err != nil {
		t.Fatalf("Get missing: %v", err)
	}
	if missing != nil {
		t.Errorf("Get missing = %+v, want nil", missing)
	}
}

func TestDefaultDBPathEnvOverride(t *testing.T) {
	want := filepath.Join(t.TempDir(), "custom", "box.db")
	t.Setenv("TUTORBOX_DB", want)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}
