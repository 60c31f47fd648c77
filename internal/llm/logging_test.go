package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

type memoryAppender struct {
	events []Event
	err    error
}

func (a *memoryAppender) AppendLLMEvent(_ context.Context, ev Event) error {
	a.events = append(a.events, ev)
	return a.err
}

func TestLoggingRecordsSuccess(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`[{"type":"mc"}]`),
		Usage:   Usage{InputTokens: 100, OutputTokens: 50},
	})
	app := &memoryAppender{}
	p := WithLogging(mock, app)

	ctx := WithPurpose(context.Background(), "question-gen")
	_, err := p.Generate(ctx, Request{
		System:   "be helpful",
		Messages: []Message{{Role: RoleUser, Content: "make questions"}},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(app.events) != 1 {
		t.Fatalf("got %d events, want 1", len(app.events))
	}
	ev := app.events[0]
	if !ev.Success || ev.Purpose != "question-gen" {
		t.Errorf("event = %+v", ev)
	}
	if ev.InputTokens != 100 || ev.OutputTokens != 50 {
		t.Errorf("usage = %d/%d", ev.InputTokens, ev.OutputTokens)
	}
	if !strings.Contains(ev.RequestBody, "be helpful") || !strings.Contains(ev.RequestBody, "make questions") {
		t.Errorf("RequestBody = %q", ev.RequestBody)
	}
	if ev.ResponseBody != `[{"type":"mc"}]` {
		t.Errorf("ResponseBody = %q", ev.ResponseBody)
	}
}

func TestLoggingRecordsFailure(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: errors.New("boom")})
	app := &memoryAppender{}
	p := WithLogging(mock, app)

	_, err := p.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected provider error")
	}

	if len(app.events) != 1 {
		t.Fatalf("got %d events, want 1", len(app.events))
	}
	ev := app.events[0]
	if ev.Success {
		t.Error("failed request logged as success")
	}
	if !strings.Contains(ev.ErrorMessage, "boom") {
		t.Errorf("ErrorMessage = %q", ev.ErrorMessage)
	}
	if ev.Purpose != "unknown" {
		t.Errorf("Purpose = %q, want unknown without context label", ev.Purpose)
	}
}

func TestLoggingAppendFailureDoesNotFailRequest(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`"ok"`)})
	app := &memoryAppender{err: errors.New("db locked")}
	p := WithLogging(mock, app)

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Errorf("Generate: %v", err)
	}
	if resp == nil {
		t.Fatal("no response")
	}
}
