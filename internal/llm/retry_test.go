package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func fastRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func TestRetrySucceedsAfterTransientError(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("connection refused")}},
		MockResponse{Content: json.RawMessage(`"ok"`)},
	)
	p := WithRetry(mock, fastRetryConfig())

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if string(resp.Content) != `"ok"` {
		t.Errorf("Content = %s", resp.Content)
	}
	if mock.CallCount() != 2 {
		t.Errorf("got %d attempts, want 2", mock.CallCount())
	}
}

func TestRetryExhaustsAttempts(t *testing.T) {
	unavailable := &ErrProviderUnavailable{Err: errors.New("down")}
	mock := NewMockProvider(
		MockResponse{Err: unavailable},
		MockResponse{Err: unavailable},
		MockResponse{Err: unavailable},
	)
	p := WithRetry(mock, fastRetryConfig())

	_, err := p.Generate(context.Background(), Request{})
	var target *ErrProviderUnavailable
	if !errors.As(err, &target) {
		t.Errorf("error = %v, want ErrProviderUnavailable", err)
	}
	if mock.CallCount() != 3 {
		t.Errorf("got %d attempts, want 3", mock.CallCount())
	}
}

func TestRetryInvalidResponseOnce(t *testing.T) {
	invalid := &ErrInvalidResponse{Err: errors.New("schema mismatch")}
	mock := NewMockProvider(
		MockResponse{Err: invalid},
		MockResponse{Err: invalid},
		MockResponse{Content: json.RawMessage(`"never reached"`)},
	)
	p := WithRetry(mock, fastRetryConfig())

	_, err := p.Generate(context.Background(), Request{})
	var target *ErrInvalidResponse
	if !errors.As(err, &target) {
		t.Fatalf("error = %v, want ErrInvalidResponse", err)
	}
	if mock.CallCount() != 2 {
		t.Errorf("got %d attempts, want exactly 2 for invalid responses", mock.CallCount())
	}
}

func TestRetryTruncationNotRetried(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrMaxTokensExceeded{}},
		MockResponse{Content: json.RawMessage(`"never reached"`)},
	)
	p := WithRetry(mock, fastRetryConfig())

	_, err := p.Generate(context.Background(), Request{})
	var target *ErrMaxTokensExceeded
	if !errors.As(err, &target) {
		t.Fatalf("error = %v, want ErrMaxTokensExceeded", err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("got %d attempts, want 1 for truncation", mock.CallCount())
	}
}

func TestRetryContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mock := NewMockProvider(
		MockResponse{Err: ctx.Err()},
	)
	p := WithRetry(mock, fastRetryConfig())

	_, err := p.Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("got %d attempts, want 1 after cancellation", mock.CallCount())
	}
}

func TestRetryHonorsRateLimitHint(t *testing.T) {
	r := &RetryProvider{config: fastRetryConfig()}

	hint := 42 * time.Millisecond
	wait := r.backoff(0, &ErrRateLimit{RetryAfter: hint, Err: errors.New("429")})
	if wait != hint {
		t.Errorf("backoff = %v, want provider hint %v", wait, hint)
	}
}

func TestBackoffBounded(t *testing.T) {
	cfg := fastRetryConfig()
	r := &RetryProvider{config: cfg}

	for attempt := 0; attempt < 10; attempt++ {
		wait := r.backoff(attempt, errors.New("transient"))
		if wait < 0 {
			t.Errorf("attempt %d: negative backoff %v", attempt, wait)
		}
		// MaxWait plus 20% jitter is the ceiling.
		if float64(wait) > float64(cfg.MaxWait)*1.2 {
			t.Errorf("attempt %d: backoff %v exceeds cap", attempt, wait)
		}
	}
}
