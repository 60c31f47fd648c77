package generator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sgoswami/tutorbox/internal/llm"
	"github.com/sgoswami/tutorbox/internal/question"
)

// Config controls the LLMGenerator.
type Config struct {
	// MaxTokens is the token budget for the response. Question sets are
	// an order of magnitude larger than single questions, so this is
	// sized for the whole batch.
	MaxTokens int

	// Temperature controls output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns the recommended generator settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   4096,
		Temperature: 0.7,
	}
}

// LLMGenerator implements Service using an LLM provider. The provider is
// asked for a bare JSON array but its output is treated as untrusted free
// text: question.Resolve owns the parsing, including the repair pipeline
// for fenced or prose-wrapped payloads.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates an LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// Generate requests a question set and resolves the response.
func (g *LLMGenerator) Generate(ctx context.Context, req Request) ([]question.Question, error) {
	ctx = llm.WithPurpose(ctx, "question-gen")

	resp, err := g.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(req)},
		},
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	questions, err := question.Resolve(rawText(resp.Content))
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// rawText unwraps a JSON-string-wrapped response; providers return raw
// text either bare or as a JSON string depending on the backend.
func rawText(content json.RawMessage) string {
	var s string
	if err := json.Unmarshal(content, &s); err == nil {
		return s
	}
	return string(content)
}
