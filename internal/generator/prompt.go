package generator

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a question writer for a math and English tutoring app. You produce exam questions as a JSON array, with no commentary before or after it.

Each element of the array is one question object:
  {
    "type": "multiple_choice" | "true_false" | "short_answer",
    "topic_id": string,
    "prompt": string (may embed $...$ for math),
    "explanation": string (worked solution shown after grading),
    "level": "recognition" | "understanding" | "application",
    "options": [string, string, string, string]   (multiple_choice only),
    "correct_index": integer 0-3                   (multiple_choice only),
    "statements": [{"text": string, "is_true": bool} x4]  (true_false only),
    "expected": string                             (short_answer only; separate multiple values with commas)
  }

Every true_false question has exactly 4 statements. Every multiple_choice question has exactly 4 options.`

// buildUserMessage renders the generation request into the user prompt.
func buildUserMessage(req Request) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", req.TopicScope)
	fmt.Fprintf(&b, "Difficulty: %s\n\n", req.Difficulty)

	b.WriteString("Produce exactly:\n")
	if req.Counts.MultipleChoice > 0 {
		fmt.Fprintf(&b, "- %d multiple_choice questions\n", req.Counts.MultipleChoice)
	}
	if req.Counts.TrueFalseCluster > 0 {
		fmt.Fprintf(&b, "- %d true_false questions\n", req.Counts.TrueFalseCluster)
	}
	if req.Counts.ShortAnswer > 0 {
		fmt.Fprintf(&b, "- %d short_answer questions\n", req.Counts.ShortAnswer)
	}

	b.WriteString("\nReply with the JSON array only.")
	return b.String()
}
