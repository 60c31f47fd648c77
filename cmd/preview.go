package cmd

import (
	"context"
	"fmt"

	"github.com/sgoswami/tutorbox/internal/generator"
	"github.com/sgoswami/tutorbox/internal/llm"
	"github.com/sgoswami/tutorbox/internal/question"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview generated questions for a topic (no database)",
	Long: `Generate questions for a topic and print them with their answers.

This is a stateless developer tool: no database, no session, no grading.
Useful for evaluating question quality before taking a real exam.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("topics", "", "Topic scope, e.g. \"fractions, verb tenses\" (required)")
	previewCmd.Flags().String("difficulty", string(generator.DifficultyMedium), "Difficulty: easy, medium, or hard")
	previewCmd.Flags().Int("mc", 2, "Number of multiple choice questions")
	previewCmd.Flags().Int("tf", 1, "Number of true/false clusters")
	previewCmd.Flags().Int("sa", 2, "Number of short answer questions")
	_ = previewCmd.MarkFlagRequired("topics")
}

func runPreview(cmd *cobra.Command, args []string) error {
	topics, _ := cmd.Flags().GetString("topics")
	difficulty, _ := cmd.Flags().GetString("difficulty")
	mc, _ := cmd.Flags().GetInt("mc")
	tf, _ := cmd.Flags().GetInt("tf")
	sa, _ := cmd.Flags().GetInt("sa")

	switch generator.Difficulty(difficulty) {
	case generator.DifficultyEasy, generator.DifficultyMedium, generator.DifficultyHard:
	default:
		return fmt.Errorf("invalid difficulty %q: must be easy, medium, or hard", difficulty)
	}

	// Preview requests are not logged, so no event appender.
	ctx := context.Background()
	provider, err := llm.NewProviderFromEnv(ctx, nil)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	gen := generator.New(provider, generator.DefaultConfig())

	req := generator.Request{
		TopicScope: topics,
		Difficulty: generator.Difficulty(difficulty),
		Counts: generator.PartCounts{
			MultipleChoice:   mc,
			TrueFalseCluster: tf,
			ShortAnswer:      sa,
		},
	}

	fmt.Printf("Topics: %s (%s)\n", topics, difficulty)
	fmt.Printf("Generating %d questions...\n\n", req.Counts.Total())

	questions, err := gen.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	for i, q := range questions {
		fmt.Printf("── Question %d/%d (%s, %s) ──\n", i+1, len(questions), q.Kind, q.Level)
		fmt.Println(q.Prompt)

		switch q.Kind {
		case question.KindMultipleChoice:
			labels := []string{"A", "B", "C", "D"}
			for j, opt := range q.Options {
				marker := " "
				if j == q.CorrectIndex {
					marker = "✓"
				}
				fmt.Printf("  %s %s) %s\n", marker, labels[j], opt)
			}
		case question.KindTrueFalse:
			for _, st := range q.Statements {
				fmt.Printf("  [%s] %s\n", boolMark(st.IsTrue), st.Text)
			}
		case question.KindShortAnswer:
			fmt.Printf("  Expected: %s\n", q.Expected)
		}

		if q.Explanation != "" {
			fmt.Printf("  %s\n", q.Explanation)
		}
		fmt.Println()
	}

	fmt.Printf("── %d question(s) generated ──\n", len(questions))
	return nil
}

func boolMark(b bool) string {
	if b {
		return "T"
	}
	return "F"
}
