package cmd

import (
	"fmt"
	"os"

	"github.com/sgoswami/tutorbox/internal/app"
	"github.com/sgoswami/tutorbox/internal/generator"
	"github.com/sgoswami/tutorbox/internal/llm"
	"github.com/sgoswami/tutorbox/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	opts := app.Options{Store: st}

	provider, err := llm.NewProviderFromEnv(ctx, st.LLMEventRepo())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Exam and review sessions will be unavailable.")
	} else {
		opts.Generator = generator.New(provider, generator.DefaultConfig())
	}

	return app.Run(opts)
}
