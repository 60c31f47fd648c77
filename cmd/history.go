package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/sgoswami/tutorbox/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past graded sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		records, err := s.HistoryRepo().List(context.Background(), limit)
		if err != nil {
			return fmt.Errorf("query history: %w", err)
		}

		if len(records) == 0 {
			fmt.Println("No sessions recorded yet.")
			return nil
		}

		fmt.Printf("%-19s  %-8s  %-11s  %s\n", "Date", "Mode", "Score", "Questions")
		fmt.Println(strings.Repeat("─", 56))
		for _, rec := range records {
			fmt.Printf("%-19s  %-8s  %5.2f/%-5.0f  %d\n",
				rec.Timestamp.Local().Format("2006-01-02 15:04"),
				rec.Mode,
				rec.Score,
				rec.MaxScore,
				len(rec.Questions),
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
}
